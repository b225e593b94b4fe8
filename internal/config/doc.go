// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config resolves the settings table handed to the BI host platform.
//
// Resolution runs once at startup (Loader.Load) with precedence
// environment > YAML file > literal defaults. The resulting Settings value is
// immutable; Get and Lookup hand out alias-free copies keyed by the host
// platform's setting names (ROW_LIMIT, CACHE_CONFIG, ...).
//
// File responsibilities:
//   - defaults.go: literal defaults and derived settings
//   - registry.go: setting names, env overrides and field paths
//   - env.go, file.go, loader.go: the three resolution layers
//   - validation.go, guardrail.go: shape checks and the production guard
//   - logmask.go: redaction for dumps and HTTP output
package config
