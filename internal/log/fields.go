// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"

	// Settings resolution fields
	FieldKey     = "key"
	FieldSetting = "setting"
	FieldSource  = "source"
	FieldEnv     = "deploy_env"

	// Probe fields
	FieldTarget = "target"
	FieldAddr   = "addr"

	// HTTP fields
	FieldMethod = "method"
	FieldPath   = "path"
	FieldStatus = "status"
)
