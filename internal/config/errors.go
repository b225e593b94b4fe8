// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "errors"

var (
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")

	// ErrInsecureSecretKey is returned when a production load still carries DefaultSecretKey.
	ErrInsecureSecretKey = errors.New("secret key is the shipped default")

	// ErrMissingDatabaseURI is returned on first use of an empty metadata database URI.
	ErrMissingDatabaseURI = errors.New("metadata database URI is not set")

	// ErrUnknownDeployment classifies an unrecognized BICONFIG_ENV value.
	ErrUnknownDeployment = errors.New("unknown deployment environment")

	// ErrInvalidRateLimit classifies task rate-limit strings that do not parse.
	ErrInvalidRateLimit = errors.New("invalid rate limit")
)
