// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"strconv"
	"strings"

	"github.com/ManuGH/biconfig/internal/log"
	"github.com/rs/zerolog"
)

// Environment variables consumed by the settings table.
const (
	EnvSecretKey           = "SECRET_KEY"
	EnvDatabaseURL         = "DATABASE_URL"
	EnvMapboxAPIKey        = "MAPBOX_API_KEY"
	EnvRedisHost           = "REDIS_HOST"
	EnvRedisPort           = "REDIS_PORT"
	EnvCeleryBroker        = "CELERY_BROKER"
	EnvCeleryResultBackend = "CELERY_RESULT_BACKEND"
	EnvSMTPHost            = "SMTP_HOST"
	EnvSMTPUser            = "SMTP_USER"
	EnvSMTPPassword        = "SMTP_PASSWORD"
)

// Environment variables that steer the loader itself.
const (
	EnvDeployment = "BICONFIG_ENV"
	EnvConfigFile = "BICONFIG_CONFIG"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a fixed map into a LookupFunc.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func isSensitiveEnvKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, token := range []string{"secret", "password", "token", "api_key"} {
		if strings.Contains(lowerKey, token) {
			return true
		}
	}
	return false
}

// parseString returns the variable verbatim whenever it is set, even if empty.
func parseString(lookup LookupFunc, logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := lookup(key); exists {
		switch {
		case isSensitiveEnvKey(key):
			// For sensitive vars, just log that it was set
			logger.Debug().
				Str(log.FieldKey, key).
				Str(log.FieldSource, "environment").
				Bool("sensitive", true).
				Msg("using environment variable")
		default:
			logger.Debug().
				Str(log.FieldKey, key).
				Str("value", MaskURL(value)).
				Str(log.FieldSource, "environment").
				Msg("using environment variable")
		}
		return value
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Str(log.FieldSource, "default").
		Msg("using default value")
	return defaultValue
}

// parseInt reports ok=false when the variable is set but not an integer
// (an empty value included); the default is returned in that case so callers
// can decide how loud to fail.
func parseInt(lookup LookupFunc, logger zerolog.Logger, key string, defaultValue int) (int, bool) {
	if v, ok := lookup(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			logger.Debug().
				Str(log.FieldKey, key).
				Int("value", i).
				Str(log.FieldSource, "environment").
				Msg("using environment variable")
			return i, true
		}
		logger.Warn().
			Str(log.FieldKey, key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable")
		return defaultValue, false
	}
	logger.Debug().
		Str(log.FieldKey, key).
		Int("default", defaultValue).
		Str(log.FieldSource, "default").
		Msg("using default value")
	return defaultValue, true
}
