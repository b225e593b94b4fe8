// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"strings"

	"github.com/ManuGH/biconfig/internal/log"
	"github.com/rs/zerolog"
)

// CheckProduction enforces the requirements a production deployment cannot
// run without. In production the shipped secret key is fatal; in development
// it is logged. An empty database URI is only warned about here because the
// metadata store fails on first use anyway.
func CheckProduction(s Settings, d Deployment, logger zerolog.Logger) error {
	if s.UsesDefaultSecretKey() {
		if d.IsProduction() {
			logger.Error().
				Str(log.FieldSetting, "SECRET_KEY").
				Str(log.FieldEnv, string(d)).
				Msg("refusing to start with the shipped secret key")
			return fmt.Errorf("%w: set %s to a strong random value", ErrInsecureSecretKey, EnvSecretKey)
		}
		logger.Warn().
			Str(log.FieldSetting, "SECRET_KEY").
			Str(log.FieldEnv, string(d)).
			Msg("using the shipped secret key; never deploy this to production")
	}

	if strings.TrimSpace(s.DatabaseURI) == "" {
		ev := logger.Info()
		if d.IsProduction() {
			ev = logger.Warn()
		}
		ev.Str(log.FieldSetting, "SQLALCHEMY_DATABASE_URI").
			Str(log.FieldEnv, string(d)).
			Msgf("%s is not set; the metadata store will fail on first use", EnvDatabaseURL)
	}

	return nil
}
