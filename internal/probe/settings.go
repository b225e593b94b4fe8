// SPDX-License-Identifier: MIT

package probe

import (
	"strings"

	"github.com/ManuGH/biconfig/internal/config"
)

// Probe target names.
const (
	TargetCache         = "cache"
	TargetBroker        = "celery_broker"
	TargetResultBackend = "celery_result_backend"
	TargetMetadata      = "metadata_db"
)

// FromSettings builds one checker per backend the settings table names.
// Targets that are not probeable from here resolve to a fixed result.
func FromSettings(s config.Settings) []Checker {
	checkers := make([]Checker, 0, 4)

	if opts, err := s.Cache.RedisOptions(); err == nil {
		checkers = append(checkers, NewRedisChecker(TargetCache, opts))
	} else {
		checkers = append(checkers, staticChecker{TargetCache, Result{
			Status:  StatusSkipped,
			Message: "cache type " + s.Cache.Type + " has no server",
		}})
	}

	if opts, err := s.Celery.BrokerOptions(); err == nil {
		checkers = append(checkers, NewRedisChecker(TargetBroker, opts))
	} else {
		checkers = append(checkers, staticChecker{TargetBroker, Result{Status: StatusDown, Error: err.Error()}})
	}

	if opts, err := s.Celery.ResultBackendOptions(); err == nil {
		checkers = append(checkers, NewRedisChecker(TargetResultBackend, opts))
	} else {
		checkers = append(checkers, staticChecker{TargetResultBackend, Result{Status: StatusDown, Error: err.Error()}})
	}

	checkers = append(checkers, metadataChecker(s))
	return checkers
}

func metadataChecker(s config.Settings) Checker {
	uri, err := s.RequireDatabaseURI()
	if err != nil {
		return staticChecker{TargetMetadata, Result{Status: StatusDown, Error: err.Error()}}
	}
	if path, ok := sqlitePath(uri); ok {
		return NewSQLiteChecker(TargetMetadata, path)
	}
	scheme, _, _ := strings.Cut(uri, "://")
	return staticChecker{TargetMetadata, Result{
		Status:  StatusSkipped,
		Addr:    config.MaskURL(uri),
		Message: "no probe for scheme " + scheme,
	}}
}
