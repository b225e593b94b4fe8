// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/biconfig/internal/validate"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"row limit", func(s *Settings) { s.RowLimit = 0 }, "ROW_LIMIT"},
		{"empty secret", func(s *Settings) { s.SecretKey = " " }, "SECRET_KEY"},
		{"csrf time limit", func(s *Settings) { s.CSRF.TimeLimit = 0 }, "WTF_CSRF_TIME_LIMIT"},
		{"cache type", func(s *Settings) { s.Cache.Type = "MemcachedCache" }, "CACHE_CONFIG.CACHE_TYPE"},
		{"cache db", func(s *Settings) { s.Cache.RedisDB = 16 }, "CACHE_CONFIG.CACHE_REDIS_DB"},
		{"cache host", func(s *Settings) { s.Cache.RedisHost = "" }, "CACHE_CONFIG.CACHE_REDIS_HOST"},
		{"broker scheme", func(s *Settings) { s.Celery.BrokerURL = "amqp://guest@rabbit//" }, "CELERY_CONFIG.broker_url"},
		{"result backend", func(s *Settings) { s.Celery.ResultBackend = "" }, "CELERY_CONFIG.result_backend"},
		{"worker log level", func(s *Settings) { s.Celery.WorkerLogLevel = "LOUD" }, "CELERY_CONFIG.worker_log_level"},
		{"prefetch", func(s *Settings) { s.Celery.PrefetchMultiplier = -1 }, "CELERY_CONFIG.worker_prefetch_multiplier"},
		{"rate limit", func(s *Settings) {
			s.Celery.TaskAnnotations[SQLLabResultsTask] = TaskAnnotation{RateLimit: "fast"}
		}, "CELERY_CONFIG.task_annotations." + SQLLabResultsTask},
		{"smtp port", func(s *Settings) { s.Email.SMTPPort = 0 }, "SMTP_PORT"},
		{"smtp tls modes", func(s *Settings) { s.Email.SMTPSSL = true }, "SMTP_SSL"},
		{"smtp host", func(s *Settings) { s.Email.SMTPHost = "" }, "SMTP_HOST"},
		{"webdriver", func(s *Settings) { s.WebDriver.Type = "safari" }, "WEBDRIVER_TYPE"},
		{"webdriver arg", func(s *Settings) { s.WebDriver.OptionArgs = []string{"headless"} }, "WEBDRIVER_OPTION_ARGS"},
		{"sqllab timeout", func(s *Settings) { s.SQLLab.Timeout = 0 }, "SQLLAB_TIMEOUT"},
		{"sqllab order", func(s *Settings) { s.SQLLab.Timeout = 7 * time.Hour }, "SQLLAB_TIMEOUT"},
		{"extensions", func(s *Settings) { s.Upload.AllowedExtensions = nil }, "ALLOWED_EXTENSIONS"},
		{"grain placeholder", func(s *Settings) { s.TimeGrains[GrainDay] = "DATE_TRUNC('day', ts)" }, "TIME_GRAIN_FUNCTIONS.P1D"},
		{"refresh duplicate", func(s *Settings) {
			s.DashboardRefreshIntervals = append(s.DashboardRefreshIntervals, RefreshInterval{60, "again"})
		}, "DASHBOARD_AUTO_REFRESH_INTERVALS"},
		{"app name", func(s *Settings) { s.Branding.AppName = "" }, "APP_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)

			err := Validate(s)
			if err == nil {
				t.Fatalf("expected validation error for %s", tt.field)
			}
			var verr validate.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, e := range verr.Errors() {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidate_NonRedisCacheSkipsRedisChecks(t *testing.T) {
	s := Defaults()
	s.Cache.Type = CacheTypeNull
	s.Cache.RedisHost = ""
	s.Cache.RedisPort = 0
	s.deriveShared()

	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NotificationsOffAllowsEmptyHost(t *testing.T) {
	s := Defaults()
	s.Email.Notifications = false
	s.Email.SMTPHost = ""

	if err := Validate(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BrokerErrorHidesCredentials(t *testing.T) {
	s := Defaults()
	s.Celery.BrokerURL = "redis://:brokerpw@broker:port/0"

	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error for a malformed broker URL")
	}
	if strings.Contains(err.Error(), "brokerpw") {
		t.Fatalf("validation error leaks the broker password: %v", err)
	}
}
