// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"strings"

	"github.com/ManuGH/biconfig/internal/validate"
)

var (
	cacheTypes     = []string{CacheTypeRedis, CacheTypeFileSystem, CacheTypeSimple, CacheTypeNull}
	webDriverTypes = []string{"chrome", "firefox"}
	brokerSchemes  = []string{"redis", "rediss"}
)

// Validate checks the shape of a resolved settings table. It does not check
// production-only requirements (see CheckProduction) and never dials out.
func Validate(s Settings) error {
	v := validate.New()

	v.Positive("ROW_LIMIT", s.RowLimit)
	v.NotEmpty("SECRET_KEY", s.SecretKey)

	if s.CSRF.Enabled {
		v.PositiveDuration("WTF_CSRF_TIME_LIMIT", s.CSRF.TimeLimit)
	}

	validateCache(v, "CACHE_CONFIG", s.Cache)

	v.URL("CELERY_CONFIG.broker_url", s.Celery.BrokerURL, brokerSchemes)
	v.URL("CELERY_CONFIG.result_backend", s.Celery.ResultBackend, brokerSchemes)
	if _, err := validate.ParseLogLevel(s.Celery.WorkerLogLevel); err != nil {
		v.AddError("CELERY_CONFIG.worker_log_level", "unknown log level", s.Celery.WorkerLogLevel)
	}
	v.NonNegative("CELERY_CONFIG.worker_prefetch_multiplier", s.Celery.PrefetchMultiplier)
	for task, ann := range s.Celery.TaskAnnotations {
		if _, err := ann.Limit(); err != nil {
			v.AddError("CELERY_CONFIG.task_annotations."+task, err.Error(), ann.RateLimit)
		}
	}

	v.Port("SMTP_PORT", s.Email.SMTPPort)
	if s.Email.SMTPSSL && s.Email.SMTPStartTLS {
		v.AddError("SMTP_SSL", "SMTP_SSL and SMTP_STARTTLS are mutually exclusive", true)
	}
	if s.Email.Notifications {
		v.NotEmpty("SMTP_HOST", s.Email.SMTPHost)
	}

	v.OneOf("WEBDRIVER_TYPE", s.WebDriver.Type, webDriverTypes)
	for _, arg := range s.WebDriver.OptionArgs {
		if !strings.HasPrefix(arg, "--") {
			v.AddError("WEBDRIVER_OPTION_ARGS", "browser flags must start with --", arg)
		}
	}

	v.PositiveDuration("SQLLAB_ASYNC_TIME_LIMIT_SEC", s.SQLLab.AsyncTimeLimit)
	v.PositiveDuration("SQLLAB_TIMEOUT", s.SQLLab.Timeout)
	v.PositiveDuration("SUPERSET_WEBSERVER_TIMEOUT", s.SQLLab.WebserverTimeout)
	if s.SQLLab.Timeout > s.SQLLab.AsyncTimeLimit {
		v.AddError("SQLLAB_TIMEOUT", "synchronous timeout exceeds the async time limit", s.SQLLab.Timeout.String())
	}

	if len(s.Upload.AllowedExtensions) == 0 {
		v.AddError("ALLOWED_EXTENSIONS", "at least one upload extension is required", "")
	}

	for _, grain := range s.TimeGrains.Grains() {
		tmpl := s.TimeGrains[grain]
		if !strings.Contains(tmpl, ColumnPlaceholder) {
			v.AddError("TIME_GRAIN_FUNCTIONS."+string(grain),
				fmt.Sprintf("template must reference %s", ColumnPlaceholder), tmpl)
		}
	}

	seen := make(map[int]struct{}, len(s.DashboardRefreshIntervals))
	for _, ri := range s.DashboardRefreshIntervals {
		v.NonNegative("DASHBOARD_AUTO_REFRESH_INTERVALS", ri.Seconds)
		v.NotEmpty("DASHBOARD_AUTO_REFRESH_INTERVALS", ri.Label)
		if _, dup := seen[ri.Seconds]; dup {
			v.AddError("DASHBOARD_AUTO_REFRESH_INTERVALS", "duplicate interval", ri.Seconds)
		}
		seen[ri.Seconds] = struct{}{}
	}

	v.NotEmpty("APP_NAME", s.Branding.AppName)
	for _, f := range s.Branding.Favicons {
		v.NotEmpty("FAVICONS.href", f.Href)
	}

	return v.Err()
}

func validateCache(v *validate.Validator, field string, c CacheConfig) {
	v.OneOf(field+".CACHE_TYPE", c.Type, cacheTypes)
	v.NonNegative(field+".CACHE_DEFAULT_TIMEOUT", int(c.DefaultTimeout.Seconds()))
	if c.Type != CacheTypeRedis {
		return
	}
	v.NotEmpty(field+".CACHE_REDIS_HOST", c.RedisHost)
	v.Port(field+".CACHE_REDIS_PORT", c.RedisPort)
	v.Range(field+".CACHE_REDIS_DB", c.RedisDB, 0, 15)
}
