// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// DefaultSecretKey is the shipped session-signing key. It is public, so a
// production deployment that still uses it is rejected by the production guard.
const DefaultSecretKey = "thisISaSECRET_1234"

const (
	DefaultRowLimit       = 5000
	DefaultRedisHost      = "redis"
	DefaultRedisPort      = 6379
	DefaultCacheRedisDB   = 1
	DefaultCeleryURL      = "redis://redis:6379/0"
	DefaultSMTPHost       = "localhost"
	DefaultSMTPPort       = 587
	DefaultAppName        = "BI Platform"
	DefaultSQLLabTimeout  = 30 * time.Second
	DefaultCSRFTimeLimit  = 365 * 24 * time.Hour
	DefaultCacheTimeout   = 300 * time.Second
	DefaultCacheKeyPrefix = "superset_"

	// SQLLabResultsTask is the task name the host platform runs async queries under.
	SQLLabResultsTask = "sql_lab.get_sql_results"
)

// Cache backend identifiers understood by the host platform.
const (
	CacheTypeRedis      = "RedisCache"
	CacheTypeFileSystem = "FileSystemCache"
	CacheTypeSimple     = "SimpleCache"
	CacheTypeNull       = "NullCache"
)

var defaultWebDriverArgs = []string{
	"--force-device-scale-factor=1.0",
	"--high-dpi-support=1.0",
	"--headless",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-extensions",
	"--disable-background-timer-throttling",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Defaults returns a fresh settings table holding only literal defaults.
// Nothing returned here is shared with other callers.
func Defaults() Settings {
	cache := CacheConfig{
		Type:           CacheTypeRedis,
		DefaultTimeout: DefaultCacheTimeout,
		KeyPrefix:      DefaultCacheKeyPrefix,
		RedisHost:      DefaultRedisHost,
		RedisPort:      DefaultRedisPort,
		RedisDB:        DefaultCacheRedisDB,
	}

	s := Settings{
		RowLimit:  DefaultRowLimit,
		SecretKey: DefaultSecretKey,
		CSRF: CSRFConfig{
			Enabled:    true,
			ExemptList: []string{},
			TimeLimit:  DefaultCSRFTimeLimit,
		},
		Cache:          cache,
		DataCache:      cache,
		ResultsBackend: cache,
		Celery: CeleryConfig{
			BrokerURL:          DefaultCeleryURL,
			ResultBackend:      DefaultCeleryURL,
			WorkerLogLevel:     "INFO",
			PrefetchMultiplier: 1,
			TaskAcksLate:       false,
			TaskAnnotations: map[string]TaskAnnotation{
				SQLLabResultsTask: {RateLimit: "100/s"},
			},
		},
		FeatureFlags: FeatureFlags{
			FlagAlertReports:                  true,
			FlagDashboardCrossFilters:         true,
			FlagDashboardRBAC:                 true,
			FlagEmbeddedSuperset:              true,
			FlagEnableTemplateProcessing:      true,
			FlagSQLLabBackendPersistence:      true,
			FlagSSHTunneling:                  true,
			FlagPlaywrightReportsAndThumbnail: true,
		},
		Email: EmailConfig{
			Notifications: true,
			SMTPHost:      DefaultSMTPHost,
			SMTPPort:      DefaultSMTPPort,
			SMTPStartTLS:  true,
			SMTPSSL:       false,
		},
		WebDriver: WebDriverConfig{
			Type:       "chrome",
			OptionArgs: cloneStringSlice(defaultWebDriverArgs),
			UserAgent:  defaultUserAgent,
		},
		SQLLab: SQLLabConfig{
			AsyncTimeLimit:   6 * time.Hour,
			Timeout:          DefaultSQLLabTimeout,
			WebserverTimeout: 60 * time.Second,
		},
		Upload: UploadConfig{
			CSVExtensions:   []string{"csv", "tsv", "txt"},
			ExcelExtensions: []string{"xls", "xlsx", "xlsm", "xlsb"},
		},
		Security: SecurityConfig{
			TalismanEnabled: false,
			CORSEnabled:     true,
			CORSOptions:     map[string]any{},
		},
		TimeGrains: DefaultTimeGrains(),
		DashboardRefreshIntervals: []RefreshInterval{
			{0, "Don't refresh"},
			{10, "10 seconds"},
			{30, "30 seconds"},
			{60, "1 minute"},
			{300, "5 minutes"},
			{1800, "30 minutes"},
			{3600, "1 hour"},
			{21600, "6 hours"},
			{43200, "12 hours"},
			{86400, "24 hours"},
		},
		Branding: BrandingConfig{
			AppName:  DefaultAppName,
			AppIcon:  "/static/assets/images/superset-logo-horiz.png",
			Favicons: []Favicon{{Href: "/static/assets/images/favicon.png"}},
		},
	}
	s.deriveShared()
	return s
}

// deriveShared recomputes settings that are defined in terms of others.
// The data cache and the results backend mirror the main cache, and the
// upload allow-list is the union of the per-format sets.
func (s *Settings) deriveShared() {
	s.DataCache = s.Cache
	s.ResultsBackend = s.Cache
	s.Upload.AllowedExtensions = unionExtensions(s.Upload.CSVExtensions, s.Upload.ExcelExtensions)
}
