// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// Settings is the resolved settings table handed to the host platform.
//
// A Settings value is built once by Loader.Load and never mutated afterwards.
// Slice and map fields must be treated as read-only; accessors (Get, Lookup,
// Clone) hand out alias-free copies.
type Settings struct {
	RowLimit int

	SecretKey   string
	DatabaseURI string

	CSRF CSRFConfig

	MapboxAPIKey string

	Cache          CacheConfig
	DataCache      CacheConfig
	ResultsBackend CacheConfig

	Celery CeleryConfig

	FeatureFlags FeatureFlags

	Email EmailConfig

	WebDriver WebDriverConfig

	SQLLab SQLLabConfig

	Upload UploadConfig

	Security SecurityConfig

	TimeGrains TimeGrains

	DashboardRefreshIntervals []RefreshInterval

	Branding BrandingConfig
}

// CSRFConfig controls cross-site-request-forgery token handling.
type CSRFConfig struct {
	Enabled    bool          `json:"WTF_CSRF_ENABLED"`
	ExemptList []string      `json:"WTF_CSRF_EXEMPT_LIST"`
	TimeLimit  time.Duration `json:"WTF_CSRF_TIME_LIMIT"`
}

// CacheConfig selects and parameterizes a cache backend.
type CacheConfig struct {
	Type           string        `json:"CACHE_TYPE"`
	DefaultTimeout time.Duration `json:"CACHE_DEFAULT_TIMEOUT"`
	KeyPrefix      string        `json:"CACHE_KEY_PREFIX"`
	RedisHost      string        `json:"CACHE_REDIS_HOST"`
	RedisPort      int           `json:"CACHE_REDIS_PORT"`
	RedisDB        int           `json:"CACHE_REDIS_DB"`
}

// CeleryConfig parameterizes the background task queue.
type CeleryConfig struct {
	BrokerURL          string                    `json:"broker_url"`
	ResultBackend      string                    `json:"result_backend"`
	WorkerLogLevel     string                    `json:"worker_log_level"`
	PrefetchMultiplier int                       `json:"worker_prefetch_multiplier"`
	TaskAcksLate       bool                      `json:"task_acks_late"`
	TaskAnnotations    map[string]TaskAnnotation `json:"task_annotations"`
}

// TaskAnnotation carries per-task worker options.
type TaskAnnotation struct {
	// RateLimit uses the "<count>/<s|m|h>" notation, e.g. "100/s".
	RateLimit string `json:"rate_limit"`
}

// EmailConfig holds the notification toggle and the SMTP relay settings.
type EmailConfig struct {
	Notifications bool   `json:"EMAIL_NOTIFICATIONS"`
	SMTPHost      string `json:"SMTP_HOST"`
	SMTPPort      int    `json:"SMTP_PORT"`
	SMTPStartTLS  bool   `json:"SMTP_STARTTLS"`
	SMTPSSL       bool   `json:"SMTP_SSL"`
	SMTPUser      string `json:"SMTP_USER"`
	SMTPPassword  string `json:"SMTP_PASSWORD"`
}

// WebDriverConfig parameterizes the headless browser used for reports and thumbnails.
type WebDriverConfig struct {
	Type       string   `json:"WEBDRIVER_TYPE"`
	OptionArgs []string `json:"WEBDRIVER_OPTION_ARGS"`
	UserAgent  string   `json:"SCREENSHOT_SELENIUM_USER_AGENT"`
}

// SQLLabConfig bounds query execution time.
type SQLLabConfig struct {
	AsyncTimeLimit   time.Duration `json:"SQLLAB_ASYNC_TIME_LIMIT_SEC"`
	Timeout          time.Duration `json:"SQLLAB_TIMEOUT"`
	WebserverTimeout time.Duration `json:"SUPERSET_WEBSERVER_TIMEOUT"`
}

// UploadConfig lists file suffixes accepted for data import.
// AllowedExtensions is always the union of the CSV and Excel sets.
type UploadConfig struct {
	CSVExtensions     []string `json:"CSV_EXTENSIONS"`
	ExcelExtensions   []string `json:"EXCEL_EXTENSIONS"`
	AllowedExtensions []string `json:"ALLOWED_EXTENSIONS"`
}

// SecurityConfig holds cross-origin and security-header policy toggles.
type SecurityConfig struct {
	TalismanEnabled bool           `json:"TALISMAN_ENABLED"`
	CORSEnabled     bool           `json:"ENABLE_CORS"`
	CORSOptions     map[string]any `json:"CORS_OPTIONS"`
}

// RefreshInterval is one selectable dashboard auto-refresh period.
type RefreshInterval struct {
	Seconds int
	Label   string
}

// BrandingConfig holds UI branding strings.
type BrandingConfig struct {
	AppName  string    `json:"APP_NAME"`
	AppIcon  string    `json:"APP_ICON"`
	Favicons []Favicon `json:"FAVICONS"`
}

// Favicon is a single favicon link.
type Favicon struct {
	Href string `json:"href"`
}
