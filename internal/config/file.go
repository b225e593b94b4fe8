// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML overlay. Pointer fields distinguish
// "not set" from zero values. Secrets and backend hosts are env-only.
type FileConfig struct {
	RowLimit     *int              `yaml:"rowLimit,omitempty"`
	CSRF         CSRFFile          `yaml:"csrf,omitempty"`
	Cache        CacheFile         `yaml:"cache,omitempty"`
	Celery       CeleryFile        `yaml:"celery,omitempty"`
	FeatureFlags map[string]bool   `yaml:"featureFlags,omitempty"`
	Email        EmailFile         `yaml:"email,omitempty"`
	WebDriver    WebDriverFile     `yaml:"webDriver,omitempty"`
	SQLLab       SQLLabFile        `yaml:"sqlLab,omitempty"`
	Upload       UploadFile        `yaml:"upload,omitempty"`
	Security     SecurityFile      `yaml:"security,omitempty"`
	TimeGrains   map[string]string `yaml:"timeGrains,omitempty"`
	Dashboard    DashboardFile     `yaml:"dashboard,omitempty"`
	Branding     BrandingFile      `yaml:"branding,omitempty"`
}

type CSRFFile struct {
	Enabled    *bool    `yaml:"enabled,omitempty"`
	ExemptList []string `yaml:"exemptList,omitempty"`
	TimeLimit  string   `yaml:"timeLimit,omitempty"`
}

// CacheFile deliberately has no host/port/db keys: host and port come from
// the environment and the database index is fixed.
type CacheFile struct {
	Type           string `yaml:"type,omitempty"`
	DefaultTimeout string `yaml:"defaultTimeout,omitempty"`
	KeyPrefix      string `yaml:"keyPrefix,omitempty"`
}

type CeleryFile struct {
	WorkerLogLevel     string            `yaml:"workerLogLevel,omitempty"`
	PrefetchMultiplier *int              `yaml:"prefetchMultiplier,omitempty"`
	TaskAcksLate       *bool             `yaml:"taskAcksLate,omitempty"`
	RateLimits         map[string]string `yaml:"rateLimits,omitempty"`
}

type EmailFile struct {
	Notifications *bool `yaml:"notifications,omitempty"`
	SMTPPort      *int  `yaml:"smtpPort,omitempty"`
	SMTPStartTLS  *bool `yaml:"smtpStartTLS,omitempty"`
	SMTPSSL       *bool `yaml:"smtpSSL,omitempty"`
}

type WebDriverFile struct {
	Type       string   `yaml:"type,omitempty"`
	OptionArgs []string `yaml:"optionArgs,omitempty"`
	UserAgent  string   `yaml:"userAgent,omitempty"`
}

type SQLLabFile struct {
	AsyncTimeLimit   string `yaml:"asyncTimeLimit,omitempty"`
	Timeout          string `yaml:"timeout,omitempty"`
	WebserverTimeout string `yaml:"webserverTimeout,omitempty"`
}

type UploadFile struct {
	CSVExtensions   []string `yaml:"csvExtensions,omitempty"`
	ExcelExtensions []string `yaml:"excelExtensions,omitempty"`
}

type SecurityFile struct {
	TalismanEnabled *bool          `yaml:"talismanEnabled,omitempty"`
	CORSEnabled     *bool          `yaml:"corsEnabled,omitempty"`
	CORSOptions     map[string]any `yaml:"corsOptions,omitempty"`
}

type DashboardFile struct {
	RefreshIntervals []RefreshIntervalFile `yaml:"refreshIntervals,omitempty"`
}

type RefreshIntervalFile struct {
	Seconds int    `yaml:"seconds"`
	Label   string `yaml:"label"`
}

type BrandingFile struct {
	AppName  string   `yaml:"appName,omitempty"`
	AppIcon  string   `yaml:"appIcon,omitempty"`
	Favicons []string `yaml:"favicons,omitempty"`
}

// LoadFileConfig loads a YAML overlay without applying defaults or env overrides.
func LoadFileConfig(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseFileConfig(data)
}

// parseFileConfig decodes with STRICT parsing: unknown keys are rejected.
func parseFileConfig(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

// mergeFileConfig overlays file values onto s. Durations use Go syntax ("30s", "6h").
func mergeFileConfig(s *Settings, fc *FileConfig) error {
	var errs []error
	dur := func(field, raw string, dst *time.Duration) {
		if raw == "" {
			return
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
			return
		}
		*dst = d
	}

	if fc.RowLimit != nil {
		s.RowLimit = *fc.RowLimit
	}

	if fc.CSRF.Enabled != nil {
		s.CSRF.Enabled = *fc.CSRF.Enabled
	}
	if fc.CSRF.ExemptList != nil {
		s.CSRF.ExemptList = cloneStringSlice(fc.CSRF.ExemptList)
	}
	dur("csrf.timeLimit", fc.CSRF.TimeLimit, &s.CSRF.TimeLimit)

	if fc.Cache.Type != "" {
		s.Cache.Type = fc.Cache.Type
	}
	dur("cache.defaultTimeout", fc.Cache.DefaultTimeout, &s.Cache.DefaultTimeout)
	if fc.Cache.KeyPrefix != "" {
		s.Cache.KeyPrefix = fc.Cache.KeyPrefix
	}

	if fc.Celery.WorkerLogLevel != "" {
		s.Celery.WorkerLogLevel = fc.Celery.WorkerLogLevel
	}
	if fc.Celery.PrefetchMultiplier != nil {
		s.Celery.PrefetchMultiplier = *fc.Celery.PrefetchMultiplier
	}
	if fc.Celery.TaskAcksLate != nil {
		s.Celery.TaskAcksLate = *fc.Celery.TaskAcksLate
	}
	for task, limit := range fc.Celery.RateLimits {
		if s.Celery.TaskAnnotations == nil {
			s.Celery.TaskAnnotations = make(map[string]TaskAnnotation)
		}
		s.Celery.TaskAnnotations[task] = TaskAnnotation{RateLimit: limit}
	}

	// Flags merge key by key so a file can flip one flag without restating the rest.
	for name, on := range fc.FeatureFlags {
		if s.FeatureFlags == nil {
			s.FeatureFlags = make(FeatureFlags)
		}
		s.FeatureFlags[name] = on
	}

	if fc.Email.Notifications != nil {
		s.Email.Notifications = *fc.Email.Notifications
	}
	if fc.Email.SMTPPort != nil {
		s.Email.SMTPPort = *fc.Email.SMTPPort
	}
	if fc.Email.SMTPStartTLS != nil {
		s.Email.SMTPStartTLS = *fc.Email.SMTPStartTLS
	}
	if fc.Email.SMTPSSL != nil {
		s.Email.SMTPSSL = *fc.Email.SMTPSSL
	}

	if fc.WebDriver.Type != "" {
		s.WebDriver.Type = fc.WebDriver.Type
	}
	if fc.WebDriver.OptionArgs != nil {
		s.WebDriver.OptionArgs = cloneStringSlice(fc.WebDriver.OptionArgs)
	}
	if fc.WebDriver.UserAgent != "" {
		s.WebDriver.UserAgent = fc.WebDriver.UserAgent
	}

	dur("sqlLab.asyncTimeLimit", fc.SQLLab.AsyncTimeLimit, &s.SQLLab.AsyncTimeLimit)
	dur("sqlLab.timeout", fc.SQLLab.Timeout, &s.SQLLab.Timeout)
	dur("sqlLab.webserverTimeout", fc.SQLLab.WebserverTimeout, &s.SQLLab.WebserverTimeout)

	if fc.Upload.CSVExtensions != nil {
		s.Upload.CSVExtensions = cloneStringSlice(fc.Upload.CSVExtensions)
	}
	if fc.Upload.ExcelExtensions != nil {
		s.Upload.ExcelExtensions = cloneStringSlice(fc.Upload.ExcelExtensions)
	}

	if fc.Security.TalismanEnabled != nil {
		s.Security.TalismanEnabled = *fc.Security.TalismanEnabled
	}
	if fc.Security.CORSEnabled != nil {
		s.Security.CORSEnabled = *fc.Security.CORSEnabled
	}
	if fc.Security.CORSOptions != nil {
		s.Security.CORSOptions = cloneAnyMap(fc.Security.CORSOptions)
	}

	for grain, tmpl := range fc.TimeGrains {
		if s.TimeGrains == nil {
			s.TimeGrains = make(TimeGrains)
		}
		s.TimeGrains[TimeGrain(grain)] = tmpl
	}

	if fc.Dashboard.RefreshIntervals != nil {
		s.DashboardRefreshIntervals = make([]RefreshInterval, 0, len(fc.Dashboard.RefreshIntervals))
		for _, ri := range fc.Dashboard.RefreshIntervals {
			s.DashboardRefreshIntervals = append(s.DashboardRefreshIntervals, RefreshInterval{Seconds: ri.Seconds, Label: ri.Label})
		}
	}

	if fc.Branding.AppName != "" {
		s.Branding.AppName = fc.Branding.AppName
	}
	if fc.Branding.AppIcon != "" {
		s.Branding.AppIcon = fc.Branding.AppIcon
	}
	if fc.Branding.Favicons != nil {
		s.Branding.Favicons = make([]Favicon, 0, len(fc.Branding.Favicons))
		for _, href := range fc.Branding.Favicons {
			s.Branding.Favicons = append(s.Branding.Favicons, Favicon{Href: href})
		}
	}

	return errors.Join(errs...)
}
