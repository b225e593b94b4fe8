// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

// Consumer names the host platform subsystem that reads a setting.
type Consumer string

const (
	ConsumerQueryEngine Consumer = "query-engine"
	ConsumerSecurity    Consumer = "security"
	ConsumerMetadata    Consumer = "metadata"
	ConsumerCache       Consumer = "cache"
	ConsumerTaskQueue   Consumer = "task-queue"
	ConsumerFeatures    Consumer = "features"
	ConsumerMail        Consumer = "mail"
	ConsumerBrowser     Consumer = "browser"
	ConsumerUpload      Consumer = "upload"
	ConsumerUI          Consumer = "ui"
	ConsumerMaps        Consumer = "maps"
)

// Sensitivity controls how a setting value is rendered outside the process.
type Sensitivity int

const (
	// Public values are rendered as-is.
	Public Sensitivity = iota
	// Secret values are always replaced by a mask.
	Secret
	// Credential marks connection strings whose userinfo must be masked.
	Credential
)

// SettingEntry describes a single named setting.
type SettingEntry struct {
	Name        string      // Host platform key (e.g. "ROW_LIMIT")
	Env         string      // Environment override, empty when none
	FieldPath   string      // Field path in Settings (e.g. "Email.SMTPHost")
	Consumer    Consumer    // Reading subsystem
	Sensitivity Sensitivity // Rendering policy
}

// Registry indexes the recognized settings.
type Registry struct {
	Entries []SettingEntry // declaration order
	ByName  map[string]SettingEntry
	ByField map[string]SettingEntry
	ByEnv   map[string]SettingEntry
}

var (
	globalRegistry    *Registry
	globalRegistryErr error
	registryOnce      sync.Once
)

// GetRegistry returns the global settings registry.
// It returns an error if the registry contains duplicates or leaves a
// Settings field unreachable.
// Thread-safe via sync.Once.
func GetRegistry() (*Registry, error) {
	registryOnce.Do(func() {
		r, err := buildRegistry(settingEntries())
		if err == nil {
			err = r.ValidateFieldCoverage()
		}
		if err != nil {
			globalRegistryErr = err
			return
		}
		globalRegistry = r
	})
	return globalRegistry, globalRegistryErr
}

func settingEntries() []SettingEntry {
	return []SettingEntry{
		// --- QUERY ENGINE ---
		{Name: "ROW_LIMIT", FieldPath: "RowLimit", Consumer: ConsumerQueryEngine},

		// --- SECURITY ---
		{Name: "SECRET_KEY", Env: EnvSecretKey, FieldPath: "SecretKey", Consumer: ConsumerSecurity, Sensitivity: Secret},
		{Name: "WTF_CSRF_ENABLED", FieldPath: "CSRF.Enabled", Consumer: ConsumerSecurity},
		{Name: "WTF_CSRF_EXEMPT_LIST", FieldPath: "CSRF.ExemptList", Consumer: ConsumerSecurity},
		{Name: "WTF_CSRF_TIME_LIMIT", FieldPath: "CSRF.TimeLimit", Consumer: ConsumerSecurity},
		{Name: "TALISMAN_ENABLED", FieldPath: "Security.TalismanEnabled", Consumer: ConsumerSecurity},
		{Name: "ENABLE_CORS", FieldPath: "Security.CORSEnabled", Consumer: ConsumerSecurity},
		{Name: "CORS_OPTIONS", FieldPath: "Security.CORSOptions", Consumer: ConsumerSecurity},

		// --- METADATA ---
		{Name: "SQLALCHEMY_DATABASE_URI", Env: EnvDatabaseURL, FieldPath: "DatabaseURI", Consumer: ConsumerMetadata, Sensitivity: Credential},

		// --- MAPS ---
		{Name: "MAPBOX_API_KEY", Env: EnvMapboxAPIKey, FieldPath: "MapboxAPIKey", Consumer: ConsumerMaps, Sensitivity: Secret},

		// --- CACHE ---
		{Name: "CACHE_CONFIG", FieldPath: "Cache", Consumer: ConsumerCache},
		{Name: "DATA_CACHE_CONFIG", FieldPath: "DataCache", Consumer: ConsumerCache},
		{Name: "RESULTS_BACKEND", FieldPath: "ResultsBackend", Consumer: ConsumerQueryEngine},
		{Env: EnvRedisHost, FieldPath: "Cache.RedisHost", Consumer: ConsumerCache},
		{Env: EnvRedisPort, FieldPath: "Cache.RedisPort", Consumer: ConsumerCache},

		// --- TASK QUEUE ---
		{Name: "CELERY_CONFIG", FieldPath: "Celery", Consumer: ConsumerTaskQueue, Sensitivity: Credential},
		{Env: EnvCeleryBroker, FieldPath: "Celery.BrokerURL", Consumer: ConsumerTaskQueue, Sensitivity: Credential},
		{Env: EnvCeleryResultBackend, FieldPath: "Celery.ResultBackend", Consumer: ConsumerTaskQueue, Sensitivity: Credential},

		// --- FEATURES ---
		{Name: "FEATURE_FLAGS", FieldPath: "FeatureFlags", Consumer: ConsumerFeatures},

		// --- MAIL ---
		{Name: "EMAIL_NOTIFICATIONS", FieldPath: "Email.Notifications", Consumer: ConsumerMail},
		{Name: "SMTP_HOST", Env: EnvSMTPHost, FieldPath: "Email.SMTPHost", Consumer: ConsumerMail},
		{Name: "SMTP_PORT", FieldPath: "Email.SMTPPort", Consumer: ConsumerMail},
		{Name: "SMTP_STARTTLS", FieldPath: "Email.SMTPStartTLS", Consumer: ConsumerMail},
		{Name: "SMTP_SSL", FieldPath: "Email.SMTPSSL", Consumer: ConsumerMail},
		{Name: "SMTP_USER", Env: EnvSMTPUser, FieldPath: "Email.SMTPUser", Consumer: ConsumerMail},
		{Name: "SMTP_PASSWORD", Env: EnvSMTPPassword, FieldPath: "Email.SMTPPassword", Consumer: ConsumerMail, Sensitivity: Secret},

		// --- BROWSER ---
		{Name: "WEBDRIVER_TYPE", FieldPath: "WebDriver.Type", Consumer: ConsumerBrowser},
		{Name: "WEBDRIVER_OPTION_ARGS", FieldPath: "WebDriver.OptionArgs", Consumer: ConsumerBrowser},
		{Name: "SCREENSHOT_SELENIUM_USER_AGENT", FieldPath: "WebDriver.UserAgent", Consumer: ConsumerBrowser},

		// --- SQL LAB ---
		{Name: "SQLLAB_ASYNC_TIME_LIMIT_SEC", FieldPath: "SQLLab.AsyncTimeLimit", Consumer: ConsumerQueryEngine},
		{Name: "SQLLAB_TIMEOUT", FieldPath: "SQLLab.Timeout", Consumer: ConsumerQueryEngine},
		{Name: "SUPERSET_WEBSERVER_TIMEOUT", FieldPath: "SQLLab.WebserverTimeout", Consumer: ConsumerQueryEngine},
		{Name: "TIME_GRAIN_FUNCTIONS", FieldPath: "TimeGrains", Consumer: ConsumerQueryEngine},

		// --- UPLOAD ---
		{Name: "ALLOWED_EXTENSIONS", FieldPath: "Upload.AllowedExtensions", Consumer: ConsumerUpload},
		{Name: "CSV_EXTENSIONS", FieldPath: "Upload.CSVExtensions", Consumer: ConsumerUpload},
		{Name: "EXCEL_EXTENSIONS", FieldPath: "Upload.ExcelExtensions", Consumer: ConsumerUpload},

		// --- UI ---
		{Name: "DASHBOARD_AUTO_REFRESH_INTERVALS", FieldPath: "DashboardRefreshIntervals", Consumer: ConsumerUI},
		{Name: "APP_NAME", FieldPath: "Branding.AppName", Consumer: ConsumerUI},
		{Name: "APP_ICON", FieldPath: "Branding.AppIcon", Consumer: ConsumerUI},
		{Name: "FAVICONS", FieldPath: "Branding.Favicons", Consumer: ConsumerUI},
	}
}

func buildRegistry(entries []SettingEntry) (*Registry, error) {
	r := &Registry{
		ByName:  make(map[string]SettingEntry),
		ByField: make(map[string]SettingEntry),
		ByEnv:   make(map[string]SettingEntry),
	}

	for _, e := range entries {
		if e.Name == "" && e.Env == "" {
			return nil, fmt.Errorf("registry entry for %s has neither name nor env", e.FieldPath)
		}
		if e.Name != "" {
			if _, dup := r.ByName[e.Name]; dup {
				return nil, fmt.Errorf("duplicate registry name: %s", e.Name)
			}
			r.ByName[e.Name] = e
		}
		if _, dup := r.ByField[e.FieldPath]; dup {
			return nil, fmt.Errorf("duplicate registry field: %s", e.FieldPath)
		}
		r.ByField[e.FieldPath] = e
		if e.Env != "" {
			if _, dup := r.ByEnv[e.Env]; dup {
				return nil, fmt.Errorf("duplicate registry env: %s", e.Env)
			}
			r.ByEnv[e.Env] = e
		}
		r.Entries = append(r.Entries, e)
	}

	return r, nil
}

// Names returns the recognized setting names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ByName))
	for _, e := range r.Entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names
}

// ValidateFieldCoverage uses reflection to ensure every leaf field of
// Settings is reachable through a registered name, directly or through a
// registered parent struct.
func (r *Registry) ValidateFieldCoverage() error {
	return r.validateStruct("", reflect.TypeOf(Settings{}), false)
}

func (r *Registry) validateStruct(prefix string, t reflect.Type, covered bool) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		fieldPath := f.Name
		if prefix != "" {
			fieldPath = prefix + "." + f.Name
		}

		entry, registered := r.ByField[fieldPath]
		fieldCovered := covered || (registered && entry.Name != "")

		if f.Type.Kind() == reflect.Struct && !isSimpleStruct(f.Type) {
			if err := r.validateStruct(fieldPath, f.Type, fieldCovered); err != nil {
				return err
			}
			continue
		}

		if !fieldCovered {
			return fmt.Errorf("field %q is not registered in the settings registry", fieldPath)
		}
	}
	return nil
}

// Lookup returns an alias-free copy of the resolved value for name.
func (s Settings) Lookup(name string) (any, bool) {
	r, err := GetRegistry()
	if err != nil {
		return nil, false
	}
	entry, ok := r.ByName[name]
	if !ok {
		return nil, false
	}
	v, err := getField(reflect.ValueOf(Clone(s)), entry.FieldPath)
	if err != nil {
		return nil, false
	}
	return v.Interface(), true
}

// Get returns the resolved value for a recognized setting name.
// Asking for an unknown name is a programming error and panics.
func (s Settings) Get(name string) any {
	v, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("config: unknown setting %q", name))
	}
	return v
}

func getField(v reflect.Value, fieldPath string) (reflect.Value, error) {
	curr := v
	for _, p := range strings.Split(fieldPath, ".") {
		if curr.Kind() == reflect.Ptr {
			if curr.IsNil() {
				return reflect.Value{}, fmt.Errorf("nil pointer at %s", p)
			}
			curr = curr.Elem()
		}
		f := curr.FieldByName(p)
		if !f.IsValid() {
			return reflect.Value{}, fmt.Errorf("field %s not found", p)
		}
		curr = f
	}
	return curr, nil
}

func isSimpleStruct(t reflect.Type) bool {
	// Types that should be treated as leaves even if they are structs.
	return t == reflect.TypeOf(time.Time{})
}
