// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/ManuGH/biconfig/internal/log"
	"github.com/ManuGH/biconfig/internal/validate"
	"github.com/rs/zerolog"
)

// Loader handles settings resolution with precedence ENV > File > Defaults.
type Loader struct {
	configPath      string
	lookup          LookupFunc
	deployment      Deployment
	deploymentSet   bool
	logger          zerolog.Logger
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
	malformed       []validate.Error
}

// Option customizes a Loader.
type Option func(*Loader)

// WithLookup replaces the process environment as the source of overrides.
func WithLookup(lookup LookupFunc) Option {
	return func(l *Loader) { l.lookup = lookup }
}

// WithDeployment pins the deployment instead of reading BICONFIG_ENV.
func WithDeployment(d Deployment) Option {
	return func(l *Loader) {
		l.deployment = d
		l.deploymentSet = true
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a new settings loader. configPath may be empty.
func NewLoader(configPath string, opts ...Option) *Loader {
	l := &Loader{
		configPath:      configPath,
		lookup:          os.LookupEnv,
		logger:          log.WithComponent("config"),
		ConsumedEnvKeys: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wrapper methods for mechanical consumption tracking

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return parseString(l.lookup, l.logger, key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	v, ok := parseInt(l.lookup, l.logger, key, defaultVal)
	if !ok {
		raw, _ := l.lookup(key)
		l.malformed = append(l.malformed, validate.Error{Field: key, Value: raw, Message: "not an integer"})
	}
	return v
}

// Deployment resolves the deployment this loader enforces.
func (l *Loader) Deployment() (Deployment, error) {
	if l.deploymentSet {
		return l.deployment, nil
	}
	raw, _ := l.lookup(EnvDeployment)
	return ParseDeployment(raw)
}

// Load resolves the settings table.
// Order: Defaults -> File (strict) -> Env -> Derive -> Validate -> Production guard.
func (l *Loader) Load() (Settings, error) {
	l.ConsumedEnvKeys = make(map[string]struct{})
	l.malformed = nil

	deployment, err := l.Deployment()
	if err != nil {
		return Settings{}, err
	}

	// 1. Defaults
	s := Defaults()

	// 2. File overlay (if provided)
	if l.configPath != "" {
		fileCfg, err := LoadFileConfig(l.configPath)
		if err != nil {
			return Settings{}, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&s, fileCfg); err != nil {
			return Settings{}, fmt.Errorf("merge config file: %w", err)
		}
	}

	// 3. Environment (highest priority)
	l.mergeEnv(&s)
	if len(l.malformed) > 0 {
		v := validate.New()
		for _, e := range l.malformed {
			v.AddError(e.Field, e.Message, e.Value)
		}
		return Settings{}, fmt.Errorf("environment: %w", v.Err())
	}

	// 4. Settings defined in terms of others
	s.deriveShared()

	// 5. Shape validation
	if err := Validate(s); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}

	// 6. Production guard
	if err := CheckProduction(s, deployment, l.logger); err != nil {
		return Settings{}, err
	}

	l.logger.Info().
		Str(log.FieldEnv, string(deployment)).
		Int("env_overrides", l.overrideCount()).
		Bool("file", l.configPath != "").
		Msg("settings loaded")

	return s, nil
}

func (l *Loader) mergeEnv(s *Settings) {
	s.SecretKey = l.envString(EnvSecretKey, s.SecretKey)
	s.DatabaseURI = l.envString(EnvDatabaseURL, s.DatabaseURI)
	s.MapboxAPIKey = l.envString(EnvMapboxAPIKey, s.MapboxAPIKey)

	// CACHE_REDIS_DB has no override on purpose.
	s.Cache.RedisHost = l.envString(EnvRedisHost, s.Cache.RedisHost)
	s.Cache.RedisPort = l.envInt(EnvRedisPort, s.Cache.RedisPort)

	s.Celery.BrokerURL = l.envString(EnvCeleryBroker, s.Celery.BrokerURL)
	s.Celery.ResultBackend = l.envString(EnvCeleryResultBackend, s.Celery.ResultBackend)

	s.Email.SMTPHost = l.envString(EnvSMTPHost, s.Email.SMTPHost)
	s.Email.SMTPUser = l.envString(EnvSMTPUser, s.Email.SMTPUser)
	s.Email.SMTPPassword = l.envString(EnvSMTPPassword, s.Email.SMTPPassword)
}

func (l *Loader) overrideCount() int {
	n := 0
	for key := range l.ConsumedEnvKeys {
		if _, ok := l.lookup(key); ok {
			n++
		}
	}
	return n
}

// EnvStatus describes one recognized environment variable.
type EnvStatus struct {
	Key     string
	Setting string // registry name, or the field path for nested overrides
	Set     bool
}

// RecognizedEnv lists every environment variable the loader reads, sorted by key.
func RecognizedEnv(lookup LookupFunc) ([]EnvStatus, error) {
	r, err := GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("get registry: %w", err)
	}
	out := make([]EnvStatus, 0, len(r.ByEnv)+2)
	for key, e := range r.ByEnv {
		name := e.Name
		if name == "" {
			name = e.FieldPath
		}
		_, ok := lookup(key)
		out = append(out, EnvStatus{Key: key, Setting: name, Set: ok})
	}
	for _, key := range []string{EnvDeployment, EnvConfigFile} {
		_, ok := lookup(key)
		out = append(out, EnvStatus{Key: key, Setting: "(loader)", Set: ok})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
