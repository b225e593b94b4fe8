// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Addr returns the cache server address as host:port.
func (c CacheConfig) Addr() string {
	return net.JoinHostPort(c.RedisHost, strconv.Itoa(c.RedisPort))
}

// RedisOptions builds client options for a RedisCache backend.
// It fails for any other cache type.
func (c CacheConfig) RedisOptions() (*redis.Options, error) {
	if c.Type != CacheTypeRedis {
		return nil, fmt.Errorf("cache type %q is not backed by redis", c.Type)
	}
	return &redis.Options{
		Addr:         c.Addr(),
		DB:           c.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}, nil
}

// BrokerOptions parses the broker URL into redis client options.
// Load only checks the scheme and host; database paths and query options
// are parsed here.
func (c CeleryConfig) BrokerOptions() (*redis.Options, error) {
	return parseRedisURL("broker", c.BrokerURL)
}

// ResultBackendOptions parses the result backend URL into redis client options.
func (c CeleryConfig) ResultBackendOptions() (*redis.Options, error) {
	return parseRedisURL("result backend", c.ResultBackend)
}

func parseRedisURL(kind, raw string) (*redis.Options, error) {
	opts, err := redis.ParseURL(raw)
	if err != nil {
		// *url.Error quotes the raw URL, credentials included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("parse %s url %s: %w", kind, MaskURL(raw), err)
	}
	return opts, nil
}

// Limit parses the annotation's rate limit. An empty rate limit means
// unlimited. Accepted forms are "<n>", "<n>/s", "<n>/m" and "<n>/h".
func (a TaskAnnotation) Limit() (rate.Limit, error) {
	raw := strings.TrimSpace(a.RateLimit)
	if raw == "" {
		return rate.Inf, nil
	}

	count, unit, _ := strings.Cut(raw, "/")
	n, err := strconv.ParseFloat(strings.TrimSpace(count), 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRateLimit, a.RateLimit)
	}

	var per time.Duration
	switch strings.TrimSpace(unit) {
	case "", "s":
		per = time.Second
	case "m":
		per = time.Minute
	case "h":
		per = time.Hour
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRateLimit, a.RateLimit)
	}
	return rate.Limit(n / per.Seconds()), nil
}

// Addr returns the SMTP relay address as host:port.
func (e EmailConfig) Addr() string {
	return net.JoinHostPort(e.SMTPHost, strconv.Itoa(e.SMTPPort))
}

// UsesDefaultSecretKey reports whether the shipped secret key is still in place.
func (s Settings) UsesDefaultSecretKey() bool {
	return s.SecretKey == DefaultSecretKey
}

// RequireDatabaseURI returns the metadata database URI or ErrMissingDatabaseURI.
func (s Settings) RequireDatabaseURI() (string, error) {
	if strings.TrimSpace(s.DatabaseURI) == "" {
		return "", fmt.Errorf("%w (set %s)", ErrMissingDatabaseURI, EnvDatabaseURL)
	}
	return s.DatabaseURI, nil
}
