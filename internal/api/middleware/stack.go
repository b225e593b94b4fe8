// SPDX-License-Identifier: MIT

package middleware

import "github.com/go-chi/chi/v5"

// StackConfig configures the ingress middleware stack.
type StackConfig struct {
	EnableLogging   bool
	EnableRateLimit bool
	RateLimit       RateLimitConfig
}

// NewRouter constructs a chi router with the middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Security headers
	r.Use(SecurityHeaders)
	// 4. Logging (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(AccessLog)
	}
	// 5. Rate limit
	if cfg.EnableRateLimit {
		if cfg.RateLimit.RequestLimit > 0 {
			r.Use(RateLimit(cfg.RateLimit))
		} else {
			r.Use(DefaultRateLimit())
		}
	}
}
