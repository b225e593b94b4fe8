// SPDX-License-Identifier: MIT

// Package probe checks that the backends named by a resolved settings table
// are reachable. Loading settings never dials out; probes are opt-in.
package probe

import (
	"context"
	"time"

	"github.com/ManuGH/biconfig/internal/log"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of a single probe.
type Status string

const (
	StatusUp      Status = "up"
	StatusDown    Status = "down"
	StatusSkipped Status = "skipped"
)

// DefaultTimeout bounds each probe when the caller does not pick one.
const DefaultTimeout = 5 * time.Second

// Result describes one probed target.
type Result struct {
	Target  string        `json:"target" yaml:"target"`
	Status  Status        `json:"status" yaml:"status"`
	Addr    string        `json:"addr,omitempty" yaml:"addr,omitempty"`
	Latency time.Duration `json:"latency" yaml:"latency"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Checker probes one target.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// Run executes every checker concurrently, each bounded by timeout, and
// returns the results in checker order. It blocks until all probes return.
func Run(ctx context.Context, checkers []Checker, timeout time.Duration) []Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := log.WithComponentFromContext(ctx, "probe")

	results := make([]Result, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			res := c.Check(cctx)
			res.Target = c.Name()
			if res.Latency == 0 && res.Status != StatusSkipped {
				res.Latency = time.Since(start)
			}
			results[i] = res

			ev := logger.Debug()
			if res.Status == StatusDown {
				ev = logger.Warn()
			}
			ev.Str(log.FieldTarget, res.Target).
				Str("status", string(res.Status)).
				Dur("latency", res.Latency).
				Str("error", res.Error).
				Msg("probe finished")
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// AllUp reports whether no probe is down. Skipped probes do not count against it.
func AllUp(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusDown {
			return false
		}
	}
	return true
}

func down(addr string, err error) Result {
	return Result{Status: StatusDown, Addr: addr, Error: err.Error()}
}
