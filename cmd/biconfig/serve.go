// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/biconfig/internal/api"
	"github.com/ManuGH/biconfig/internal/config"
	"github.com/ManuGH/biconfig/internal/log"
	"github.com/ManuGH/biconfig/internal/metrics"
	"github.com/ManuGH/biconfig/internal/probe"
)

func runServe(args []string, stdout, stderr io.Writer) int {
	var cf commonFlags
	fs := newFlagSet("serve", stderr, &cf)
	addr := fs.String("addr", ":8088", "listen address")
	interval := fs.Duration("probe-interval", 30*time.Second, "backend probe interval (0 disables)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s, err := cf.load(stderr)
	if err != nil {
		return reportLoadError(stderr, cf, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, s, *addr, *interval); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// serve runs the sidecar and the probe loop until ctx is cancelled or one fails.
func serve(ctx context.Context, s config.Settings, addr string, interval time.Duration) error {
	logger := log.WithComponent("serve")
	metrics.RecordSettings(s)

	srv, err := api.New(s, api.Options{})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx, addr)
	})

	if interval > 0 {
		checkers := probe.FromSettings(s)
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				results := probe.Run(ctx, checkers, probe.DefaultTimeout)
				metrics.RecordProbes(results)
				if !probe.AllUp(results) {
					logger.Warn().Msg("one or more backends are unreachable")
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		})
	}

	return g.Wait()
}
