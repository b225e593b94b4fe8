// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ManuGH/biconfig/internal/probe"
)

func runProbe(args []string, stdout, stderr io.Writer) int {
	var cf commonFlags
	fs := newFlagSet("probe", stderr, &cf)
	timeout := fs.Duration("timeout", probe.DefaultTimeout, "per-target probe timeout")
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "Error: unsupported format %q (use text or json)\n", *format)
		return exitUsage
	}

	s, err := cf.load(stderr)
	if err != nil {
		return reportLoadError(stderr, cf, err)
	}

	results := probe.Run(context.Background(), probe.FromSettings(s), *timeout)
	if err := printProbeResults(stdout, results, *format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if !probe.AllUp(results) {
		return exitError
	}
	return exitOK
}

func printProbeResults(w io.Writer, results []probe.Result, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tSTATUS\tADDR\tLATENCY\tDETAIL")
	for _, r := range results {
		detail := r.Message
		if r.Error != "" {
			detail = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Target, r.Status, r.Addr, r.Latency.Round(time.Millisecond), detail)
	}
	return tw.Flush()
}
