// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/ManuGH/biconfig/internal/config"
)

func runDump(args []string, stdout, stderr io.Writer) int {
	var cf commonFlags
	fs := newFlagSet("dump", stderr, &cf)
	format := fs.String("format", "yaml", "output format: yaml or json")
	out := fs.String("o", "", "write to this file atomically instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *format != "yaml" && *format != "json" {
		fmt.Fprintf(stderr, "Error: unsupported format %q (use yaml or json)\n", *format)
		return exitUsage
	}

	s, err := cf.load(stderr)
	if err != nil {
		return reportLoadError(stderr, cf, err)
	}

	data, err := renderRedacted(s, *format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if *out == "" {
		_, _ = stdout.Write(data)
		return exitOK
	}
	if err := writeAtomic(*out, data); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return exitOK
}

// renderRedacted encodes every named setting with secrets masked.
func renderRedacted(s config.Settings, format string) ([]byte, error) {
	redacted := s.Redacted()
	var buf bytes.Buffer
	switch format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(redacted); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(redacted); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// writeAtomic replaces path with data; readers never see a partial dump.
func writeAtomic(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("create pending dump file: %w", err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write dump data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace dump file: %w", err)
	}
	return nil
}
