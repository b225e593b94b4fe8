// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// biconfig resolves, checks and serves the BI platform settings table.
//
// Usage:
//
//	biconfig validate [-c biconfig.yaml]
//	biconfig dump [-c biconfig.yaml] [--format yaml|json] [-o out.yaml]
//	biconfig env
//	biconfig probe [-c biconfig.yaml] [--timeout 5s]
//	biconfig serve [-c biconfig.yaml] [--addr :8088]
//
// Exit codes:
//   - 0: success
//   - 1: settings or probe error
//   - 2: usage error
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ManuGH/biconfig/internal/config"
	"github.com/ManuGH/biconfig/internal/log"
	"github.com/ManuGH/biconfig/internal/validate"
	"github.com/ManuGH/biconfig/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	switch args[0] {
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "dump":
		return runDump(args[1:], stdout, stderr)
	case "env":
		return runEnv(args[1:], stdout, stderr)
	case "probe":
		return runProbe(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stdout, stderr)
	case "version", "--version":
		fmt.Fprintln(stdout, version.String())
		return exitOK
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  biconfig validate [-c biconfig.yaml] [--env production|development]")
	fmt.Fprintln(w, "  biconfig dump [-c biconfig.yaml] [--format yaml|json] [-o file]")
	fmt.Fprintln(w, "  biconfig env")
	fmt.Fprintln(w, "  biconfig probe [-c biconfig.yaml] [--timeout 5s] [--format text|json]")
	fmt.Fprintln(w, "  biconfig serve [-c biconfig.yaml] [--addr :8088] [--probe-interval 30s]")
	fmt.Fprintln(w, "  biconfig version")
}

// commonFlags are shared by every subcommand that loads settings.
type commonFlags struct {
	configPath string
	deployment string
	logLevel   string
}

func newFlagSet(name string, stderr io.Writer, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("biconfig "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	defaultPath := os.Getenv(config.EnvConfigFile)
	fs.StringVar(&cf.configPath, "config", defaultPath, "path to YAML settings overlay (env "+config.EnvConfigFile+")")
	fs.StringVar(&cf.configPath, "c", defaultPath, "path to YAML settings overlay (shorthand)")
	fs.StringVar(&cf.deployment, "env", "", "deployment: production or development (default from "+config.EnvDeployment+")")
	fs.StringVar(&cf.logLevel, "log-level", "", "log level (default from LOG_LEVEL, else info)")
	return fs
}

func (cf commonFlags) load(stderr io.Writer) (config.Settings, error) {
	log.Configure(log.Config{Level: cf.logLevel, Output: stderr})

	var opts []config.Option
	if strings.TrimSpace(cf.deployment) != "" {
		d, err := config.ParseDeployment(cf.deployment)
		if err != nil {
			return config.Settings{}, err
		}
		opts = append(opts, config.WithDeployment(d))
	}
	return config.NewLoader(strings.TrimSpace(cf.configPath), opts...).Load()
}

func reportLoadError(stderr io.Writer, cf commonFlags, err error) int {
	kind := "Settings"
	var verr validate.ValidationError
	isValidation := errors.As(err, &verr)
	if isValidation {
		kind = "Validation"
	}

	if cf.configPath != "" {
		fmt.Fprintf(stderr, "%s error (file %s):\n", kind, cf.configPath)
	} else {
		fmt.Fprintf(stderr, "%s error:\n", kind)
	}

	if !isValidation {
		fmt.Fprintf(stderr, "  %v\n", err)
		return exitError
	}
	for _, e := range verr.Errors() {
		fmt.Fprintf(stderr, "  - %s: %s\n", e.Field, e.Message)
	}
	return exitError
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	var cf commonFlags
	fs := newFlagSet("validate", stderr, &cf)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s, err := cf.load(stderr)
	if err != nil {
		return reportLoadError(stderr, cf, err)
	}

	fmt.Fprintln(stdout, "✓ settings are valid")
	if s.UsesDefaultSecretKey() {
		fmt.Fprintf(stdout, "! %s is the shipped default; set it before deploying to production\n", config.EnvSecretKey)
	}
	if _, err := s.RequireDatabaseURI(); err != nil {
		fmt.Fprintf(stdout, "! %v\n", err)
	}
	return exitOK
}
