// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"strings"
)

// Deployment selects how strictly production-only requirements are enforced.
type Deployment string

const (
	// DeploymentProduction turns missing production overrides into load errors.
	DeploymentProduction Deployment = "production"
	// DeploymentDevelopment downgrades them to warnings.
	DeploymentDevelopment Deployment = "development"
)

// ParseDeployment maps a BICONFIG_ENV value to a Deployment.
// An empty value selects production.
func ParseDeployment(s string) (Deployment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prod", "production":
		return DeploymentProduction, nil
	case "dev", "development", "local":
		return DeploymentDevelopment, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDeployment, s)
	}
}

// IsProduction reports whether d enforces production requirements.
func (d Deployment) IsProduction() bool {
	return d != DeploymentDevelopment
}
