// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unset", nil, "localhost"},
		{"set", map[string]string{EnvSMTPHost: "smtp.env"}, "smtp.env"},
		{"set but empty", map[string]string{EnvSMTPHost: ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseString(MapLookup(tt.env), zerolog.Nop(), EnvSMTPHost, "localhost")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStringNeverLogsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	lookup := MapLookup(map[string]string{
		EnvSMTPPassword: "hunter2",
		EnvSecretKey:    "topsecret",
		EnvDatabaseURL:  "postgresql://bi:dbpw@db/bi",
	})

	assert.Equal(t, "hunter2", parseString(lookup, logger, EnvSMTPPassword, ""))
	assert.Equal(t, "topsecret", parseString(lookup, logger, EnvSecretKey, ""))
	assert.Equal(t, "postgresql://bi:dbpw@db/bi", parseString(lookup, logger, EnvDatabaseURL, ""))

	queryLookup := MapLookup(map[string]string{EnvDatabaseURL: "postgresql://db/bi?password=querypw"})
	parseString(queryLookup, logger, EnvDatabaseURL, "")

	out := buf.String()
	assert.NotContains(t, out, "querypw")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "topsecret")
	assert.NotContains(t, out, "dbpw")
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		want   int
		wantOK bool
	}{
		{"unset", nil, 6379, true},
		{"empty", map[string]string{EnvRedisPort: ""}, 6379, false},
		{"valid", map[string]string{EnvRedisPort: " 6380 "}, 6380, true},
		{"malformed", map[string]string{EnvRedisPort: "63a9"}, 6379, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseInt(MapLookup(tt.env), zerolog.Nop(), EnvRedisPort, 6379)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseDeployment(t *testing.T) {
	for in, want := range map[string]Deployment{
		"":            DeploymentProduction,
		"PROD":        DeploymentProduction,
		"production":  DeploymentProduction,
		"dev":         DeploymentDevelopment,
		" Local ":     DeploymentDevelopment,
		"development": DeploymentDevelopment,
	} {
		got, err := ParseDeployment(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDeployment("qa")
	assert.ErrorIs(t, err, ErrUnknownDeployment)
	assert.False(t, DeploymentDevelopment.IsProduction())
	assert.True(t, DeploymentProduction.IsProduction())
}
