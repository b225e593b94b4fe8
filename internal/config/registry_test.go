// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_UniqueAndCovering(t *testing.T) {
	r, err := GetRegistry()
	require.NoError(t, err)
	require.NoError(t, r.ValidateFieldCoverage())

	// Every env override maps to exactly one field.
	assert.Len(t, r.ByEnv, 10)
	assert.Equal(t, "Cache.RedisPort", r.ByEnv[EnvRedisPort].FieldPath)
	assert.Equal(t, "SMTP_PASSWORD", r.ByEnv[EnvSMTPPassword].Name)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		entries []SettingEntry
		want    string
	}{
		{
			name: "name",
			entries: []SettingEntry{
				{Name: "ROW_LIMIT", FieldPath: "RowLimit"},
				{Name: "ROW_LIMIT", FieldPath: "SecretKey"},
			},
			want: "duplicate registry name",
		},
		{
			name: "env",
			entries: []SettingEntry{
				{Name: "A", Env: "X", FieldPath: "RowLimit"},
				{Name: "B", Env: "X", FieldPath: "SecretKey"},
			},
			want: "duplicate registry env",
		},
		{
			name: "field",
			entries: []SettingEntry{
				{Name: "A", FieldPath: "RowLimit"},
				{Name: "B", FieldPath: "RowLimit"},
			},
			want: "duplicate registry field",
		},
		{
			name:    "anonymous",
			entries: []SettingEntry{{FieldPath: "RowLimit"}},
			want:    "neither name nor env",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildRegistry(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistry_CoverageDetectsMissingField(t *testing.T) {
	entries := settingEntries()
	for i, e := range entries {
		if e.Name == "APP_ICON" {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	r, err := buildRegistry(entries)
	require.NoError(t, err)

	err = r.ValidateFieldCoverage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Branding.AppIcon")
}

func TestSettings_GetAndLookup(t *testing.T) {
	s := Defaults()

	for _, name := range mustRegistry(t).Names() {
		_, ok := s.Lookup(name)
		assert.True(t, ok, name)
	}

	_, ok := s.Lookup("NOT_A_SETTING")
	assert.False(t, ok)
	assert.PanicsWithValue(t, `config: unknown setting "NOT_A_SETTING"`, func() {
		s.Get("NOT_A_SETTING")
	})

	cache, ok := s.Get("CACHE_CONFIG").(CacheConfig)
	require.True(t, ok)
	assert.Equal(t, 1, cache.RedisDB)
}

func TestSettings_GetReturnsCopies(t *testing.T) {
	s := Defaults()

	exts := s.Get("ALLOWED_EXTENSIONS").([]string)
	exts[0] = "exe"
	flags := s.Get("FEATURE_FLAGS").(FeatureFlags)
	flags[FlagAlertReports] = false
	args := s.Get("WEBDRIVER_OPTION_ARGS").([]string)
	args[0] = "--evil"

	assert.Equal(t, "csv", s.Upload.AllowedExtensions[0])
	assert.True(t, s.FeatureFlags.Enabled(FlagAlertReports))
	assert.Equal(t, "--force-device-scale-factor=1.0", s.WebDriver.OptionArgs[0])
}

func mustRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := GetRegistry()
	require.NoError(t, err)
	return r
}
