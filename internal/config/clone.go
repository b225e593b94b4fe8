// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "maps"

// Clone returns an alias-free deep copy of Settings.
// Only reference types (maps/slices) are cloned; nested structs are copied by value.
func Clone(in Settings) Settings {
	out := in

	out.CSRF.ExemptList = cloneStringSlice(in.CSRF.ExemptList)

	// --- Celery annotations (map of value structs) ---
	if in.Celery.TaskAnnotations != nil {
		out.Celery.TaskAnnotations = maps.Clone(in.Celery.TaskAnnotations)
	}

	if in.FeatureFlags != nil {
		out.FeatureFlags = maps.Clone(in.FeatureFlags)
	}

	out.WebDriver.OptionArgs = cloneStringSlice(in.WebDriver.OptionArgs)

	out.Upload.CSVExtensions = cloneStringSlice(in.Upload.CSVExtensions)
	out.Upload.ExcelExtensions = cloneStringSlice(in.Upload.ExcelExtensions)
	out.Upload.AllowedExtensions = cloneStringSlice(in.Upload.AllowedExtensions)

	// CORS options are free-form; nested values are copied deeply.
	if in.Security.CORSOptions != nil {
		out.Security.CORSOptions = cloneAnyMap(in.Security.CORSOptions)
	}

	if in.TimeGrains != nil {
		out.TimeGrains = maps.Clone(in.TimeGrains)
	}

	if in.DashboardRefreshIntervals != nil {
		out.DashboardRefreshIntervals = append([]RefreshInterval(nil), in.DashboardRefreshIntervals...)
	}
	if in.Branding.Favicons != nil {
		out.Branding.Favicons = append([]Favicon(nil), in.Branding.Favicons...)
	}

	return out
}

func cloneStringSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneAnyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneAnyMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneAny(t[i])
		}
		return out
	case []string:
		return cloneStringSlice(t)
	default:
		return v
	}
}
