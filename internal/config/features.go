// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "sort"

// Feature flag names toggled by this deployment.
const (
	FlagAlertReports                  = "ALERT_REPORTS"
	FlagDashboardCrossFilters         = "DASHBOARD_CROSS_FILTERS"
	FlagDashboardRBAC                 = "DASHBOARD_RBAC"
	FlagEmbeddedSuperset              = "EMBEDDED_SUPERSET"
	FlagEnableTemplateProcessing      = "ENABLE_TEMPLATE_PROCESSING"
	FlagSQLLabBackendPersistence      = "SQLLAB_BACKEND_PERSISTENCE"
	FlagSSHTunneling                  = "SSH_TUNNELING"
	FlagPlaywrightReportsAndThumbnail = "PLAYWRIGHT_REPORTS_AND_THUMBNAILS"
)

// FeatureFlags gates optional host platform subsystems.
// Flags that are not listed are off.
type FeatureFlags map[string]bool

// Enabled reports whether the named flag is on.
func (f FeatureFlags) Enabled(name string) bool {
	return f[name]
}

// Names returns the flag names in sorted order.
func (f FeatureFlags) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
