// Package metrics exposes Prometheus gauges describing the resolved settings table.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ManuGH/biconfig/internal/config"
	"github.com/ManuGH/biconfig/internal/probe"
)

// Labels carry setting names and backend targets only, never values that
// could hold credentials.

var (
	// FeatureFlag reports each configured feature flag as 0 or 1.
	FeatureFlag = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "biconfig_feature_flag",
		Help: "Feature flag state (1 = enabled), by flag.",
	}, []string{"flag"})

	// SettingsInfo is always 1; its labels describe the loaded table.
	SettingsInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "biconfig_settings_info",
		Help: "Descriptive labels of the loaded settings table (value is always 1).",
	}, []string{"app_name", "cache_type", "webdriver"})

	// RowLimit mirrors ROW_LIMIT.
	RowLimit = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biconfig_row_limit",
		Help: "Maximum number of rows returned by a query.",
	})

	// SQLLabTimeoutSeconds mirrors SQLLAB_TIMEOUT.
	SQLLabTimeoutSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biconfig_sqllab_timeout_seconds",
		Help: "Synchronous SQL Lab query timeout in seconds.",
	})

	// ProbeUp reports the last probe result per backend target.
	ProbeUp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "biconfig_probe_up",
		Help: "Last probe result (1 = up, 0 = down), by target. Skipped targets are not reported.",
	}, []string{"target"})
)

// RecordSettings publishes the settings gauges. Calling it again replaces
// the previous label sets.
func RecordSettings(s config.Settings) {
	FeatureFlag.Reset()
	for _, name := range s.FeatureFlags.Names() {
		FeatureFlag.WithLabelValues(name).Set(boolToFloat(s.FeatureFlags.Enabled(name)))
	}

	SettingsInfo.Reset()
	SettingsInfo.WithLabelValues(s.Branding.AppName, s.Cache.Type, s.WebDriver.Type).Set(1)

	RowLimit.Set(float64(s.RowLimit))
	SQLLabTimeoutSeconds.Set(s.SQLLab.Timeout.Seconds())
}

// RecordProbes publishes probe results.
func RecordProbes(results []probe.Result) {
	for _, r := range results {
		switch r.Status {
		case probe.StatusUp:
			ProbeUp.WithLabelValues(r.Target).Set(1)
		case probe.StatusDown:
			ProbeUp.WithLabelValues(r.Target).Set(0)
		default:
			ProbeUp.DeleteLabelValues(r.Target)
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
