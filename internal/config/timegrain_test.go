// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTimeGrains_DayTruncation(t *testing.T) {
	g := DefaultTimeGrains()

	tmpl, ok := g.Template(GrainDay)
	assert.True(t, ok)
	assert.Contains(t, tmpl, ColumnPlaceholder)

	expr, ok := g.Expression(GrainDay, `"order_date"`)
	assert.True(t, ok)
	assert.Equal(t, `DATE_TRUNC('day', "order_date")`, expr)

	_, ok = g.Expression("PT2H", "ts")
	assert.False(t, ok)
}

func TestTimeGrains_BucketTemplatesReplaceEveryPlaceholder(t *testing.T) {
	expr, ok := DefaultTimeGrains().Expression(GrainFifteenMinute, "ts")
	assert.True(t, ok)
	assert.NotContains(t, expr, ColumnPlaceholder)
	assert.Equal(t,
		"DATE_TRUNC('minute', ts) + INTERVAL '15 minute' * (EXTRACT(minute FROM ts)::int / 15)",
		expr)
}

func TestTimeGrains_Order(t *testing.T) {
	g := DefaultTimeGrains()
	g["PT6H"] = "x {col}"
	g["P2W"] = "y {col}"

	want := append(append([]TimeGrain{}, canonicalGrains...), "P2W", "PT6H")
	if diff := cmp.Diff(want, g.Grains()); diff != "" {
		t.Fatalf("grain order mismatch (-want +got):\n%s", diff)
	}
}

func TestUpload_AllowedExtensions(t *testing.T) {
	u := Defaults().Upload

	assert.Equal(t, unionExtensions(u.CSVExtensions, u.ExcelExtensions), u.AllowedExtensions)
	for _, ext := range append(append([]string{}, u.CSVExtensions...), u.ExcelExtensions...) {
		assert.Contains(t, u.AllowedExtensions, ext)
	}
	assert.Len(t, u.AllowedExtensions, len(u.CSVExtensions)+len(u.ExcelExtensions))
}

func TestUnionExtensions_Normalizes(t *testing.T) {
	got := unionExtensions([]string{".CSV", "txt", " "}, []string{"csv", "xlsx", ".txt"})
	assert.Equal(t, []string{"csv", "txt", "xlsx"}, got)
	assert.Equal(t, []string{}, unionExtensions())
}

func TestFeatureFlags_Names(t *testing.T) {
	f := FeatureFlags{"B": true, "A": false}
	assert.Equal(t, []string{"A", "B"}, f.Names())
	assert.True(t, f.Enabled("B"))
	assert.False(t, f.Enabled("A"))
	assert.False(t, f.Enabled("MISSING"))
}
