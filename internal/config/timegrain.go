// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"slices"
	"sort"
	"strings"
)

// ColumnPlaceholder marks where the timestamp column goes in a time-grain template.
const ColumnPlaceholder = "{col}"

// TimeGrain is an ISO-8601 duration identifying a truncation granularity.
type TimeGrain string

const (
	GrainSecond        TimeGrain = "PT1S"
	GrainMinute        TimeGrain = "PT1M"
	GrainFiveMinutes   TimeGrain = "PT5M"
	GrainTenMinutes    TimeGrain = "PT10M"
	GrainFifteenMinute TimeGrain = "PT15M"
	GrainThirtyMinutes TimeGrain = "PT30M"
	GrainHour          TimeGrain = "PT1H"
	GrainDay           TimeGrain = "P1D"
	GrainWeek          TimeGrain = "P1W"
	GrainMonth         TimeGrain = "P1M"
	GrainQuarter       TimeGrain = "P3M"
	GrainYear          TimeGrain = "P1Y"
)

// canonicalGrains lists the known grains from finest to coarsest.
var canonicalGrains = []TimeGrain{
	GrainSecond, GrainMinute, GrainFiveMinutes, GrainTenMinutes, GrainFifteenMinute,
	GrainThirtyMinutes, GrainHour, GrainDay, GrainWeek, GrainMonth, GrainQuarter, GrainYear,
}

// TimeGrains maps a grain to a SQL expression template containing ColumnPlaceholder.
type TimeGrains map[TimeGrain]string

// DefaultTimeGrains returns the PostgreSQL-flavoured truncation templates.
func DefaultTimeGrains() TimeGrains {
	bucket := func(n string) string {
		return "DATE_TRUNC('minute', {col}) + INTERVAL '" + n + " minute' * (EXTRACT(minute FROM {col})::int / " + n + ")"
	}
	return TimeGrains{
		GrainSecond:        "DATE_TRUNC('second', {col})",
		GrainMinute:        "DATE_TRUNC('minute', {col})",
		GrainFiveMinutes:   bucket("5"),
		GrainTenMinutes:    bucket("10"),
		GrainFifteenMinute: bucket("15"),
		GrainThirtyMinutes: bucket("30"),
		GrainHour:          "DATE_TRUNC('hour', {col})",
		GrainDay:           "DATE_TRUNC('day', {col})",
		GrainWeek:          "DATE_TRUNC('week', {col})",
		GrainMonth:         "DATE_TRUNC('month', {col})",
		GrainQuarter:       "DATE_TRUNC('quarter', {col})",
		GrainYear:          "DATE_TRUNC('year', {col})",
	}
}

// Template returns the raw template for grain.
func (g TimeGrains) Template(grain TimeGrain) (string, bool) {
	tmpl, ok := g[grain]
	return tmpl, ok
}

// Expression renders the template for grain against column.
func (g TimeGrains) Expression(grain TimeGrain, column string) (string, bool) {
	tmpl, ok := g[grain]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(tmpl, ColumnPlaceholder, column), true
}

// Grains returns the configured grains, known ones first in fine-to-coarse
// order, then any extra grains sorted by name.
func (g TimeGrains) Grains() []TimeGrain {
	out := make([]TimeGrain, 0, len(g))
	for _, grain := range canonicalGrains {
		if _, ok := g[grain]; ok {
			out = append(out, grain)
		}
	}
	var extra []TimeGrain
	for grain := range g {
		if !slices.Contains(canonicalGrains, grain) {
			extra = append(extra, grain)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
