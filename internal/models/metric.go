// ABOUTME: MetricType and display side table for body-measurement series.
// ABOUTME: Metric types are an open domain; unknown keys fall back to their raw name.
package models

import (
	"math"
	"strconv"
	"strings"
)

// MetricType names a measurement series. Any key the backend sends is valid.
type MetricType string

const (
	MetricWeight  MetricType = "weight"
	MetricHeight  MetricType = "height"
	MetricArm     MetricType = "arm"
	MetricLeg     MetricType = "leg"
	MetricWaist   MetricType = "waist"
	MetricBodyFat MetricType = "body_fat"

	// MetricBMI is derived from weight and height, never ingested.
	MetricBMI MetricType = "bmi"
)

// MetricInfo holds the display label and unit of a metric type.
type MetricInfo struct {
	Label string
	Unit  string
}

// KnownMetrics maps the metric types the app knows how to label.
var KnownMetrics = map[MetricType]MetricInfo{
	MetricWeight:  {Label: "Peso", Unit: "kg"},
	MetricHeight:  {Label: "Altura", Unit: "cm"},
	MetricArm:     {Label: "Braço", Unit: "cm"},
	MetricLeg:     {Label: "Perna", Unit: "cm"},
	MetricWaist:   {Label: "Cintura", Unit: "cm"},
	MetricBodyFat: {Label: "Gordura corporal", Unit: "%"},
	MetricBMI:     {Label: "IMC", Unit: ""},
}

// backendAliases maps the keys the REST backend uses to canonical types.
var backendAliases = map[string]MetricType{
	"peso":             MetricWeight,
	"altura":           MetricHeight,
	"braco":            MetricArm,
	"perna":            MetricLeg,
	"cintura":          MetricWaist,
	"gordura":          MetricBodyFat,
	"gordura_corporal": MetricBodyFat,
	"bodyfat":          MetricBodyFat,
	"body-fat":         MetricBodyFat,
	"imc":              MetricBMI,
}

// ParseMetricType normalizes a raw key into a MetricType. Unknown keys are
// kept as-is (lowercased and trimmed) rather than rejected.
func ParseMetricType(s string) MetricType {
	key := strings.ToLower(strings.TrimSpace(s))
	if mt, ok := backendAliases[key]; ok {
		return mt
	}
	return MetricType(key)
}

// Label returns the display label, or the raw key for unknown types.
func (mt MetricType) Label() string {
	if info, ok := KnownMetrics[mt]; ok {
		return info.Label
	}
	return string(mt)
}

// Unit returns the display unit, or "" for unknown or unitless types.
func (mt MetricType) Unit() string {
	return KnownMetrics[mt].Unit
}

// IsKnown reports whether mt has an entry in the side table.
func (mt MetricType) IsKnown() bool {
	_, ok := KnownMetrics[mt]
	return ok
}

// ParseDecimal parses a loosely formatted decimal such as "24,5" or " 24.5 ".
// A lone comma is read as the decimal separator.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
