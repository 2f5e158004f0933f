// ABOUTME: BMI arithmetic and the clinical classification table.
// ABOUTME: Thresholds are upper-bound exclusive; bad input maps to Unavailable.
package bmi

import (
	"math"

	"github.com/harperreed/gymprogress/internal/models"
)

// Category is a clinical BMI category.
type Category string

const (
	CategoryUnderweight Category = "Abaixo do peso"
	CategoryNormal      Category = "Peso normal"
	CategoryOverweight  Category = "Sobrepeso"
	CategoryObesityI    Category = "Obesidade Grau I"
	CategoryObesityII   Category = "Obesidade Grau II"
	CategoryObesityIII  Category = "Obesidade Grau III"
	CategoryUnavailable Category = "Não disponível"
)

// Tier is the severity used to colour a category.
type Tier string

const (
	TierNormal   Tier = "normal"
	TierCaution  Tier = "caution"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
	TierUnknown  Tier = "unknown"
)

// BMI thresholds, each the exclusive upper bound of the band below it.
const (
	ThresholdUnderweight = 18.5
	ThresholdOverweight  = 25.0
	ThresholdObesityI    = 30.0
	ThresholdObesityII   = 35.0
	ThresholdObesityIII  = 40.0
)

// Classification is the result of classifying a BMI value.
type Classification struct {
	Category Category `json:"category"`
	Tier     Tier     `json:"tier"`
}

// Unavailable is returned for missing or non-numeric input.
var Unavailable = Classification{Category: CategoryUnavailable, Tier: TierUnknown}

// Classify maps a BMI value to its category and tier.
func Classify(value float64) Classification {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return Unavailable
	case value < ThresholdUnderweight:
		return Classification{Category: CategoryUnderweight, Tier: TierCaution}
	case value < ThresholdOverweight:
		return Classification{Category: CategoryNormal, Tier: TierNormal}
	case value < ThresholdObesityI:
		return Classification{Category: CategoryOverweight, Tier: TierCaution}
	case value < ThresholdObesityII:
		return Classification{Category: CategoryObesityI, Tier: TierWarning}
	case value < ThresholdObesityIII:
		return Classification{Category: CategoryObesityII, Tier: TierWarning}
	default:
		return Classification{Category: CategoryObesityIII, Tier: TierCritical}
	}
}

// ClassifyPtr classifies an optional value; nil yields Unavailable.
func ClassifyPtr(value *float64) Classification {
	if value == nil {
		return Unavailable
	}
	return Classify(*value)
}

// ClassifyString parses s (a comma decimal separator is accepted) and
// classifies it. Empty or non-numeric input yields Unavailable.
func ClassifyString(s string) Classification {
	v, ok := models.ParseDecimal(s)
	if !ok {
		return Unavailable
	}
	return Classify(v)
}

// Compute returns weight / (height in meters)^2 rounded to two decimals.
// It reports false when the inputs cannot produce a finite BMI.
func Compute(weightKg, heightCm float64) (float64, bool) {
	if !finite(weightKg) || !finite(heightCm) || heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return Round2(weightKg / (heightM * heightM)), true
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
