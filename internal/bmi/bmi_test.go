package bmi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		value float64
		want  Classification
	}{
		{10, Classification{CategoryUnderweight, TierCaution}},
		{18.4, Classification{CategoryUnderweight, TierCaution}},
		{18.5, Classification{CategoryNormal, TierNormal}},
		{24.99, Classification{CategoryNormal, TierNormal}},
		{25.0, Classification{CategoryOverweight, TierCaution}},
		{29.99, Classification{CategoryOverweight, TierCaution}},
		{30.0, Classification{CategoryObesityI, TierWarning}},
		{35.0, Classification{CategoryObesityII, TierWarning}},
		{39.99, Classification{CategoryObesityII, TierWarning}},
		{40.0, Classification{CategoryObesityIII, TierCritical}},
		{55, Classification{CategoryObesityIII, TierCritical}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value), "Classify(%v)", tt.value)
	}
}

func TestClassifyUnavailable(t *testing.T) {
	assert.Equal(t, Unavailable, Classify(math.NaN()))
	assert.Equal(t, Unavailable, Classify(math.Inf(1)))
	assert.Equal(t, Unavailable, ClassifyPtr(nil))
	assert.Equal(t, Unavailable, ClassifyString(""))
	assert.Equal(t, Unavailable, ClassifyString("abc"))
	assert.Equal(t, Unavailable, ClassifyString("NaN"))
}

func TestClassifyString(t *testing.T) {
	assert.Equal(t, CategoryNormal, ClassifyString("22,4").Category)
	assert.Equal(t, CategoryOverweight, ClassifyString(" 27.1 ").Category)

	v := 31.0
	assert.Equal(t, CategoryObesityI, ClassifyPtr(&v).Category)
}

func TestCompute(t *testing.T) {
	v, ok := Compute(80, 200)
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	v, ok = Compute(70, 175)
	assert.True(t, ok)
	assert.Equal(t, 22.86, v)

	_, ok = Compute(80, 0)
	assert.False(t, ok)
	_, ok = Compute(math.NaN(), 180)
	assert.False(t, ok)
	_, ok = Compute(80, -170)
	assert.False(t, ok)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 22.86, Round2(22.857142))
	assert.Equal(t, 20.0, Round2(20.004))
}
