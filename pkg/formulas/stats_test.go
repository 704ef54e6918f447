package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{name: "median", p: 50, expected: 3},
		{name: "lower quartile", p: 25, expected: 2},
		{name: "upper quartile", p: 75, expected: 4},
		{name: "interpolated between ranks", p: 10, expected: 1.4},
		{name: "minimum", p: 0, expected: 1},
		{name: "maximum", p: 100, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Percentile(data, tt.p), 1e-12)
		})
	}
}

func TestPercentile_UnsortedInput(t *testing.T) {
	data := []float64{5, 1, 4, 2, 3}
	assert.InDelta(t, 3.0, Percentile(data, 50), 1e-12)

	// Input slice must not be reordered
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, data)
}

func TestPercentile_EdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 7.5, Percentile([]float64{7.5}, 99))
}

func TestTailMean_WorstFivePercent(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i + 1) // 1..100
	}

	// 5th percentile threshold is 5.95; tail is {1,2,3,4,5}
	assert.InDelta(t, 3.0, TailMean(data, 5), 1e-12)
}

func TestTailMean_NeverAboveThreshold(t *testing.T) {
	data := []float64{-0.03, -0.01, 0.002, 0.015, -0.022, 0.007, 0.031, -0.008}

	assert.LessOrEqual(t, TailMean(data, 5), Percentile(data, 5))
	assert.Equal(t, 0.0, TailMean(nil, 5))
}

func TestMeanAndStdDev(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(data), 1e-12)
	assert.InDelta(t, 2.1381, StdDev(data), 1e-4)
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, StdDev(nil))
}
