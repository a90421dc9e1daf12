package indicators

import (
	"fmt"
	"math"
)

// SMA calculates the simple moving average over a rolling window.
//
// The result has one entry per input value; entries before the window is
// full are NaN.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// EMA calculates the exponential moving average with the usual
// 2/(period+1) multiplier, seeded from the first value so every entry is
// defined.
func EMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	multiplier := 2.0 / float64(period+1)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out, nil
}

// RollingStd calculates the rolling sample standard deviation (n-1
// denominator). Entries before the window is full are NaN.
func RollingStd(values []float64, period int) ([]float64, error) {
	if period <= 1 {
		return nil, fmt.Errorf("period must be at least 2, got %d", period)
	}

	out := make([]float64, len(values))
	for i := range values {
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		window := values[i-period+1 : i+1]

		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		ss := 0.0
		for _, v := range window {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(period-1))
	}
	return out, nil
}
