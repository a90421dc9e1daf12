package indicators

import "fmt"

// Bands holds rolling Bollinger band values. Entries before the window is
// full are NaN in all three slices.
type Bands struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
}

// Bollinger calculates Bollinger bands: a rolling SMA with upper/lower
// bands width standard deviations away.
func Bollinger(values []float64, period int, width float64) (Bands, error) {
	if width <= 0 {
		return Bands{}, fmt.Errorf("band width must be positive, got %v", width)
	}

	middle, err := SMA(values, period)
	if err != nil {
		return Bands{}, err
	}
	std, err := RollingStd(values, period)
	if err != nil {
		return Bands{}, err
	}

	upper := make([]float64, len(values))
	lower := make([]float64, len(values))
	for i := range values {
		upper[i] = middle[i] + std[i]*width
		lower[i] = middle[i] - std[i]*width
	}
	return Bands{Middle: middle, Upper: upper, Lower: lower}, nil
}
