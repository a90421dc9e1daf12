package sim

import "errors"

var (
	// ErrInvalidCapital is returned before any bar is processed when the
	// configured initial capital is not positive.
	ErrInvalidCapital = errors.New("sim: initial capital must be positive")

	// ErrInsufficientData is returned before any bar is processed when the
	// signal stream is missing, shorter than the price series, or its dates
	// do not align 1:1 with the bar dates.
	ErrInsufficientData = errors.New("sim: signals do not align with price series")
)
