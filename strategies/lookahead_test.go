package strategies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Signals up to date D must not change when bars after D are removed.
// This checks the no-look-ahead contract for every registered strategy.
func TestSignalsHaveNoLookAhead(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/7) + float64(i)*0.3
	}
	full := seriesFromCloses(t, closes...)

	for _, name := range Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			strat, err := ByName(name)
			require.NoError(t, err)

			fullSignals, err := strat.Signals(full)
			require.NoError(t, err)

			for _, cut := range []int{30, 60, 90} {
				truncated := full.TruncateAfter(full.Bars[cut-1].Date)
				require.Equal(t, cut, truncated.Len())

				// a fresh instance, in case the strategy keeps state
				strat2, err := ByName(name)
				require.NoError(t, err)
				gotSignals, err := strat2.Signals(truncated)
				require.NoError(t, err)

				assert.Equal(t, fullSignals[:cut], gotSignals, "prefix mismatch at cut %d", cut)
			}
		})
	}
}
