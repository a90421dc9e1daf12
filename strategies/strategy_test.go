package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"noop", "ema-cross", "bollinger-bounce"} {
		strat, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, strat.Name())
	}
}

func TestByNameUnknown(t *testing.T) {
	t.Parallel()

	_, err := ByName("no-such-strategy")
	assert.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Contains(t, names, "noop")
	assert.Contains(t, names, "ema-cross")
	assert.Contains(t, names, "bollinger-bounce")
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
