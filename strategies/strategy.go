package strategies

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/backtester/market"
)

// Signal is one per-bar trading decision. Enter and Exit are produced only
// from bars at or before Date; a strategy must never read future bars.
type Signal struct {
	Date   time.Time
	Enter  bool
	Exit   bool
	Reason string
}

// Strategy generates one Signal per bar from a daily price series.
//
// Implementations must be pure functions of the series: no side effects, and
// the signal for bar i may depend only on bars 0..i. The simulation engine
// consumes the signals; it never decides what they mean.
type Strategy interface {
	Name() string
	Signals(s *market.Series) ([]Signal, error)
}

var registry = map[string]func() Strategy{}

// Register makes a strategy constructor available to ByName and Names.
// Strategies register themselves in init.
func Register(name string, factory func() Strategy) {
	registry[name] = factory
}

// ByName returns a fresh strategy instance with default parameters.
func ByName(name string) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (supported: %v)", name, Names())
	}
	return factory(), nil
}

// Names lists the registered strategy names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
