package walker

import (
	"fmt"
	"math"
	"strings"
)

// Policy selects how the walker decides between turning and moving.
type Policy int

const (
	// PolicyFreeTurn moves one cell forward or pivots 90 degrees onto a
	// free orthogonal neighbour.
	PolicyFreeTurn Policy = iota
	// PolicyVertical always advances two cells along its local up axis and
	// turns by picking a whole new orientation.
	PolicyVertical
)

func (p Policy) String() string {
	switch p {
	case PolicyFreeTurn:
		return "free"
	case PolicyVertical:
		return "vertical"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free", "free-turn", "free_turn", "a":
		return PolicyFreeTurn, nil
	case "vertical", "vertical-biased", "vertical_biased", "b":
		return PolicyVertical, nil
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, s)
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// DefaultPlacementAttempts is the retry budget for randomized placement.
const DefaultPlacementAttempts = 1000

// MaxSpawnAreaSize is the largest cube side whose cell count fits in an int.
var MaxSpawnAreaSize = func() float64 {
	n := int(math.Cbrt(math.MaxInt))
	for n > 1 && n > math.MaxInt/n/n {
		n--
	}
	return float64(n - 1)
}()

// Config is the walker's whole configuration surface.
type Config struct {
	SpawnAreaSize float64
	// SpawnInterval and StartDelay are in seconds. The walker does not
	// schedule itself; they are carried for the driver.
	SpawnInterval float64
	StartDelay    float64
	// TurnFrequency n gives a voluntary turn a 1/n chance per tick.
	// Zero disables voluntary turns.
	TurnFrequency     int
	RandomizeAtStart  bool
	Policy            Policy
	PlacementAttempts int
}

func DefaultConfig() Config {
	return Config{
		SpawnAreaSize:     20,
		SpawnInterval:     0.05,
		StartDelay:        0.5,
		TurnFrequency:     3,
		RandomizeAtStart:  true,
		Policy:            PolicyFreeTurn,
		PlacementAttempts: DefaultPlacementAttempts,
	}
}

func (c Config) Validate() error {
	if math.IsNaN(c.SpawnAreaSize) || math.IsInf(c.SpawnAreaSize, 0) {
		return fmt.Errorf("%w: spawn area size %g is not finite", ErrInvalidConfig, c.SpawnAreaSize)
	}
	if c.SpawnAreaSize < 0 {
		return fmt.Errorf("%w: spawn area size %g is negative", ErrInvalidConfig, c.SpawnAreaSize)
	}
	if c.SpawnAreaSize > MaxSpawnAreaSize {
		return fmt.Errorf("%w: spawn area size %g exceeds %g", ErrInvalidConfig, c.SpawnAreaSize, MaxSpawnAreaSize)
	}
	if c.SpawnInterval < 0 {
		return fmt.Errorf("%w: spawn interval %g is negative", ErrInvalidConfig, c.SpawnInterval)
	}
	if c.StartDelay < 0 {
		return fmt.Errorf("%w: start delay %g is negative", ErrInvalidConfig, c.StartDelay)
	}
	if c.TurnFrequency < 0 {
		return fmt.Errorf("%w: turn frequency %d is negative", ErrInvalidConfig, c.TurnFrequency)
	}
	if c.Policy != PolicyFreeTurn && c.Policy != PolicyVertical {
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, int(c.Policy))
	}
	if c.PlacementAttempts < 0 {
		return fmt.Errorf("%w: placement attempts %d is negative", ErrInvalidConfig, c.PlacementAttempts)
	}
	return nil
}

func (c Config) attempts() int {
	if c.PlacementAttempts == 0 {
		return DefaultPlacementAttempts
	}
	return c.PlacementAttempts
}
