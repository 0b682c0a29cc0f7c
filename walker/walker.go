package walker

import (
	"log"
	"time"
)

// Spawner creates the visible objects for the walker.
type Spawner interface {
	// SpawnPipe places a pipe segment ending at pose. The returned handle is
	// stored in the occupancy set.
	SpawnPipe(pose Pose) Handle
	// SpawnJoint places a joint at pose. The handle is not retained.
	SpawnJoint(pose Pose) Handle
}

// RelocationObserver is implemented by spawners that want to know when the
// agent escapes a dead end.
type RelocationObserver interface {
	Relocated(pose Pose)
}

// Outcome describes what a Step did.
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeTurned
	OutcomeReoriented
	OutcomeRelocated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeTurned:
		return "turned"
	case OutcomeReoriented:
		return "reoriented"
	case OutcomeRelocated:
		return "relocated"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Step.
type Result struct {
	Outcome Outcome
	Pose    Pose
	// Saturated is set when a relocation found no free cell within the
	// attempt budget and the agent was parked on an occupied cell.
	Saturated bool
}

type Option func(*Walker)

func WithRand(r Rand) Option {
	return func(w *Walker) {
		if r != nil {
			w.rng = r
		}
	}
}

// WithOccupancy starts the walker with an existing occupancy set.
func WithOccupancy(o *Occupancy) Option {
	return func(w *Walker) {
		if o != nil {
			w.pipes = o
		}
	}
}

// WithPose sets the starting pose. RandomizeAtStart overrides it.
func WithPose(p Pose) Option {
	return func(w *Walker) {
		w.pose = p
	}
}

// WithLogger enables informational logging (dead-end relocations).
func WithLogger(l *log.Logger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

// Walker is a single agent laying pipes on a bounded lattice. It is not safe
// for concurrent use; one driver calls Step at a time.
type Walker struct {
	cfg     Config
	bounds  Bounds
	spawner Spawner
	rng     Rand
	logger  *log.Logger

	pipes *Occupancy
	pose  Pose
	steps int
}

// New validates cfg and places the agent. With RandomizeAtStart it returns
// an *InitializationError when no free cell turns up within the attempt
// budget.
func New(cfg Config, spawner Spawner, opts ...Option) (*Walker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if spawner == nil {
		return nil, ErrNilSpawner
	}

	w := &Walker{
		cfg:     cfg,
		bounds:  Bounds{Size: cfg.SpawnAreaSize},
		spawner: spawner,
		pose:    Pose{Orientation: Identity},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.pipes == nil {
		w.pipes = NewOccupancy()
	}
	if w.rng == nil {
		w.rng = NewRand(uint64(time.Now().UnixNano()))
	}

	if cfg.RandomizeAtStart {
		if err := w.Randomize(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Walker) Config() Config        { return w.cfg }
func (w *Walker) Bounds() Bounds        { return w.bounds }
func (w *Walker) Pose() Pose            { return w.pose }
func (w *Walker) Occupancy() *Occupancy { return w.pipes }

// Steps returns how many times Step has run.
func (w *Walker) Steps() int { return w.steps }

// IsWithinBounds reports whether p lies inside the spawn cube.
func (w *Walker) IsWithinBounds(p Vec3) bool {
	return w.bounds.Contains(p)
}

// IsFreeOfPipes reports whether the cell under p holds no pipe.
func (w *Walker) IsFreeOfPipes(p Vec3) bool {
	return !w.pipes.Has(p.Round())
}

func (w *Walker) isOpen(p Vec3) bool {
	return w.IsWithinBounds(p) && w.IsFreeOfPipes(p)
}

// Step advances the agent by one tick. It always terminates.
func (w *Walker) Step() Result {
	w.steps++
	if w.cfg.Policy == PolicyVertical {
		return w.stepVertical()
	}
	return w.stepFreeTurn()
}

// Randomize moves the agent to a random free cell with a random orientation.
// The pose is left untouched when the attempt budget runs out.
func (w *Walker) Randomize() error {
	o := w.randomOrientation()
	c, ok := w.randomFreeCell()
	if !ok {
		return &InitializationError{Attempts: w.cfg.attempts(), Size: w.cfg.SpawnAreaSize}
	}
	w.pose = Pose{Position: c.Vec3(), Orientation: o}
	return nil
}

// roll returns true with probability 1/n. n <= 0 never rolls true.
func (w *Walker) roll(n int) bool {
	if n <= 0 {
		return false
	}
	return w.rng.IntN(n) == 0
}

func (w *Walker) randomOrientation() Orientation {
	if w.cfg.Policy == PolicyVertical {
		return allOrientations[w.rng.IntN(len(allOrientations))]
	}
	return Euler(w.rng.IntN(4), w.rng.IntN(4), w.rng.IntN(4))
}

func (w *Walker) randomCell() Cell {
	n := w.bounds.Extent()
	return Cell{X: w.rng.IntN(n), Y: w.rng.IntN(n), Z: w.rng.IntN(n)}
}

// randomFreeCell samples up to the attempt budget. On failure it returns the
// last sampled cell.
func (w *Walker) randomFreeCell() (Cell, bool) {
	var c Cell
	for i := 0; i < w.cfg.attempts(); i++ {
		c = w.randomCell()
		if !w.pipes.Has(c) {
			return c, true
		}
	}
	return c, false
}

// relocate is the dead-end escape. Nothing is spawned.
func (w *Walker) relocate() Result {
	from := w.pose
	o := w.randomOrientation()
	c, ok := w.randomFreeCell()
	w.pose = Pose{Position: c.Vec3(), Orientation: o}

	if w.logger != nil {
		if ok {
			w.logger.Printf("walker: dead end at %s, relocating to %s", from.Position, w.pose.Position)
		} else {
			w.logger.Printf("walker: dead end at %s, no free cell after %d attempts, parking at %s", from.Position, w.cfg.attempts(), w.pose.Position)
		}
	}
	if obs, isObs := w.spawner.(RelocationObserver); isObs {
		obs.Relocated(w.pose)
	}
	return Result{Outcome: OutcomeRelocated, Pose: w.pose, Saturated: !ok}
}

// placePipe spawns a pipe at the current pose and records it.
func (w *Walker) placePipe() {
	h := w.spawner.SpawnPipe(w.pose)
	if err := w.pipes.Insert(w.pose.Cell(), h); err != nil && w.logger != nil {
		w.logger.Printf("walker: place pipe at %s: %v", w.pose.Cell(), err)
	}
}
