package walker

import (
	"math"
	"sort"
)

// Handle is the opaque value a Spawner returns for a spawned object.
type Handle uint64

// Bounds is the cube [0, Size] on every axis, inclusive.
type Bounds struct {
	Size float64
}

func (b Bounds) Contains(p Vec3) bool {
	return p.X >= 0 && p.X <= b.Size &&
		p.Y >= 0 && p.Y <= b.Size &&
		p.Z >= 0 && p.Z <= b.Size
}

// Extent is the number of lattice cells along one axis.
func (b Bounds) Extent() int {
	if b.Size < 0 {
		return 0
	}
	return int(math.Floor(b.Size)) + 1
}

// Volume is the number of lattice cells inside the cube.
func (b Bounds) Volume() int {
	n := b.Extent()
	return n * n * n
}

// Occupancy records which cells hold a pipe. Entries are never removed.
type Occupancy struct {
	cells map[Cell]Handle
}

func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[Cell]Handle)}
}

func (o *Occupancy) Has(c Cell) bool {
	if o == nil {
		return false
	}
	_, ok := o.cells[c]
	return ok
}

func (o *Occupancy) Get(c Cell) (Handle, bool) {
	if o == nil {
		return 0, false
	}
	h, ok := o.cells[c]
	return h, ok
}

// Insert records h at c. An existing entry is never overwritten.
func (o *Occupancy) Insert(c Cell, h Handle) error {
	if o.cells == nil {
		o.cells = make(map[Cell]Handle)
	}
	if _, ok := o.cells[c]; ok {
		return ErrOccupied
	}
	o.cells[c] = h
	return nil
}

func (o *Occupancy) Len() int {
	if o == nil {
		return 0
	}
	return len(o.cells)
}

// Cells returns the occupied cells sorted by X, then Y, then Z.
func (o *Occupancy) Cells() []Cell {
	if o == nil {
		return nil
	}
	out := make([]Cell, 0, len(o.cells))
	for c := range o.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return out
}

// Each calls fn for every occupied cell in unspecified order.
func (o *Occupancy) Each(fn func(Cell, Handle)) {
	if o == nil || fn == nil {
		return
	}
	for c, h := range o.cells {
		fn(c, h)
	}
}
