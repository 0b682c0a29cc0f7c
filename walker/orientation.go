package walker

import "fmt"

// Orientation is an axis-aligned rotation stored as its rotated basis.
// The basis is left-handed: Right == Up x Forward.
type Orientation struct {
	Right   Cell
	Up      Cell
	Forward Cell
}

// Identity faces +Z with +Y up.
var Identity = Orientation{Right: AxisX, Up: AxisY, Forward: AxisZ}

// Quarter turns follow the engine convention: positive angles about Y turn
// Forward toward +X, about X pitch Forward toward -Y, about Z roll Right
// toward +Y.
func rotX(v Cell) Cell { return Cell{X: v.X, Y: -v.Z, Z: v.Y} }
func rotY(v Cell) Cell { return Cell{X: v.Z, Y: v.Y, Z: -v.X} }
func rotZ(v Cell) Cell { return Cell{X: -v.Y, Y: v.X, Z: v.Z} }

func repeat(v Cell, n int, f func(Cell) Cell) Cell {
	n = ((n % 4) + 4) % 4
	for i := 0; i < n; i++ {
		v = f(v)
	}
	return v
}

// Euler builds an orientation from quarter-turn counts about each axis,
// applied Z first, then X, then Y.
func Euler(qx, qy, qz int) Orientation {
	apply := func(v Cell) Cell {
		v = repeat(v, qz, rotZ)
		v = repeat(v, qx, rotX)
		return repeat(v, qy, rotY)
	}
	return Orientation{
		Right:   apply(Identity.Right),
		Up:      apply(Identity.Up),
		Forward: apply(Identity.Forward),
	}
}

// Pivot returns the orientation facing dir reached by a single 90 degree
// rotation. dir must be one of ±Right or ±Up; any other value (including
// Forward itself) returns o unchanged.
func (o Orientation) Pivot(dir Cell) Orientation {
	var up Cell
	switch dir {
	case o.Right, o.Right.Neg():
		up = o.Up
	case o.Up:
		up = o.Forward.Neg()
	case o.Up.Neg():
		up = o.Forward
	default:
		return o
	}
	return Orientation{Right: up.Cross(dir), Up: up, Forward: dir}
}

// Valid reports whether the basis is an orthonormal left-handed lattice frame.
func (o Orientation) Valid() bool {
	for _, v := range []Cell{o.Right, o.Up, o.Forward} {
		if v.Dot(v) != 1 {
			return false
		}
	}
	return o.Right.Dot(o.Up) == 0 &&
		o.Up.Dot(o.Forward) == 0 &&
		o.Up.Cross(o.Forward) == o.Right
}

// TurnCandidates lists the four directions orthogonal to Forward in the
// order +Right, -Right, +Up, -Up.
func (o Orientation) TurnCandidates() []Cell {
	return []Cell{o.Right, o.Right.Neg(), o.Up, o.Up.Neg()}
}

func (o Orientation) String() string {
	return fmt.Sprintf("fwd=%s up=%s", o.Forward, o.Up)
}

var allOrientations = func() []Orientation {
	seen := make(map[Orientation]struct{}, 24)
	out := make([]Orientation, 0, 24)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 4; z++ {
				o := Euler(x, y, z)
				if _, ok := seen[o]; ok {
					continue
				}
				seen[o] = struct{}{}
				out = append(out, o)
			}
		}
	}
	return out
}()

// AllOrientations returns the 24 distinct lattice orientations.
func AllOrientations() []Orientation {
	return append([]Orientation(nil), allOrientations...)
}
