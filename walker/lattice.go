package walker

import (
	"fmt"
	"math"
)

// Cell is an integer lattice coordinate. It is the occupancy key.
type Cell struct {
	X, Y, Z int
}

func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Cell) Scale(k int) Cell {
	return Cell{X: c.X * k, Y: c.Y * k, Z: c.Z * k}
}

func (c Cell) Neg() Cell {
	return Cell{X: -c.X, Y: -c.Y, Z: -c.Z}
}

func (c Cell) Dot(o Cell) int {
	return c.X*o.X + c.Y*o.Y + c.Z*o.Z
}

// Cross uses the same component formula as the engine; with a left-handed
// basis Up x Forward yields Right.
func (c Cell) Cross(o Cell) Cell {
	return Cell{
		X: c.Y*o.Z - c.Z*o.Y,
		Y: c.Z*o.X - c.X*o.Z,
		Z: c.X*o.Y - c.Y*o.X,
	}
}

// Vec3 converts the cell to a continuous position.
func (c Cell) Vec3() Vec3 {
	return Vec3{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Vec3 is a continuous position. After every move it is integer valued.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Round snaps v to the nearest cell, rounding halves to even like the
// engine's RoundToInt.
func (v Vec3) Round() Cell {
	return Cell{
		X: int(math.RoundToEven(v.X)),
		Y: int(math.RoundToEven(v.Y)),
		Z: int(math.RoundToEven(v.Z)),
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Axis-aligned unit steps.
var (
	AxisX = Cell{X: 1}
	AxisY = Cell{Y: 1}
	AxisZ = Cell{Z: 1}
)

// Pose is the agent position plus its facing.
type Pose struct {
	Position    Vec3
	Orientation Orientation
}

// Cell returns the occupancy key for the pose position.
func (p Pose) Cell() Cell {
	return p.Position.Round()
}

// Forward is a shorthand for the pose's facing direction.
func (p Pose) Forward() Cell {
	return p.Orientation.Forward
}
