package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrientations(t *testing.T) {
	all := AllOrientations()
	require.Len(t, all, 24)

	seen := map[Orientation]bool{}
	for _, o := range all {
		assert.True(t, o.Valid(), "%s", o)
		assert.False(t, seen[o], "duplicate %s", o)
		seen[o] = true
	}
}

func TestEulerQuarterTurns(t *testing.T) {
	cases := []struct {
		name       string
		qx, qy, qz int
		forward    Cell
		up         Cell
	}{
		{"identity", 0, 0, 0, AxisZ, AxisY},
		{"yaw_right", 0, 1, 0, AxisX, AxisY},
		{"yaw_back", 0, 2, 0, AxisZ.Neg(), AxisY},
		{"pitch_down", 1, 0, 0, AxisY.Neg(), AxisZ},
		{"roll", 0, 0, 1, AxisZ, AxisX.Neg()},
		{"full_turn", 4, -4, 8, AxisZ, AxisY},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := Euler(c.qx, c.qy, c.qz)
			assert.Equal(t, c.forward, o.Forward)
			assert.Equal(t, c.up, o.Up)
			assert.True(t, o.Valid())
		})
	}
}

func TestPivotFacesCandidate(t *testing.T) {
	for _, o := range AllOrientations() {
		for _, dir := range o.TurnCandidates() {
			p := o.Pivot(dir)
			require.True(t, p.Valid(), "%s pivot %s", o, dir)
			assert.Equal(t, dir, p.Forward)
			// A single 90 degree pivot keeps one of the old axes.
			assert.True(t, p.Up == o.Up || p.Right == o.Right, "%s pivot %s", o, dir)
		}
		assert.Equal(t, o, o.Pivot(o.Forward), "forward is not a pivot")
	}
}

func TestRoundHalfToEven(t *testing.T) {
	assert.Equal(t, Cell{X: 0, Y: 2, Z: -2}, Vec3{X: 0.5, Y: 1.5, Z: -2.5}.Round())
	assert.Equal(t, Cell{X: 1, Y: 1, Z: 0}, Vec3{X: 0.51, Y: 1.49, Z: -0.2}.Round())
}

func TestBoundsExtent(t *testing.T) {
	assert.Equal(t, 1, Bounds{Size: 0}.Extent())
	assert.Equal(t, 6, Bounds{Size: 5}.Extent())
	assert.Equal(t, 6, Bounds{Size: 5.7}.Extent())
	assert.Equal(t, 27, Bounds{Size: 2}.Volume())
	assert.True(t, Bounds{Size: 5}.Contains(Vec3{X: 5, Y: 0, Z: 5}))
	assert.False(t, Bounds{Size: 5}.Contains(Vec3{X: 5.01}))
}
