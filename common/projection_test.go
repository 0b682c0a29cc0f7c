package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectTargetLandsAtCentre(t *testing.T) {
	p := Projector{TargetX: 4, TargetY: 4, TargetZ: 4, Yaw: 0.7, Pitch: 0.3, Distance: 10, FOV: math.Pi / 3, Width: 640, Height: 480}

	pt, ok := p.Project(4, 4, 4)
	require.True(t, ok)
	assert.InDelta(t, 320, pt.X, 1e-9)
	assert.InDelta(t, 240, pt.Y, 1e-9)
	assert.InDelta(t, 10, pt.Depth, 1e-9)
}

func TestProjectOrientation(t *testing.T) {
	p := Projector{Distance: 10, FOV: math.Pi / 2, Width: 200, Height: 200}

	right, ok := p.Project(1, 0, 0)
	require.True(t, ok)
	assert.Greater(t, right.X, 100.0)

	up, ok := p.Project(0, 1, 0)
	require.True(t, ok)
	assert.Less(t, up.Y, 100.0, "screen y grows downward")

	near, _ := p.Project(0, 0, -1)
	far, _ := p.Project(0, 0, 1)
	assert.Less(t, near.Depth, far.Depth)

	_, ok = p.Project(0, 0, -20)
	assert.False(t, ok, "behind the camera")
}

func TestScaleShrinksWithDepth(t *testing.T) {
	p := Projector{FOV: math.Pi / 2, Height: 200}
	assert.InDelta(t, 100, p.Scale(1, 1), 1e-9)
	assert.Less(t, p.Scale(1, 4), p.Scale(1, 2))
}

func TestClampAndShade(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, uint8(100), Shade(200, 0.5))
	assert.Equal(t, uint8(255), Shade(200, 2))
	assert.InDelta(t, 5.0, Lerp(0, 10, 0.5), 1e-9)
}
