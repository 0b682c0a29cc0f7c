package common

import "math"

// nearPlane is the closest camera-space depth that still projects.
const nearPlane = 0.05

// Projector is a perspective camera orbiting a target point. Yaw turns
// around the world Y axis, Pitch tilts down toward the target. Angles are
// radians.
type Projector struct {
	TargetX, TargetY, TargetZ float64
	Yaw, Pitch                float64
	Distance                  float64
	FOV                       float64
	Width, Height             float64
}

// Point is a projected position. Depth grows away from the camera.
type Point struct {
	X, Y  float64
	Depth float64
}

func (p Projector) focal() float64 {
	fov := p.FOV
	if fov <= 0 || fov >= math.Pi {
		fov = math.Pi / 3
	}
	return (p.Height / 2) / math.Tan(fov/2)
}

// View transforms a world point into camera space.
func (p Projector) View(x, y, z float64) (vx, vy, vz float64) {
	x -= p.TargetX
	y -= p.TargetY
	z -= p.TargetZ

	sy, cy := math.Sincos(p.Yaw)
	x, z = x*cy-z*sy, x*sy+z*cy

	sp, cp := math.Sincos(p.Pitch)
	y, z = y*cp-z*sp, y*sp+z*cp

	return x, y, z + p.Distance
}

// Project maps a world point to screen pixels. ok is false for points
// behind the near plane.
func (p Projector) Project(x, y, z float64) (Point, bool) {
	vx, vy, vz := p.View(x, y, z)
	if vz < nearPlane {
		return Point{}, false
	}
	f := p.focal()
	return Point{
		X:     p.Width/2 + vx*f/vz,
		Y:     p.Height/2 - vy*f/vz,
		Depth: vz,
	}, true
}

// Scale converts a world-space length at the given depth to pixels.
func (p Projector) Scale(length, depth float64) float64 {
	if depth < nearPlane {
		depth = nearPlane
	}
	return length * p.focal() / depth
}
