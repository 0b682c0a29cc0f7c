package component

import "image/color"

// Camera orbits the centre of the spawn cube. Angles are radians.
type Camera struct {
	Yaw        float64
	Pitch      float64
	Distance   float64
	FOV        float64
	OrbitSpeed float64
	Background color.NRGBA
	// Target is the point the camera looks at, usually the cube centre.
	TargetX, TargetY, TargetZ float64
}

var CameraComponent = NewComponent[Camera]()
