package component

import "github.com/milk9111/pipes/walker"

// Transform3D places an entity on the lattice.
type Transform3D struct {
	Position    walker.Vec3
	Orientation walker.Orientation
}

var Transform3DComponent = NewComponent[Transform3D]()
