package component

import "github.com/milk9111/pipes/walker"

// Pipe is one segment ending at its transform. From is where the agent
// stood before the move; Length is the share of that span drawn, 1 meaning
// the pipe reaches back to From.
type Pipe struct {
	Cell   walker.Cell
	From   walker.Vec3
	Run    int
	Radius float64
	Length float64
}

var PipeComponent = NewComponent[Pipe]()

// Joint marks a change of direction.
type Joint struct {
	Run    int
	Radius float64
}

var JointComponent = NewComponent[Joint]()
