package component

// Shading controls how the renderer fakes lighting on a pipe or joint.
type Shading struct {
	// Ambient is the brightness floor in [0,1].
	Ambient float64
	// Highlight draws a thin lighter core along pipes.
	Highlight bool
	Outline   bool
}

var ShadingComponent = NewComponent[Shading]()
