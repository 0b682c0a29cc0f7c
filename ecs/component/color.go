package component

import "image/color"

// Color is the colour assigned at spawn time. ColorSystem copies it to Tint
// once, on the first frame the entity is seen.
type Color struct {
	Value   color.NRGBA
	Applied bool
}

var ColorComponent = NewComponent[Color]()

// Tint is the colour the renderer uses.
type Tint struct {
	Value color.NRGBA
}

var TintComponent = NewComponent[Tint]()
