package system

import (
	"image/color"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/walker"
)

// ColorSystem applies each spawned colour to the renderer tint once.
type ColorSystem struct{}

func NewColorSystem() *ColorSystem {
	return &ColorSystem{}
}

func (s *ColorSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.ColorComponent.Kind(), func(e ecs.Entity, c *component.Color) {
		if c.Applied {
			return
		}
		if err := ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Value: c.Value}); err != nil {
			return
		}
		c.Applied = true
	})
}

// RandomColorPicker returns a bright random colour per run.
type RandomColorPicker struct {
	rng walker.Rand
}

func NewRandomColorPicker(rng walker.Rand) *RandomColorPicker {
	return &RandomColorPicker{rng: rng}
}

func (p *RandomColorPicker) Pick(int) color.NRGBA {
	return color.NRGBA{
		R: uint8(64 + p.rng.IntN(192)),
		G: uint8(64 + p.rng.IntN(192)),
		B: uint8(64 + p.rng.IntN(192)),
		A: 0xff,
	}
}

// PalettePicker draws run colours from a fixed palette, never repeating the
// previous colour when the palette has more than one entry.
type PalettePicker struct {
	colors []color.NRGBA
	rng    walker.Rand
	last   int
}

func NewPalettePicker(colors []color.NRGBA, rng walker.Rand) *PalettePicker {
	return &PalettePicker{colors: colors, rng: rng, last: -1}
}

func (p *PalettePicker) Pick(int) color.NRGBA {
	n := len(p.colors)
	if n == 0 {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	i := p.rng.IntN(n)
	if n > 1 && i == p.last {
		i = (i + 1 + p.rng.IntN(n-1)) % n
	}
	p.last = i
	return p.colors[i]
}
