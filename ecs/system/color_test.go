package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same draw, clamped into range.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

var testPalette = []color.NRGBA{
	{R: 10, G: 20, B: 30, A: 255},
	{R: 40, G: 50, B: 60, A: 255},
}

func TestColorSystemAppliesOnce(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	c := &component.Color{Value: testPalette[0]}
	require.NoError(t, ecs.Add(w, e, component.ColorComponent.Kind(), c))

	s := NewColorSystem()
	s.Update(w)

	tint, ok := ecs.Get(w, e, component.TintComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, testPalette[0], tint.Value)
	assert.True(t, c.Applied)

	// Later edits to the spawn colour are not reapplied.
	c.Value = testPalette[1]
	s.Update(w)
	tint, _ = ecs.Get(w, e, component.TintComponent.Kind())
	assert.Equal(t, testPalette[0], tint.Value)
}

func TestPalettePickerAvoidsRepeats(t *testing.T) {
	p := NewPalettePicker(testPalette, fixedRand(0))
	first := p.Pick(1)
	second := p.Pick(2)
	third := p.Pick(3)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)

	single := NewPalettePicker(testPalette[:1], walker.NewRand(1))
	assert.Equal(t, testPalette[0], single.Pick(1))
	assert.Equal(t, testPalette[0], single.Pick(2))
}

func TestRandomColorPickerIsBright(t *testing.T) {
	p := NewRandomColorPicker(walker.NewRand(3))
	for i := 0; i < 100; i++ {
		c := p.Pick(i)
		assert.GreaterOrEqual(t, c.R, uint8(64))
		assert.GreaterOrEqual(t, c.G, uint8(64))
		assert.GreaterOrEqual(t, c.B, uint8(64))
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestScriptColorPicker(t *testing.T) {
	src, err := prefabs.LoadScript("scripts/palette.tengo")
	require.NoError(t, err)

	cases := []struct {
		name string
		rng  walker.Rand
		want color.NRGBA
	}{
		// roll(4) != 0 picks from the palette at roll(len).
		{"palette", fixedRand(1), testPalette[1]},
		// roll(4) == 0 wanders off to 64 + roll(192) per channel.
		{"off_palette", fixedRand(0), color.NRGBA{R: 64, G: 64, B: 64, A: 255}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := NewScriptColorPicker("palette.tengo", src, testPalette, c.rng)
			require.NoError(t, err)
			assert.Equal(t, c.want, p.Pick(1))
			assert.Equal(t, c.want, p.Pick(2), "compiled once, run per pick")
		})
	}
}

func TestScriptColorPickerUsesRun(t *testing.T) {
	src := []byte(`__color = [__run * 10, 255, 300, 128]`)
	p, err := NewScriptColorPicker("inline", src, nil, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 30, G: 255, B: 255, A: 128}, p.Pick(3))
}

func TestScriptColorPickerFallsBack(t *testing.T) {
	_, err := NewScriptColorPicker("broken", []byte(`__color = [`), testPalette, fixedRand(0))
	assert.Error(t, err)

	p, err := NewScriptColorPicker("wrong", []byte(`__color = "red"`), testPalette, fixedRand(0))
	require.NoError(t, err)
	assert.Equal(t, testPalette[0], p.Pick(1), "bad output falls back to the palette")
}

func TestNewColorPicker(t *testing.T) {
	colors := []prefabs.YAMLColor{{NRGBA: testPalette[0]}, {NRGBA: testPalette[1]}}

	assert.IsType(t, &RandomColorPicker{}, NewColorPicker(prefabs.PaletteSpec{Mode: prefabs.PaletteModeRandom}, fixedRand(0)))
	assert.IsType(t, &PalettePicker{}, NewColorPicker(prefabs.PaletteSpec{Mode: prefabs.PaletteModePalette, Colors: colors}, fixedRand(0)))
	assert.IsType(t, &ScriptColorPicker{}, NewColorPicker(prefabs.PaletteSpec{Mode: prefabs.PaletteModeScript, Script: "scripts/palette.tengo", Colors: colors}, fixedRand(0)))
	assert.IsType(t, &PalettePicker{}, NewColorPicker(prefabs.PaletteSpec{Mode: prefabs.PaletteModeScript, Script: "scripts/missing.tengo", Colors: colors}, fixedRand(0)))
	assert.IsType(t, &RandomColorPicker{}, NewColorPicker(prefabs.PaletteSpec{}, fixedRand(0)))
}

func TestOrbit(t *testing.T) {
	cam := &component.Camera{Yaw: 0, Pitch: 0.2, Distance: 10, OrbitSpeed: 0.5}

	Orbit(cam, 1, CameraInput{})
	assert.InDelta(t, 0.5, cam.Yaw, 1e-9)
	assert.InDelta(t, 0.2, cam.Pitch, 1e-9)

	Orbit(cam, 1, CameraInput{Pitch: 1})
	Orbit(cam, 1, CameraInput{Pitch: 1})
	assert.InDelta(t, maxPitch, cam.Pitch, 1e-9, "pitch is clamped")

	Orbit(cam, 0, CameraInput{Zoom: 1})
	assert.InDelta(t, 9, cam.Distance, 1e-9)

	cam.OrbitSpeed = 0
	cam.Yaw = 2*math.Pi - 0.1
	Orbit(cam, 1, CameraInput{Yaw: 0.2 / manualTurnSpeed})
	assert.InDelta(t, 0.1, cam.Yaw, 1e-9, "yaw wraps")
}

func TestHUDCountsEvents(t *testing.T) {
	w, _, _, _ := newGenerator(t, prefabs.GeneratorSpec{SpawnAreaSize: 4, RandomizeAtStart: true})
	h := NewHUDSystem(false)

	w.Events().Push(ecs.Event{Type: ecs.EventDeadEnd, Data: walker.Pose{Position: walker.Vec3{X: 1, Y: 2, Z: 3}}})
	w.Events().Push(ecs.Event{Type: ecs.EventSaturated})
	w.Events().Push(ecs.Event{Type: ecs.EventReset})
	h.Update(w)

	assert.Equal(t, 1, h.DeadEnds)
	assert.Equal(t, 1, h.Saturated)
	assert.Equal(t, 1, h.Resets)
	assert.Empty(t, w.Events().Peek())

	text := h.Text(w)
	assert.Contains(t, text, "seed 7")
	assert.Contains(t, text, "policy free")
	assert.Contains(t, text, "new pipes")
}
