package system

import (
	"fmt"
	"image/color"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/pipes/common"
	"github.com/milk9111/pipes/ecs/entity"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
)

// ScriptColorPicker asks a tengo script for each run colour. The script sees
// __run (int), __roll(n) returning an int in [0, n), and __palette (array of
// [r, g, b]), and must assign an [r, g, b] or [r, g, b, a] array to __color.
type ScriptColorPicker struct {
	path     string
	compiled *tengo.Compiled
	fallback *PalettePicker
}

// NewScriptColorPicker compiles src once. path is only used in log lines.
func NewScriptColorPicker(path string, src []byte, palette []color.NRGBA, rng walker.Rand) (*ScriptColorPicker, error) {
	roll := &tengo.UserFunction{Name: "roll", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		n, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "n", Expected: "int", Found: args[0].TypeName()}
		}
		if n <= 0 {
			return &tengo.Int{Value: 0}, nil
		}
		return &tengo.Int{Value: int64(rng.IntN(n))}, nil
	}}

	entries := make([]any, 0, len(palette))
	for _, c := range palette {
		entries = append(entries, []any{int(c.R), int(c.G), int(c.B)})
	}

	script := tengo.NewScript(src)
	_ = script.Add("__run", 0)
	_ = script.Add("__roll", roll)
	_ = script.Add("__palette", entries)
	_ = script.Add("__color", nil)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("palette script %s: %w", path, err)
	}
	return &ScriptColorPicker{
		path:     path,
		compiled: compiled,
		fallback: NewPalettePicker(palette, rng),
	}, nil
}

// Pick runs the script. Script errors are logged and the palette is used
// instead.
func (p *ScriptColorPicker) Pick(run int) color.NRGBA {
	c, err := p.run(run)
	if err != nil {
		log.Printf("palette: %s run=%d: %v", p.path, run, err)
		return p.fallback.Pick(run)
	}
	return c
}

func (p *ScriptColorPicker) run(run int) (color.NRGBA, error) {
	if err := p.compiled.Set("__run", run); err != nil {
		return color.NRGBA{}, err
	}
	if err := p.compiled.Set("__color", nil); err != nil {
		return color.NRGBA{}, err
	}
	if err := p.compiled.Run(); err != nil {
		return color.NRGBA{}, err
	}
	v := p.compiled.Get("__color")
	if v.IsUndefined() {
		return color.NRGBA{}, fmt.Errorf("__color not set")
	}
	return colorFromValues(v.Array())
}

func colorFromValues(values []any) (color.NRGBA, error) {
	if len(values) != 3 && len(values) != 4 {
		return color.NRGBA{}, fmt.Errorf("__color must have 3 or 4 channels, got %d", len(values))
	}
	ch := [4]uint8{0, 0, 0, 0xff}
	for i, raw := range values {
		var f float64
		switch n := raw.(type) {
		case int64:
			f = float64(n)
		case float64:
			f = n
		default:
			return color.NRGBA{}, fmt.Errorf("__color[%d] is %T, want a number", i, raw)
		}
		ch[i] = uint8(common.Clamp(f, 0, 255))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// NewColorPicker builds the picker palette.yaml asks for. A script that
// fails to load or compile falls back to the plain palette.
func NewColorPicker(spec prefabs.PaletteSpec, rng walker.Rand) entity.ColorPicker {
	colors := spec.NRGBA()
	switch spec.Mode {
	case prefabs.PaletteModeRandom:
		return NewRandomColorPicker(rng)
	case prefabs.PaletteModeScript:
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			log.Printf("palette: load script: %v", err)
			break
		}
		picker, err := NewScriptColorPicker(spec.Script, src, colors, rng)
		if err != nil {
			log.Printf("palette: %v", err)
			break
		}
		return picker
	}
	if len(colors) == 0 {
		return NewRandomColorPicker(rng)
	}
	return NewPalettePicker(colors, rng)
}
