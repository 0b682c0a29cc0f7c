package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/pipes/walker"
	"gopkg.in/yaml.v3"
)

const (
	GeneratorFile = "generator.yaml"
	PipeFile      = "pipe.yaml"
	JointFile     = "joint.yaml"
	CameraFile    = "camera.yaml"
	PaletteFile   = "palette.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

// DecodeSpec unmarshals raw YAML; filename is only used in errors.
func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type GeneratorSpec struct {
	Name              string  `yaml:"name"`
	SpawnAreaSize     float64 `yaml:"spawn_area_size"`
	SpawnInterval     float64 `yaml:"spawn_interval"`
	StartDelay        float64 `yaml:"start_delay"`
	TurnFrequency     int     `yaml:"turn_frequency"`
	RandomizeAtStart  bool    `yaml:"randomize_at_start"`
	Policy            string  `yaml:"policy"`
	Seed              uint64  `yaml:"seed"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	ResetFillRatio    float64 `yaml:"reset_fill_ratio"`
}

// Config converts the spec into a validated walker configuration.
func (s GeneratorSpec) Config() (walker.Config, error) {
	policy, err := walker.ParsePolicy(s.Policy)
	if err != nil {
		return walker.Config{}, fmt.Errorf("prefabs: %s: %w", GeneratorFile, err)
	}
	cfg := walker.Config{
		SpawnAreaSize:     s.SpawnAreaSize,
		SpawnInterval:     s.SpawnInterval,
		StartDelay:        s.StartDelay,
		TurnFrequency:     s.TurnFrequency,
		RandomizeAtStart:  s.RandomizeAtStart,
		Policy:            policy,
		PlacementAttempts: s.PlacementAttempts,
	}
	if err := cfg.Validate(); err != nil {
		return walker.Config{}, fmt.Errorf("prefabs: %s: %w", GeneratorFile, err)
	}
	return cfg, nil
}

type ShadingSpec struct {
	Ambient   float64 `yaml:"ambient"`
	Highlight bool    `yaml:"highlight"`
	Outline   bool    `yaml:"outline"`
}

type PipeSpec struct {
	Name    string      `yaml:"name"`
	Radius  float64     `yaml:"radius"`
	Length  float64     `yaml:"length"`
	Shading ShadingSpec `yaml:"shading"`
}

type JointSpec struct {
	Name    string      `yaml:"name"`
	Radius  float64     `yaml:"radius"`
	Shading ShadingSpec `yaml:"shading"`
}

// CameraSpec angles are in degrees; Distance is in cube side lengths.
type CameraSpec struct {
	Name       string     `yaml:"name"`
	Yaw        float64    `yaml:"yaw"`
	Pitch      float64    `yaml:"pitch"`
	FOV        float64    `yaml:"fov"`
	Distance   float64    `yaml:"distance"`
	OrbitSpeed float64    `yaml:"orbit_speed"`
	Background *YAMLColor `yaml:"background"`
}

const (
	PaletteModeRandom  = "random"
	PaletteModePalette = "palette"
	PaletteModeScript  = "script"
)

type PaletteSpec struct {
	Name   string      `yaml:"name"`
	Mode   string      `yaml:"mode"`
	Script string      `yaml:"script"`
	Colors []YAMLColor `yaml:"colors"`
}

// NRGBA returns the palette colours as plain values.
func (p PaletteSpec) NRGBA() []color.NRGBA {
	out := make([]color.NRGBA, 0, len(p.Colors))
	for _, c := range p.Colors {
		out = append(out, c.NRGBA)
	}
	return out
}

// Bundle is every spec the game needs.
type Bundle struct {
	Generator GeneratorSpec
	Pipe      PipeSpec
	Joint     JointSpec
	Camera    CameraSpec
	Palette   PaletteSpec
}

func LoadBundle() (Bundle, error) {
	var (
		b   Bundle
		err error
	)
	if b.Generator, err = LoadSpec[GeneratorSpec](GeneratorFile); err != nil {
		return Bundle{}, err
	}
	if b.Pipe, err = LoadSpec[PipeSpec](PipeFile); err != nil {
		return Bundle{}, err
	}
	if b.Joint, err = LoadSpec[JointSpec](JointFile); err != nil {
		return Bundle{}, err
	}
	if b.Camera, err = LoadSpec[CameraSpec](CameraFile); err != nil {
		return Bundle{}, err
	}
	if b.Palette, err = LoadSpec[PaletteSpec](PaletteFile); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// YAMLColor parses "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.NRGBA
}

func ParseHexColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, err
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, err
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, err
	}
	out.A = 255
	if len(s) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, err
		}
	}
	return out, nil
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
