package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/ecs/entity"
	"github.com/milk9111/pipes/ecs/render"
	"github.com/milk9111/pipes/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

func main() {
	steps := flag.Int("steps", 2000, "walker steps to run")
	seed := flag.Uint64("seed", 0, "walker seed (0 picks one from the clock)")
	policy := flag.String("policy", "", "walker policy: free or vertical (default from prefabs/generator.yaml)")
	size := flag.Float64("size", 0, "spawn cube side length (default from prefabs/generator.yaml)")
	out := flag.String("png", "", "write a snapshot to this PNG file")
	width := flag.Int("width", 1024, "snapshot width in pixels")
	height := flag.Int("height", 1024, "snapshot height in pixels")
	verbose := flag.Bool("v", false, "log dead end relocations")
	flag.Parse()

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Fatalf("pipesim: %v", err)
	}

	var logger *log.Logger
	if *verbose {
		logger = log.Default()
	}

	w := ecs.NewWorld()
	palette := bundle.Palette.NRGBA()
	e, err := entity.NewGenerator(w, bundle, entity.ColorPickerFunc(func(run int) color.NRGBA {
		if len(palette) == 0 {
			return color.NRGBA(colornames.White)
		}
		return palette[run%len(palette)]
	}), entity.GeneratorOptions{Seed: *seed, Policy: *policy, Size: *size, Logger: logger})
	if err != nil {
		log.Fatalf("pipesim: %v", err)
	}
	gen, _ := ecs.Get(w, e, component.GeneratorComponent.Kind())
	stats, _ := ecs.Get(w, e, component.GeneratorStatsComponent.Kind())

	start := time.Now()
	saturated := 0
	for i := 0; i < *steps; i++ {
		if gen.Walker.Step().Saturated {
			saturated++
		}
	}
	elapsed := time.Since(start)

	cfg := gen.Walker.Config()
	volume := gen.Walker.Bounds().Volume()
	fmt.Printf("seed=%d policy=%s size=%g\n", gen.Seed, cfg.Policy, cfg.SpawnAreaSize)
	fmt.Printf("steps       %d (%s)\n", gen.Walker.Steps(), elapsed)
	fmt.Printf("pipes       %d\n", stats.Pipes)
	fmt.Printf("joints      %d\n", stats.Joints)
	fmt.Printf("runs        %d\n", stats.Runs)
	fmt.Printf("relocations %d\n", stats.Relocations)
	fmt.Printf("saturated   %d\n", saturated)
	fmt.Printf("fill        %.2f%% of %d cells\n", 100*float64(gen.Walker.Occupancy().Len())/float64(volume), volume)

	if *out == "" {
		return
	}
	applyTints(w)
	img := snapshot(w, bundle.Camera, cfg.SpawnAreaSize, *width, *height)
	if err := writePNG(*out, img); err != nil {
		log.Fatalf("pipesim: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}

// applyTints does what the colour system does on the first frame.
func applyTints(w *ecs.World) {
	ecs.ForEach(w, component.ColorComponent.Kind(), func(e ecs.Entity, c *component.Color) {
		_ = ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Value: c.Value})
		c.Applied = true
	})
}

func snapshot(w *ecs.World, camSpec prefabs.CameraSpec, size float64, width, height int) *image.RGBA {
	cam := entity.CameraFromSpec(camSpec, size)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := color.Color(colornames.Black)
	if camSpec.Background != nil {
		bg = cam.Background
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	proj := render.ProjectorFor(cam, float64(width), float64(height))
	for _, p := range render.Scene(w, proj, size) {
		switch p.Kind {
		case render.KindEdge:
			fillLine(img, p.From.X, p.From.Y, p.To.X, p.To.Y, p.Size, p.Fill)
		case render.KindPipe:
			if p.HasOutline {
				fillCappedLine(img, p.From.X, p.From.Y, p.To.X, p.To.Y, p.Size+2, p.Outline)
			}
			fillCappedLine(img, p.From.X, p.From.Y, p.To.X, p.To.Y, p.Size, p.Fill)
			if p.Highlight && p.Size > 3 {
				fillLine(img, p.From.X, p.From.Y, p.To.X, p.To.Y, p.Size*0.3, p.Core)
			}
		case render.KindJoint:
			if p.HasOutline {
				fillCircle(img, p.From.X, p.From.Y, p.Size+1, p.Outline)
			}
			fillCircle(img, p.From.X, p.From.Y, p.Size, p.Fill)
			if p.Highlight && p.Size > 3 {
				fillCircle(img, p.From.X-p.Size*0.3, p.From.Y-p.Size*0.3, p.Size*0.3, p.Core)
			}
		}
	}
	return img
}

func fillPolygon(dst *image.RGBA, pts [][2]float64, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		z.LineTo(float32(p[0]), float32(p[1]))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func fillLine(dst *image.RGBA, x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	fillPolygon(dst, [][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, c)
}

func fillCappedLine(dst *image.RGBA, x0, y0, x1, y1, width float64, c color.Color) {
	fillLine(dst, x0, y0, x1, y1, width, c)
	fillCircle(dst, x0, y0, width/2, c)
	fillCircle(dst, x1, y1, width/2, c)
}

func fillCircle(dst *image.RGBA, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	const segments = 32
	pts := make([][2]float64, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts = append(pts, [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	fillPolygon(dst, pts, c)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
