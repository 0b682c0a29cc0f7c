package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pipes/common"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/ecs/entity"
	"github.com/milk9111/pipes/ecs/system"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
	"golang.design/x/clipboard"
)

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	hud       *system.HUDSystem

	bundle  prefabs.Bundle
	opts    entity.GeneratorOptions
	picker  entity.ColorPicker
	watcher *prefabs.Watcher

	pauseUI      *ebitenui.UI
	pauseSeed    *widget.Text
	paused       bool
	resetPending bool
	clipboardOK  bool
}

// NewGame loads the prefabs and builds the first scene. It fails when the
// walker cannot be placed.
func NewGame(opts entity.GeneratorOptions, debug bool) (*Game, error) {
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:  ecs.NewWorld(),
		render: system.NewRenderSystem(),
		hud:    system.NewHUDSystem(debug),
		bundle: bundle,
		opts:   opts,
	}
	g.picker = system.NewColorPicker(bundle.Palette, walker.NewRand(uint64(time.Now().UnixNano())))
	g.scheduler = ecs.NewScheduler(
		system.NewGeneratorSystem(func(ecs.Entity) { g.resetPending = true }),
		system.NewColorSystem(),
		system.NewCameraSystem(),
		g.hud,
	)
	g.pauseUI = NewPauseUI(g)

	if err := g.buildScene(opts); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if info, err := os.Stat(prefabs.Dir); err == nil && info.IsDir() {
		if w, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) buildScene(opts entity.GeneratorOptions) error {
	picker := entity.ColorPickerFunc(g.pickColor)
	e, err := entity.NewGenerator(g.world, g.bundle, picker, opts)
	if err != nil {
		return err
	}
	gen, _ := ecs.Get(g.world, e, component.GeneratorComponent.Kind())
	if _, err := entity.NewCamera(g.world, g.bundle.Camera, gen.Walker.Bounds().Size); err != nil {
		return err
	}
	return nil
}

// pickColor indirects through the game so a palette reload reaches the
// running spawner.
func (g *Game) pickColor(run int) color.NRGBA {
	return g.picker.Pick(run)
}

// reset clears the pipes and starts a new walker with a fresh seed.
func (g *Game) reset() {
	g.resetPending = false
	entity.ClearPipes(g.world)

	opts := g.opts
	opts.Seed = uint64(time.Now().UnixNano())
	if err := g.buildScene(opts); err != nil {
		log.Printf("game: reset: %v", err)
		return
	}
	g.world.Events().Push(ecs.Event{Type: ecs.EventReset})
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused && g.pauseSeed != nil {
		g.pauseSeed.Label = g.SeedText()
	}
	ecs.ForEach(g.world, component.GeneratorComponent.Kind(), func(_ ecs.Entity, gen *component.Generator) {
		gen.Paused = paused
	})
}

func (g *Game) Update() error {
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetPending = true
	}

	if g.paused {
		g.pauseUI.Update()
	} else {
		g.scheduler.Update(g.world)
	}

	if g.resetPending {
		g.reset()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// SeedText describes the running generator so a scene can be reproduced
// with the matching flags.
func (g *Game) SeedText() string {
	e, ok := ecs.First(g.world, component.GeneratorComponent.Kind())
	if !ok {
		return ""
	}
	gen, ok := ecs.Get(g.world, e, component.GeneratorComponent.Kind())
	if !ok || gen.Walker == nil {
		return ""
	}
	cfg := gen.Walker.Config()
	return fmt.Sprintf("seed=%d policy=%s size=%g", gen.Seed, cfg.Policy, cfg.SpawnAreaSize)
}

func (g *Game) copySeed() {
	text := g.SeedText()
	if text == "" {
		return
	}
	if !g.clipboardOK {
		log.Printf("game: %s", text)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Printf("game: copied %s", text)
}

// reload applies prefab edits made while the game runs. Generator, pipe and
// joint changes restart the scene; camera and palette changes apply in
// place.
func (g *Game) reload() {
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Printf("prefabs: reload: %v", err)
		return
	}
	g.bundle = bundle

	restart := false
	for _, name := range changed {
		log.Printf("prefabs: %s changed", name)
		switch {
		case name == prefabs.GeneratorFile, name == prefabs.PipeFile, name == prefabs.JointFile:
			restart = true
		case name == prefabs.CameraFile:
			size := 0.0
			if e, ok := ecs.First(g.world, component.GeneratorComponent.Kind()); ok {
				if gen, ok := ecs.Get(g.world, e, component.GeneratorComponent.Kind()); ok && gen.Walker != nil {
					size = gen.Walker.Bounds().Size
				}
			}
			if _, err := entity.NewCamera(g.world, bundle.Camera, size); err != nil {
				log.Printf("prefabs: camera: %v", err)
			}
		case name == prefabs.PaletteFile, strings.HasSuffix(name, ".tengo"):
			g.picker = system.NewColorPicker(bundle.Palette, walker.NewRand(uint64(time.Now().UnixNano())))
		}
	}
	if restart {
		g.resetPending = true
	}
}
