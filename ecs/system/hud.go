package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/walker"
)

// noticeFrames is how long a dead end notice stays on screen.
const noticeFrames = 120

// HUDSystem consumes the frame's generator events and prints a status block.
type HUDSystem struct {
	Debug bool

	DeadEnds  int
	Saturated int
	Resets    int

	notice       string
	noticeFrames int
}

func NewHUDSystem(debug bool) *HUDSystem {
	return &HUDSystem{Debug: debug}
}

func (h *HUDSystem) Update(w *ecs.World) {
	if h.noticeFrames > 0 {
		h.noticeFrames--
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventDeadEnd:
			h.DeadEnds++
			if pose, ok := evt.Data.(walker.Pose); ok {
				h.setNotice(fmt.Sprintf("dead end, relocated to %s", pose.Position))
			}
		case ecs.EventSaturated:
			h.Saturated++
			h.setNotice("no free cell left")
		case ecs.EventReset:
			h.Resets++
			h.setNotice("new pipes")
		}
	}
}

func (h *HUDSystem) setNotice(text string) {
	h.notice = text
	h.noticeFrames = noticeFrames
}

func (h *HUDSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, h.Text(w), 10, 10)
}

// Text is the status block the HUD prints.
func (h *HUDSystem) Text(w *ecs.World) string {
	var b strings.Builder
	ecs.ForEach2(w, component.GeneratorComponent.Kind(), component.GeneratorStatsComponent.Kind(), func(_ ecs.Entity, g *component.Generator, stats *component.GeneratorStats) {
		if g.Walker == nil {
			return
		}
		cfg := g.Walker.Config()
		fmt.Fprintf(&b, "seed %d  policy %s  size %g\n", g.Seed, cfg.Policy, cfg.SpawnAreaSize)
		fmt.Fprintf(&b, "steps %d  pipes %d  joints %d  fill %.1f%%\n", g.Walker.Steps(), stats.Pipes, stats.Joints, 100*FillRatio(g))
		fmt.Fprintf(&b, "dead ends %d  saturated %d  resets %d\n", h.DeadEnds, h.Saturated, h.Resets)
		if g.Paused {
			b.WriteString("paused\n")
		}
		if h.Debug {
			pose := g.Walker.Pose()
			fmt.Fprintf(&b, "at %s facing %s up %s\n", pose.Position, pose.Orientation.Forward, pose.Orientation.Up)
			fmt.Fprintf(&b, "tps %.1f  fps %.1f\n", ebiten.ActualTPS(), ebiten.ActualFPS())
		}
	})
	if h.noticeFrames > 0 {
		b.WriteString(h.notice)
	}
	return b.String()
}
