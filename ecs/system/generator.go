package system

import (
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
)

const (
	// tps is the fixed update rate ebiten drives Update at.
	tps = 60.0
	// maxStepsPerFrame caps catch-up when the interval is far below a frame.
	maxStepsPerFrame = 512
	tickEpsilon      = 1e-9
)

// GeneratorSystem ticks every generator's walker on a start delay followed
// by a fixed interval.
type GeneratorSystem struct {
	// OnFull is called once per generator when its fill ratio is reached.
	OnFull func(e ecs.Entity)
}

func NewGeneratorSystem(onFull func(e ecs.Entity)) *GeneratorSystem {
	return &GeneratorSystem{OnFull: onFull}
}

func (s *GeneratorSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.GeneratorComponent.Kind(), component.GeneratorStatsComponent.Kind(), func(e ecs.Entity, g *component.Generator, stats *component.GeneratorStats) {
		s.Advance(w, e, g, stats, 1/tps)
	})
}

// Advance moves the generator clock forward by dt seconds and returns the
// number of walker steps taken.
func (s *GeneratorSystem) Advance(w *ecs.World, e ecs.Entity, g *component.Generator, stats *component.GeneratorStats, dt float64) int {
	if g == nil || g.Walker == nil || g.Paused {
		return 0
	}
	cfg := g.Walker.Config()

	g.Elapsed += dt
	if !g.Started {
		if g.Elapsed+tickEpsilon < cfg.StartDelay {
			return 0
		}
		g.Started = true
		g.NextTick = cfg.StartDelay
	}

	steps := 0
	if cfg.SpawnInterval <= 0 {
		// No interval: one step per frame.
		s.step(w, g, stats)
		steps = 1
		g.NextTick = g.Elapsed
	} else {
		for g.Elapsed+tickEpsilon >= g.NextTick && steps < maxStepsPerFrame {
			s.step(w, g, stats)
			steps++
			g.NextTick += cfg.SpawnInterval
		}
		if g.NextTick < g.Elapsed {
			// Drop the backlog instead of stalling on later frames.
			g.NextTick = g.Elapsed
		}
	}

	if g.ResetFillRatio > 0 && !g.Full && FillRatio(g) >= g.ResetFillRatio {
		g.Full = true
		if s.OnFull != nil {
			s.OnFull(e)
		}
	}
	return steps
}

func (s *GeneratorSystem) step(w *ecs.World, g *component.Generator, stats *component.GeneratorStats) {
	res := g.Walker.Step()
	if !res.Saturated {
		return
	}
	if stats != nil {
		stats.Saturated++
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSaturated, Data: res.Pose})
}

// FillRatio is the share of lattice cells holding a pipe.
func FillRatio(g *component.Generator) float64 {
	if g == nil || g.Walker == nil {
		return 0
	}
	vol := g.Walker.Bounds().Volume()
	if vol <= 0 {
		return 0
	}
	return float64(g.Walker.Occupancy().Len()) / float64(vol)
}
