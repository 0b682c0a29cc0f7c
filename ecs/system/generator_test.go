package system

import (
	"image/color"
	"testing"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/ecs/entity"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func white(int) color.NRGBA { return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} }

func newGenerator(t *testing.T, spec prefabs.GeneratorSpec) (*ecs.World, ecs.Entity, *component.Generator, *component.GeneratorStats) {
	t.Helper()
	w := ecs.NewWorld()
	b := prefabs.Bundle{Generator: spec, Pipe: prefabs.PipeSpec{Radius: 0.3, Length: 1}, Joint: prefabs.JointSpec{Radius: 0.4}}
	e, err := entity.NewGenerator(w, b, entity.ColorPickerFunc(white), entity.GeneratorOptions{Seed: 7})
	require.NoError(t, err)
	g, ok := ecs.Get(w, e, component.GeneratorComponent.Kind())
	require.True(t, ok)
	stats, ok := ecs.Get(w, e, component.GeneratorStatsComponent.Kind())
	require.True(t, ok)
	return w, e, g, stats
}

func TestGeneratorHonoursDelayAndInterval(t *testing.T) {
	w, e, g, stats := newGenerator(t, prefabs.GeneratorSpec{
		SpawnAreaSize:    8,
		StartDelay:       0.5,
		SpawnInterval:    0.25,
		TurnFrequency:    3,
		RandomizeAtStart: true,
	})
	s := NewGeneratorSystem(nil)

	assert.Equal(t, 0, s.Advance(w, e, g, stats, 0.25), "still in the start delay")
	assert.Equal(t, 1, s.Advance(w, e, g, stats, 0.25), "first tick lands on the delay")
	assert.Equal(t, 0, s.Advance(w, e, g, stats, 0.125))
	assert.Equal(t, 1, s.Advance(w, e, g, stats, 0.125))
	assert.Equal(t, 2, s.Advance(w, e, g, stats, 0.5), "several ticks per frame")
	assert.Equal(t, 4, g.Walker.Steps())

	g.Paused = true
	assert.Equal(t, 0, s.Advance(w, e, g, stats, 10))
	assert.Equal(t, 4, g.Walker.Steps())
}

func TestGeneratorZeroIntervalStepsOncePerFrame(t *testing.T) {
	w, e, g, stats := newGenerator(t, prefabs.GeneratorSpec{SpawnAreaSize: 8, RandomizeAtStart: true})
	s := NewGeneratorSystem(nil)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, s.Advance(w, e, g, stats, 1.0/60))
	}
}

func TestGeneratorReportsFullOnce(t *testing.T) {
	var full []ecs.Entity
	w, e, g, stats := newGenerator(t, prefabs.GeneratorSpec{
		SpawnAreaSize:    2,
		SpawnInterval:    0.001,
		TurnFrequency:    2,
		RandomizeAtStart: true,
		ResetFillRatio:   0.25,
	})
	s := NewGeneratorSystem(func(e ecs.Entity) { full = append(full, e) })

	for i := 0; i < 20; i++ {
		s.Advance(w, e, g, stats, 0.1)
	}
	require.Len(t, full, 1)
	assert.Equal(t, e, full[0])
	assert.True(t, g.Full)
	assert.GreaterOrEqual(t, FillRatio(g), 0.25)
}

func TestGeneratorCountsSaturatedTicks(t *testing.T) {
	// A single-cell cube that is already full: every tick is a saturated
	// relocation.
	w := ecs.NewWorld()
	occ := walker.NewOccupancy()
	require.NoError(t, occ.Insert(walker.Cell{}, 1))
	stats := &component.GeneratorStats{}
	spawner := entity.NewSpawner(w, nil, prefabs.PipeSpec{}, prefabs.JointSpec{}, stats)
	wk, err := walker.New(walker.Config{PlacementAttempts: 5}, spawner, walker.WithOccupancy(occ), walker.WithRand(walker.NewRand(1)))
	require.NoError(t, err)

	g := &component.Generator{Walker: wk}
	s := NewGeneratorSystem(nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, s.Advance(w, 0, g, stats, 0))
	}

	assert.Equal(t, 3, stats.Saturated)
	assert.Equal(t, 3, stats.Relocations)
	var saturated int
	for _, evt := range w.Events().Drain() {
		if evt.Type == ecs.EventSaturated {
			saturated++
		}
	}
	assert.Equal(t, 3, saturated)
}

func TestSchedulerDrivesGenerator(t *testing.T) {
	w, _, g, _ := newGenerator(t, prefabs.GeneratorSpec{SpawnAreaSize: 8, RandomizeAtStart: true})
	sched := ecs.NewScheduler(NewGeneratorSystem(nil), NewColorSystem())

	for i := 0; i < 30; i++ {
		sched.Update(w)
	}
	assert.Equal(t, 30, g.Walker.Steps())

	ecs.ForEach(w, component.ColorComponent.Kind(), func(e ecs.Entity, c *component.Color) {
		assert.True(t, c.Applied)
		tint, ok := ecs.Get(w, e, component.TintComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, c.Value, tint.Value)
	})
}
