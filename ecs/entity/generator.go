package entity

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
)

// GeneratorOptions override values from generator.yaml. Zero values keep the
// spec.
type GeneratorOptions struct {
	Seed   uint64
	Policy string
	Size   float64
	// Interval is the tick interval in seconds.
	Interval float64
	Logger   *log.Logger
}

// Apply folds the overrides into spec.
func (o GeneratorOptions) Apply(spec prefabs.GeneratorSpec) prefabs.GeneratorSpec {
	if o.Seed != 0 {
		spec.Seed = o.Seed
	}
	if o.Policy != "" {
		spec.Policy = o.Policy
	}
	if o.Size > 0 {
		spec.SpawnAreaSize = o.Size
	}
	if o.Interval > 0 {
		spec.SpawnInterval = o.Interval
	}
	return spec
}

// NewGenerator creates the generator entity and its walker. A seed of zero
// is replaced with a time based one. When the walker cannot be placed the
// entity is destroyed again and the error wraps walker.ErrInitializationFailed.
func NewGenerator(w *ecs.World, b prefabs.Bundle, picker ColorPicker, opts GeneratorOptions) (ecs.Entity, error) {
	spec := opts.Apply(b.Generator)
	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("generator: %w", err)
	}
	seed := spec.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	e := ecs.CreateEntity(w)
	stats := &component.GeneratorStats{}
	spawner := NewSpawner(w, picker, b.Pipe, b.Joint, stats)

	walkerOpts := []walker.Option{walker.WithRand(walker.NewRand(seed))}
	if opts.Logger != nil {
		walkerOpts = append(walkerOpts, walker.WithLogger(opts.Logger))
	}
	wk, err := walker.New(cfg, spawner, walkerOpts...)
	if err != nil {
		return abandon(w, e, fmt.Errorf("generator: start walker: %w", err))
	}
	spawner.Start(wk.Pose())

	if err := ecs.Add(w, e, component.GeneratorTagComponent.Kind(), &component.GeneratorTag{}); err != nil {
		return abandon(w, e, fmt.Errorf("generator: add generator tag: %w", err))
	}
	if err := ecs.Add(w, e, component.GeneratorStatsComponent.Kind(), stats); err != nil {
		return abandon(w, e, fmt.Errorf("generator: add stats: %w", err))
	}
	if err := ecs.Add(w, e, component.GeneratorComponent.Kind(), &component.Generator{
		Walker:         wk,
		Seed:           seed,
		ResetFillRatio: spec.ResetFillRatio,
	}); err != nil {
		return abandon(w, e, fmt.Errorf("generator: add generator component: %w", err))
	}
	return e, nil
}

// abandon destroys a partly built generator entity.
func abandon(w *ecs.World, e ecs.Entity, err error) (ecs.Entity, error) {
	ecs.DestroyEntity(w, e)
	return 0, err
}

// ClearPipes destroys every pipe, joint and generator entity. The camera
// survives. It returns the number of entities removed.
func ClearPipes(w *ecs.World) int {
	var doomed []ecs.Entity
	doomed = append(doomed, w.Query(component.PipeComponent.Kind())...)
	doomed = append(doomed, w.Query(component.JointComponent.Kind())...)
	doomed = append(doomed, w.Query(component.GeneratorTagComponent.Kind())...)

	n := 0
	for _, e := range doomed {
		if ecs.DestroyEntity(w, e) {
			n++
		}
	}
	return n
}
