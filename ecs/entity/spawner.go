package entity

import (
	"image/color"
	"log"

	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/prefabs"
	"github.com/milk9111/pipes/walker"
)

// ColorPicker chooses the colour of a pipe run.
type ColorPicker interface {
	Pick(run int) color.NRGBA
}

// ColorPickerFunc adapts a plain function to ColorPicker.
type ColorPickerFunc func(run int) color.NRGBA

func (f ColorPickerFunc) Pick(run int) color.NRGBA { return f(run) }

// Spawner turns walker output into entities. A run is a stretch of pipe
// laid without a direction change; every joint and every relocation starts
// a new one and picks a new colour.
type Spawner struct {
	world  *ecs.World
	picker ColorPicker
	pipe   prefabs.PipeSpec
	joint  prefabs.JointSpec
	stats  *component.GeneratorStats
	logger *log.Logger

	run   int
	color color.NRGBA

	// last is the agent position after the previous pipe or relocation.
	last    walker.Vec3
	hasLast bool
}

func NewSpawner(w *ecs.World, picker ColorPicker, pipe prefabs.PipeSpec, joint prefabs.JointSpec, stats *component.GeneratorStats) *Spawner {
	if stats == nil {
		stats = &component.GeneratorStats{}
	}
	return &Spawner{
		world:  w,
		picker: picker,
		pipe:   pipe,
		joint:  joint,
		stats:  stats,
		logger: log.Default(),
	}
}

// Start records where the agent begins so the first pipe knows its origin.
func (s *Spawner) Start(pose walker.Pose) {
	s.last = pose.Position
	s.hasLast = true
}

// Run returns the current run index. Runs start at 1.
func (s *Spawner) Run() int { return s.run }

func (s *Spawner) Stats() *component.GeneratorStats { return s.stats }

func (s *Spawner) SpawnPipe(pose walker.Pose) walker.Handle {
	if s.run == 0 {
		s.nextRun()
	}
	from := pose.Position.Sub(pose.Forward().Vec3())
	if s.hasLast {
		from = s.last
	}
	s.last, s.hasLast = pose.Position, true

	e := ecs.CreateEntity(s.world)
	s.addCommon(e, pose, shadingFromSpec(s.pipe.Shading))
	addComponent(s, e, "pipe", component.PipeComponent.Kind(), &component.Pipe{
		Cell:   pose.Cell(),
		From:   from,
		Run:    s.run,
		Radius: s.pipe.Radius,
		Length: s.pipe.Length,
	})
	s.stats.Pipes++
	return walker.Handle(e)
}

func (s *Spawner) SpawnJoint(pose walker.Pose) walker.Handle {
	s.nextRun()
	e := ecs.CreateEntity(s.world)
	s.addCommon(e, pose, shadingFromSpec(s.joint.Shading))
	addComponent(s, e, "joint", component.JointComponent.Kind(), &component.Joint{
		Run:    s.run,
		Radius: s.joint.Radius,
	})
	s.stats.Joints++
	return walker.Handle(e)
}

// Relocated starts a fresh run and reports the dead end.
func (s *Spawner) Relocated(pose walker.Pose) {
	s.nextRun()
	s.last, s.hasLast = pose.Position, true
	s.stats.Relocations++
	s.world.Events().Push(ecs.Event{Type: ecs.EventDeadEnd, Data: pose})
}

func (s *Spawner) nextRun() {
	s.run++
	s.stats.Runs++
	if s.picker != nil {
		s.color = s.picker.Pick(s.run)
	} else {
		s.color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
}

func (s *Spawner) addCommon(e ecs.Entity, pose walker.Pose, shading component.Shading) {
	addComponent(s, e, "transform", component.Transform3DComponent.Kind(), &component.Transform3D{
		Position:    pose.Position,
		Orientation: pose.Orientation,
	})
	addComponent(s, e, "color", component.ColorComponent.Kind(), &component.Color{Value: s.color})
	addComponent(s, e, "shading", component.ShadingComponent.Kind(), &shading)
}

// addComponent logs instead of returning because walker.Spawner cannot
// report errors.
func addComponent[T any](s *Spawner, e ecs.Entity, name string, kind component.ComponentKind[T], value *T) bool {
	if err := ecs.Add(s.world, e, kind, value); err != nil {
		if s.logger != nil {
			s.logger.Printf("entity: add %s to %v: %v", name, e, err)
		}
		return false
	}
	return true
}

func shadingFromSpec(spec prefabs.ShadingSpec) component.Shading {
	return component.Shading{
		Ambient:   spec.Ambient,
		Highlight: spec.Highlight,
		Outline:   spec.Outline,
	}
}
