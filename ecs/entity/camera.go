package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/pipes/common"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/prefabs"
)

var defaultBackground = color.NRGBA{A: 0xff}

// CameraFromSpec converts degrees to radians and scales the distance by the
// cube size so the whole volume stays in view.
func CameraFromSpec(spec prefabs.CameraSpec, size float64) component.Camera {
	distance := spec.Distance
	if distance <= 0 {
		distance = 2
	}
	fov := spec.FOV
	if fov <= 0 {
		fov = 50
	}
	bg := defaultBackground
	if spec.Background != nil {
		bg = spec.Background.NRGBA
	}
	extent := size
	if extent <= 0 {
		extent = 1
	}
	return component.Camera{
		Yaw:        common.Radians(spec.Yaw),
		Pitch:      common.Radians(spec.Pitch),
		Distance:   distance * extent,
		FOV:        common.Radians(fov),
		OrbitSpeed: common.Radians(spec.OrbitSpeed),
		Background: bg,
		TargetX:    size / 2,
		TargetY:    size / 2,
		TargetZ:    size / 2,
	}
}

// NewCamera creates the camera entity, or updates the existing one so a hot
// reload keeps the entity.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, size float64) (ecs.Entity, error) {
	cam := CameraFromSpec(spec, size)

	if e, ok := ecs.First(w, component.CameraTagComponent.Kind()); ok {
		if err := ecs.Add(w, e, component.CameraComponent.Kind(), &cam); err != nil {
			return 0, fmt.Errorf("camera: update camera component: %w", err)
		}
		return e, nil
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &cam); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return e, nil
}
