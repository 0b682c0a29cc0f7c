package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pipes/common"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
)

const (
	manualTurnSpeed = 1.5 // radians per second
	maxPitch        = 1.45
	zoomStep        = 0.9
	minDistance     = 1.0
	maxDistance     = 2000.0
)

// CameraInput is one frame of orbit controls. Yaw and Pitch are axes in
// [-1, 1]; Zoom is mouse wheel ticks, positive zooming in.
type CameraInput struct {
	Yaw   float64
	Pitch float64
	Zoom  float64
}

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	in := readCameraInput()
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		Orbit(cam, 1/tps, in)
	})
}

// Orbit advances the automatic orbit and applies manual input.
func Orbit(cam *component.Camera, dt float64, in CameraInput) {
	if cam == nil {
		return
	}
	cam.Yaw += (cam.OrbitSpeed + in.Yaw*manualTurnSpeed) * dt
	cam.Yaw = math.Mod(cam.Yaw, 2*math.Pi)
	cam.Pitch = common.Clamp(cam.Pitch+in.Pitch*manualTurnSpeed*dt, -maxPitch, maxPitch)
	if in.Zoom != 0 {
		cam.Distance = common.Clamp(cam.Distance*math.Pow(zoomStep, in.Zoom), minDistance, maxDistance)
	}
}

func readCameraInput() CameraInput {
	var in CameraInput
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Yaw--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Yaw++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.Pitch++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.Pitch--
	}
	_, in.Zoom = ebiten.Wheel()
	return in
}
