package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/ecs/render"
)

type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil {
		return
	}

	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	screen.Fill(cam.Background)

	b := screen.Bounds()
	proj := render.ProjectorFor(*cam, float64(b.Dx()), float64(b.Dy()))
	for _, p := range render.Scene(w, proj, sceneSize(w, cam)) {
		drawPrimitive(screen, p)
	}
}

// sceneSize is the cube side of the first generator, or twice the camera
// target when there is none.
func sceneSize(w *ecs.World, cam *component.Camera) float64 {
	size := cam.TargetX * 2
	if e, ok := ecs.First(w, component.GeneratorComponent.Kind()); ok {
		if g, ok := ecs.Get(w, e, component.GeneratorComponent.Kind()); ok && g.Walker != nil {
			size = g.Walker.Bounds().Size
		}
	}
	return size
}

func drawPrimitive(screen *ebiten.Image, p render.Primitive) {
	x0, y0 := float32(p.From.X), float32(p.From.Y)
	x1, y1 := float32(p.To.X), float32(p.To.Y)
	size := float32(p.Size)

	switch p.Kind {
	case render.KindEdge:
		vector.StrokeLine(screen, x0, y0, x1, y1, size, p.Fill, true)
	case render.KindPipe:
		if p.HasOutline {
			strokeCapped(screen, x0, y0, x1, y1, size+2, p.Outline)
		}
		strokeCapped(screen, x0, y0, x1, y1, size, p.Fill)
		if p.Highlight && size > 3 {
			vector.StrokeLine(screen, x0, y0, x1, y1, size*0.3, p.Core, true)
		}
	case render.KindJoint:
		if p.HasOutline {
			vector.FillCircle(screen, x0, y0, size+1, p.Outline, true)
		}
		vector.FillCircle(screen, x0, y0, size, p.Fill, true)
		if p.Highlight && size > 3 {
			vector.FillCircle(screen, x0-size*0.3, y0-size*0.3, size*0.3, p.Core, true)
		}
	}
}

// strokeCapped draws a line with round ends.
func strokeCapped(screen *ebiten.Image, x0, y0, x1, y1, width float32, clr color.Color) {
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	vector.FillCircle(screen, x0, y0, width/2, clr, true)
	vector.FillCircle(screen, x1, y1, width/2, clr, true)
}
