package render

import (
	"image/color"
	"sort"

	"github.com/milk9111/pipes/common"
	"github.com/milk9111/pipes/ecs"
	"github.com/milk9111/pipes/ecs/component"
	"github.com/milk9111/pipes/walker"
)

type Kind int

const (
	KindEdge Kind = iota
	KindPipe
	KindJoint
)

// Primitive is one projected shape in screen pixels. Size is the stroke
// width for pipes and edges and the radius for joints.
type Primitive struct {
	Kind       Kind
	From, To   common.Point
	Size       float64
	Fill       color.NRGBA
	Core       color.NRGBA
	Outline    color.NRGBA
	HasOutline bool
	Highlight  bool
	Depth      float64
}

var edgeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x1c}

// ProjectorFor builds the screen projection for a camera.
func ProjectorFor(cam component.Camera, width, height float64) common.Projector {
	return common.Projector{
		TargetX:  cam.TargetX,
		TargetY:  cam.TargetY,
		TargetZ:  cam.TargetZ,
		Yaw:      cam.Yaw,
		Pitch:    cam.Pitch,
		Distance: cam.Distance,
		FOV:      cam.FOV,
		Width:    width,
		Height:   height,
	}
}

type pending struct {
	prim    Primitive
	base    color.NRGBA
	shading component.Shading
}

// Scene projects the cube outline, every tinted pipe and every tinted joint,
// sorted back to front.
func Scene(w *ecs.World, proj common.Projector, size float64) []Primitive {
	var items []pending

	for _, edge := range cubeEdges(size) {
		a, okA := proj.Project(edge[0].X, edge[0].Y, edge[0].Z)
		b, okB := proj.Project(edge[1].X, edge[1].Y, edge[1].Z)
		if !okA || !okB {
			continue
		}
		items = append(items, pending{prim: Primitive{
			Kind:  KindEdge,
			From:  a,
			To:    b,
			Size:  1,
			Fill:  edgeColor,
			Depth: (a.Depth + b.Depth) / 2,
		}})
	}

	ecs.ForEach3(w, component.Transform3DComponent.Kind(), component.PipeComponent.Kind(), component.TintComponent.Kind(), func(e ecs.Entity, tf *component.Transform3D, p *component.Pipe, tint *component.Tint) {
		length := p.Length
		if length <= 0 {
			length = 1
		}
		end := tf.Position
		start := end.Add(p.From.Sub(end).Scale(length))
		a, okA := proj.Project(start.X, start.Y, start.Z)
		b, okB := proj.Project(end.X, end.Y, end.Z)
		if !okA || !okB {
			return
		}
		depth := (a.Depth + b.Depth) / 2
		items = append(items, pending{
			prim: Primitive{
				Kind:  KindPipe,
				From:  a,
				To:    b,
				Size:  2 * proj.Scale(p.Radius, depth),
				Depth: depth,
			},
			base:    tint.Value,
			shading: shadingOf(w, e),
		})
	})

	ecs.ForEach3(w, component.Transform3DComponent.Kind(), component.JointComponent.Kind(), component.TintComponent.Kind(), func(e ecs.Entity, tf *component.Transform3D, j *component.Joint, tint *component.Tint) {
		pt, ok := proj.Project(tf.Position.X, tf.Position.Y, tf.Position.Z)
		if !ok {
			return
		}
		items = append(items, pending{
			prim: Primitive{
				Kind:  KindJoint,
				From:  pt,
				To:    pt,
				Size:  proj.Scale(j.Radius, pt.Depth),
				Depth: pt.Depth,
			},
			base:    tint.Value,
			shading: shadingOf(w, e),
		})
	})

	near, far := depthRange(items)
	out := make([]Primitive, 0, len(items))
	for _, it := range items {
		p := it.prim
		if p.Kind != KindEdge {
			light := 1.0
			if far > near {
				light = 1 - (p.Depth-near)/(far-near)
			}
			k := common.Lerp(it.shading.Ambient, 1, light)
			p.Fill = shade(it.base, k)
			p.Core = shade(it.base, k*1.45)
			p.Outline = shade(it.base, k*0.35)
			p.HasOutline = it.shading.Outline
			p.Highlight = it.shading.Highlight
		}
		out = append(out, p)
	}

	// Painter's order; ties keep insertion order so joints cover pipe ends.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

func shadingOf(w *ecs.World, e ecs.Entity) component.Shading {
	if s, ok := ecs.Get(w, e, component.ShadingComponent.Kind()); ok {
		return *s
	}
	return component.Shading{Ambient: 1}
}

func depthRange(items []pending) (near, far float64) {
	first := true
	for _, it := range items {
		if it.prim.Kind == KindEdge {
			continue
		}
		if first {
			near, far = it.prim.Depth, it.prim.Depth
			first = false
			continue
		}
		if it.prim.Depth < near {
			near = it.prim.Depth
		}
		if it.prim.Depth > far {
			far = it.prim.Depth
		}
	}
	return near, far
}

func shade(c color.NRGBA, k float64) color.NRGBA {
	return color.NRGBA{
		R: common.Shade(c.R, k),
		G: common.Shade(c.G, k),
		B: common.Shade(c.B, k),
		A: c.A,
	}
}

func cubeEdges(size float64) [][2]walker.Vec3 {
	if size <= 0 {
		return nil
	}
	corner := func(i int) walker.Vec3 {
		v := walker.Vec3{}
		if i&1 != 0 {
			v.X = size
		}
		if i&2 != 0 {
			v.Y = size
		}
		if i&4 != 0 {
			v.Z = size
		}
		return v
	}
	var edges [][2]walker.Vec3
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]walker.Vec3{corner(i), corner(i | bit)})
			}
		}
	}
	return edges
}
