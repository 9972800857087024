package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/render"
	"chosenoffset.com/umbra/internal/scene"
)

const (
	outlineThickness = 2
	centroidRadius   = 3
	rayWidth         = 1
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()
	v := newView(g.Viewport, w, h)

	screen.Fill(g.Palette.Background)

	display := g.Config.Display
	if display.FieldsOfView {
		g.drawFieldsOfView(screen, v)
	}
	if display.Shadows {
		g.drawShadows(screen, v)
	}
	g.drawEntities(screen, v)
	if display.Occluders {
		g.drawOccluders(screen, v)
	}
	if display.Rays {
		g.drawRays(screen, v)
	}
	if display.Centroids {
		g.drawCentroids(screen, v)
	}
	g.drawUI(screen)
}

// view maps world coordinates (origin centered, y up) to screen pixels
// (origin top-left, y down).
type view struct {
	vp     shadows.Viewport
	sx, sy float64
}

func newView(vp shadows.Viewport, w, h int) view {
	return view{vp: vp, sx: float64(w) / vp.Width, sy: float64(h) / vp.Height}
}

func (v view) toScreen(p shadows.Point) (float32, float32) {
	return float32((p.X + v.vp.Width/2) * v.sx), float32((v.vp.Height/2 - p.Y) * v.sy)
}

func (v view) vertex(p shadows.Point, clr color.Color) render.Vertex {
	x, y := v.toScreen(p)
	vert := render.Vertex{DstX: x, DstY: y}
	vert.VertexColor(clr)
	return vert
}

func (v view) fillPolygon(dst render.Image, points []shadows.Point, indices []uint16, clr color.Color) {
	vertices := make([]render.Vertex, len(points))
	for i, p := range points {
		vertices[i] = v.vertex(p, clr)
	}
	dst.DrawTriangles(vertices, indices, &render.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawShadows(screen render.Image, v view) {
	for _, group := range g.World.Shadows.Groups() {
		for _, seg := range group.Segments {
			mesh := seg.Mesh()
			v.fillPolygon(screen, mesh.Vertices, mesh.Indices, g.Palette.Shadow)
		}
	}
}

func (g *Game) drawOccluders(screen render.Image, v view) {
	g.World.Scene.Occluders.Each(func(_ scene.Entity, o shadows.Occluder) {
		x0, y0 := v.toScreen(o.TopLeft)
		x1, y1 := v.toScreen(o.BottomRight)
		t := float32(outlineThickness)
		g.Renderer.FillRect(screen, x0-t, y0-t, x1-x0+2*t, t, g.Palette.Outline)
		g.Renderer.FillRect(screen, x0-t, y1, x1-x0+2*t, t, g.Palette.Outline)
		g.Renderer.FillRect(screen, x0-t, y0, t, y1-y0, g.Palette.Outline)
		g.Renderer.FillRect(screen, x1, y0, t, y1-y0, g.Palette.Outline)
	})
}

func (g *Game) drawEntities(screen render.Image, v view) {
	sc := g.World.Scene
	sc.Footprints.Each(func(e scene.Entity, f scene.Footprint) {
		if hidden, _ := sc.Hidden.Get(e); hidden {
			return
		}
		t, ok := sc.Transforms.Get(e)
		if !ok {
			return
		}
		corners := f.Corners(t)
		v.fillPolygon(screen, corners[:], shadows.QuadIndices[:], g.entityColor(e))
	})
}

func (g *Game) entityColor(e scene.Entity) color.Color {
	sc := g.World.Scene
	kind, _ := sc.Kinds.Get(e)
	switch kind {
	case scene.KindPlayer:
		return g.Palette.Player
	case scene.KindWall:
		return g.Palette.Wall
	case scene.KindNPC:
		if alerted, _ := sc.Alerted.Get(e); alerted {
			return g.Palette.Alerted
		}
		return g.Palette.NPC
	default:
		return g.Palette.Object
	}
}

func (g *Game) drawFieldsOfView(screen render.Image, v view) {
	sc := g.World.Scene
	sc.Sighted.Each(func(e scene.Entity, s scene.Sighted) {
		if s.FOV <= 0 || s.Range <= 0 {
			return
		}
		pos, ok := sc.Position(e)
		if !ok {
			return
		}
		mesh := shadows.Sector{Radius: s.Range, Angle: s.FOV}.Mesh().Rotate(s.Heading, pos)
		v.fillPolygon(screen, mesh.Vertices, mesh.Indices, g.Palette.FOV)
	})
}

func (g *Game) drawRays(screen render.Image, v view) {
	for _, ray := range g.World.Shadows.AllRays() {
		x0, y0 := v.toScreen(ray.Start)
		x1, y1 := v.toScreen(ray.End)
		g.Renderer.StrokeLine(screen, x0, y0, x1, y1, rayWidth, g.Palette.Ray)
	}
}

func (g *Game) drawCentroids(screen render.Image, v view) {
	for _, group := range g.World.Shadows.Groups() {
		for _, seg := range group.Segments {
			x, y := v.toScreen(seg.Centroid)
			g.Renderer.FillCircle(screen, x, y, centroidRadius, g.Palette.Centroid)
		}
	}
}

func (g *Game) drawUI(screen render.Image) {
	s := g.LastStats
	status := fmt.Sprintf("policy: %s  shadows: %d  hidden: %d  alerted: %d",
		g.World.Policy(), g.World.Shadows.Len(), s.Hidden, s.Alerted)
	g.Renderer.DrawText(screen, status, 4, 4, g.Palette.Text)
}
