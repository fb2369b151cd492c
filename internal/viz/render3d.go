package viz

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/metrics"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera orbits the origin and projects with a simple perspective divide.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
	AutoRotate       bool
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, Zoom: 1.0, RotX: -0.35, AutoRotate: true}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Advance applies the idle spin for one frame.
func (c *Camera) Advance() {
	if c.AutoRotate {
		c.RotY += 0.01
	}
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts view coordinates to dots on a sw x sh surface.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 2.2
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Frame maps phase-space states into view coordinates centred on the
// origin with the largest half-span at 1. Phase z points up the screen.
type Frame struct {
	Center dynamo.State
	Scale  float64
}

// FitFrame frames the bounding box of states.
func FitFrame(states []dynamo.State) Frame {
	ext, ok := metrics.ExtentOf(states)
	if !ok {
		return Frame{Scale: 1}
	}
	r := ext.Radius()
	if r == 0 {
		r = 1
	}
	return Frame{Center: ext.Center(), Scale: 1 / r}
}

func (f Frame) Map(s dynamo.State) Vec3 {
	d := s.Add(f.Center.Scale(-1)).Scale(f.Scale)
	return Vec3{d[0], d[2], d[1]}
}

type Edge struct {
	Start, End Vec3
	Color      colorful.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                          { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c colorful.Color) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) AddPoint(p Vec3, c colorful.Color)   { w.Edges = append(w.Edges, Edge{p, p, c}) }

// TrajectoryWireframe links consecutive snapshot points, or marks each
// point alone when asLines is false.
func TrajectoryWireframe(points []trajectory.Point, f Frame, asLines bool) *Wireframe {
	w := &Wireframe{Edges: make([]Edge, 0, len(points))}
	var prev Vec3
	for i, p := range points {
		v := f.Map(p.State)
		if asLines && i > 0 {
			w.AddEdge(prev, v, p.Color)
		} else {
			w.AddPoint(v, p.Color)
		}
		prev = v
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          colorful.Color
}

// Render3D draws the wireframe back to front onto the canvas.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.DotsW(), c.DotsH()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1, e.color)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
		}
	}
}
