package glrender

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sumie"
	"github.com/soypat/sumie/style"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRendererConfig configures an [ImageRenderer]. Zero fields take the defaults of the demo.
type ImageRendererConfig struct {
	// Background is the clear color. Defaults to the paper color of the demo.
	Background color.Color
	// Light is the world space light position.
	Light ms3.Vec
}

// ImageRenderer rasterizes a [sumie.Mesh] on the CPU shading every pixel with
// [style.Style.Shade]. It reuses its depth and vertex buffers between renders.
type ImageRenderer struct {
	bg    color.Color
	light ms3.Vec
	depth []float32
	verts []projected
}

// projected is a mesh vertex after the model-view-projection transform.
type projected struct {
	sx, sy, z float32 // Screen coordinates and NDC depth.
	invW      float32
	world     ms3.Vec
	normal    ms3.Vec
	object    ms3.Vec
	clipped   bool
}

// NewImageRenderer instances a new [ImageRenderer].
func NewImageRenderer(cfg ImageRendererConfig) *ImageRenderer {
	if cfg.Background == nil {
		cfg.Background = PaperColor
	}
	if cfg.Light == (ms3.Vec{}) {
		cfg.Light = DefaultLight
	}
	return &ImageRenderer{bg: cfg.Background, light: cfg.Light}
}

// Render clears img and draws mesh with style st as seen from scene.
func (ir *ImageRenderer) Render(mesh sumie.Mesh, st *style.Style, scene Scene, img setImage) error {
	if st == nil {
		return errors.New("nil style")
	} else if len(mesh.Indices)%3 != 0 {
		return errors.New("mesh index count not multiple of 3")
	}
	bb := img.Bounds()
	w, h := bb.Dx(), bb.Dy()
	if w <= 0 || h <= 0 {
		return errors.New("empty image")
	}
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			img.Set(x, y, ir.bg)
		}
	}
	if cap(ir.depth) < w*h {
		ir.depth = make([]float32, w*h)
	}
	ir.depth = ir.depth[:w*h]
	for i := range ir.depth {
		ir.depth[i] = math32.Inf(1)
	}

	model := scene.Model()
	mvp := scene.Projection(float32(w) / float32(h)).Mul4(scene.View()).Mul4(model)
	normalMat := model.Mat3().Inv().Transpose()
	ir.verts = ir.verts[:0]
	for _, v := range mesh.Vertices {
		p := mgl32.Vec4{v.Position.X, v.Position.Y, v.Position.Z, 1}
		clip := mvp.Mul4x1(p)
		world := model.Mul4x1(p)
		n := normalMat.Mul3x1(mgl32.Vec3{v.Normal.X, v.Normal.Y, v.Normal.Z})
		pv := projected{
			world:  ms3.Vec{X: world[0], Y: world[1], Z: world[2]},
			normal: ms3.Vec{X: n[0], Y: n[1], Z: n[2]},
			object: v.Position,
		}
		if clip[3] <= 0 {
			pv.clipped = true
		} else {
			pv.invW = 1 / clip[3]
			pv.sx = (clip[0]*pv.invW + 1) / 2 * float32(w)
			pv.sy = (1 - clip[1]*pv.invW) / 2 * float32(h)
			pv.z = clip[2] * pv.invW
		}
		ir.verts = append(ir.verts, pv)
	}

	eye := scene.Eye
	for i := 0; i < len(mesh.Indices); i += 3 {
		a, b, c := &ir.verts[mesh.Indices[i]], &ir.verts[mesh.Indices[i+1]], &ir.verts[mesh.Indices[i+2]]
		if a.clipped || b.clipped || c.clipped {
			continue
		}
		ir.rasterize(a, b, c, st, eye, img, bb)
	}
	return nil
}

func (ir *ImageRenderer) rasterize(a, b, c *projected, st *style.Style, eye ms3.Vec, img setImage, bb image.Rectangle) {
	area := edge(a.sx, a.sy, b.sx, b.sy, c.sx, c.sy)
	if math32.Abs(area) < 1e-12 {
		return
	}
	w, h := bb.Dx(), bb.Dy()
	minX := max(0, int(math32.Floor(min(a.sx, b.sx, c.sx))))
	maxX := min(w-1, int(math32.Ceil(max(a.sx, b.sx, c.sx))))
	minY := max(0, int(math32.Floor(min(a.sy, b.sy, c.sy))))
	maxY := min(h-1, int(math32.Ceil(max(a.sy, b.sy, c.sy))))
	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b.sx, b.sy, c.sx, c.sy, px, py) * invArea
			w1 := edge(c.sx, c.sy, a.sx, a.sy, px, py) * invArea
			w2 := edge(a.sx, a.sy, b.sx, b.sy, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue // Faces are not culled: normalized weights are positive for either winding.
			}
			z := w0*a.z + w1*b.z + w2*c.z
			di := y*w + x
			if z < -1 || z >= ir.depth[di] {
				continue
			}
			ir.depth[di] = z
			// Perspective correct interpolation weights.
			p0, p1, p2 := w0*a.invW, w1*b.invW, w2*c.invW
			sum := p0 + p1 + p2
			p0, p1, p2 = p0/sum, p1/sum, p2/sum
			frag := style.Fragment{
				Normal: interp(a.normal, b.normal, c.normal, p0, p1, p2),
				World:  interp(a.world, b.world, c.world, p0, p1, p2),
				Object: interp(a.object, b.object, c.object, p0, p1, p2),
				Light:  ir.light,
				View:   eye,
			}
			col := st.Shade(frag)
			img.Set(x+bb.Min.X, y+bb.Min.Y, toRGBA(col))
		}
	}
}

// Depth returns the depth buffer of the last render in row-major order.
// Pixels not covered by the mesh hold +Inf.
func (ir *ImageRenderer) Depth() []float32 { return ir.depth }

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func interp(a, b, c ms3.Vec, wa, wb, wc float32) ms3.Vec {
	return ms3.Add(ms3.Scale(wa, a), ms3.Add(ms3.Scale(wb, b), ms3.Scale(wc, c)))
}

func toRGBA(c ms3.Vec) color.RGBA {
	return color.RGBA{
		R: uint8(c.X*255 + 0.5),
		G: uint8(c.Y*255 + 0.5),
		B: uint8(c.Z*255 + 0.5),
		A: 255,
	}
}
