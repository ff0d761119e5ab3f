// Package glrender holds the view setup shared by the OpenGL render loop and
// a CPU rasterizer that renders the same frames to images.
package glrender

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms3"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	// PaperColor is the background the egg is painted on.
	PaperColor = color.RGBA{R: 240, G: 232, B: 212, A: 255}
	// InkColor is used for captions.
	InkColor = color.RGBA{R: 18, G: 18, B: 18, A: 255}
	// DefaultLight is the world space position of the single point light.
	DefaultLight = ms3.Vec{X: 3, Y: 3, Z: 3}
)

// Projection defaults.
const (
	DefaultFOV  = 45 * math.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 100
)

// Scene is the camera and model placement of a frame.
type Scene struct {
	// Eye is the camera position; Target the point it looks at. +Y is up.
	Eye    ms3.Vec
	Target ms3.Vec
	// Rotation of the model about the vertical axis in radians.
	Rotation float32
	// FOV is the vertical field of view in radians. Zero fields use the package defaults.
	FOV       float32
	Near, Far float32
}

// Model returns the model transform: a rotation about +Y.
func (s Scene) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(s.Rotation)
}

// View returns the look-at transform.
func (s Scene) View() mgl32.Mat4 {
	return mgl32.LookAtV(vec3(s.Eye), vec3(s.Target), mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective transform for a viewport of the given aspect ratio (width/height).
func (s Scene) Projection(aspect float32) mgl32.Mat4 {
	fov, near, far := s.FOV, s.Near, s.Far
	if fov == 0 {
		fov = DefaultFOV
	}
	if near == 0 {
		near = DefaultNear
	}
	if far == 0 {
		far = DefaultFar
	}
	return mgl32.Perspective(fov, aspect, near, far)
}

func vec3(v ms3.Vec) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// DrawLabel writes text in the top left corner of img using the Go Regular
// font at the given size in points.
func DrawLabel(img draw.Image, text string, size float64, col color.Color) error {
	if size <= 0 {
		return errors.New("non-positive font size")
	}
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(col))
	bb := img.Bounds()
	margin := int(size / 2)
	pt := freetype.Pt(bb.Min.X+margin, bb.Min.Y+margin+ctx.PointToFixed(size).Ceil())
	_, err = ctx.DrawString(text, pt)
	return err
}
