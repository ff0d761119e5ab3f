package style

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms1"
)

// Procedural accent and grain constants shared by the GLSL and CPU renditions.
const (
	SpiralArms    = 3.5
	SpiralTwist   = 6.5
	SpotFrequency = 7.0
	SpotArms      = 4.0

	GrainAmount        = 0.02
	VariationFrequency = 20.0
	VariationAmount    = 0.015
)

// Hash seeds for the two paper noise layers: noise(p) = fract(sin(p·Seed)*Scale).
var (
	NoiseSeedXY  = [2]float32{12.9898, 78.233}
	NoiseScaleXY = float32(43758.5453)
	NoiseSeedYZ  = [2]float32{93.9898, 67.345}
	NoiseScaleYZ = float32(28451.3547)
)

// VariationTint weights the vertical color variation per channel.
var VariationTint = ms3.Vec{X: 1, Y: 0.8, Z: 0.6}

// Fragment holds the interpolated inputs of a single shaded point.
type Fragment struct {
	// Normal is the world space surface normal. It need not be normalized.
	Normal ms3.Vec
	// World is the world space position (after the model transform).
	World ms3.Vec
	// Object is the untransformed mesh position the accent pattern is painted on.
	Object ms3.Vec
	// Light and View are the world space light and camera positions.
	Light ms3.Vec
	View  ms3.Vec
}

// Shade evaluates the style at a fragment and returns a color with channels
// clamped to [0,1].
func (st *Style) Shade(f Fragment) ms3.Vec {
	n := unit(f.Normal)
	l := unit(ms3.Sub(f.Light, f.World))
	diff := math32.Max(ms3.Dot(n, l), 0)
	var c ms3.Vec
	if st.Banded() {
		c = ms3.Scale(st.Quantize(diff), st.Base)
	} else {
		c = ms3.Scale(st.Ambient+st.Diffuse*diff, st.Base)
	}

	if st.Pattern.Enabled && st.Pattern.Covers(f.Object) {
		c = mix(c, st.Pattern.Color, st.Pattern.Blend)
	}

	var noise1 float32
	if st.Grain || st.Edge.InkGrain != 0 {
		noise1 = hashNoise(f.World.X, f.World.Y, NoiseSeedXY, NoiseScaleXY)
	}
	if st.Grain {
		noise2 := hashNoise(f.World.Y, f.World.Z, NoiseSeedYZ, NoiseScaleYZ)
		g := (noise1 + noise2) * GrainAmount
		c = ms3.Add(c, ms3.Vec{X: g, Y: g, Z: g})
		v := math32.Sin(f.Object.Y*VariationFrequency) * VariationAmount
		c = ms3.Add(c, ms3.Scale(v, VariationTint))
	}

	if st.Edge.Enabled {
		viewDir := unit(ms3.Sub(f.View, f.World))
		if st.Edge.Term(n, viewDir) > st.Edge.Threshold {
			g := noise1 * st.Edge.InkGrain
			c = ms3.Add(st.Edge.Ink, ms3.Vec{X: g, Y: g, Z: g})
		}
	}
	return ms3.Vec{
		X: ms1.Clamp(c.X, 0, 1),
		Y: ms1.Clamp(c.Y, 0, 1),
		Z: ms1.Clamp(c.Z, 0, 1),
	}
}

// Term returns the grazing term (1-|n·v|)^Power for unit normal n and view direction v.
func (e Edge) Term(n, v ms3.Vec) float32 {
	g := 1 - math32.Abs(ms3.Dot(n, v))
	return math32.Pow(math32.Max(g, 0), e.Power)
}

// Covers reports whether the accent pattern paints the object space point p.
func (p Pattern) Covers(obj ms3.Vec) bool {
	angle := math32.Atan2(obj.Z, obj.X)
	radius := math32.Hypot(obj.X, obj.Z)
	spiral := math32.Sin(angle*SpiralArms - radius*SpiralTwist)
	spots := math32.Sin(obj.Y*SpotFrequency) * math32.Cos(angle*SpotArms)
	return spiral > p.SpiralThreshold || spots > p.SpotThreshold
}

func hashNoise(a, b float32, seed [2]float32, scale float32) float32 {
	x := math32.Sin(a*seed[0]+b*seed[1]) * scale
	return x - math32.Floor(x)
}

func mix(a, b ms3.Vec, t float32) ms3.Vec {
	return ms3.Add(ms3.Scale(1-t, a), ms3.Scale(t, b))
}

func unit(v ms3.Vec) ms3.Vec {
	n := ms3.Norm(v)
	if n == 0 {
		return v
	}
	return ms3.Scale(1/n, v)
}
