// Package style defines the fixed shading styles of the sumi-e demo as data.
// Each [Style] is rendered to GLSL by package glbuild and can be evaluated on
// the CPU with [Style.Shade].
package style

import (
	"fmt"

	"github.com/soypat/geometry/ms3"
)

// Stage selects one of the shading styles. Stages above the last style reuse
// the last style; [AutoRotate] additionally spins the model.
type Stage int

const (
	// AutoRotate is the last stage. It shades with the full style and rotates the model.
	AutoRotate Stage = 5
	// MaxStage is the largest valid stage.
	MaxStage = AutoRotate
	// NumStyles is the amount of distinct styles in [Table].
	NumStyles = 5
)

// Next returns the stage after s, wrapping to 0 after [MaxStage].
func (s Stage) Next() Stage { return (s.clamp() + 1) % (MaxStage + 1) }

// Prev returns the stage before s, wrapping to [MaxStage] before 0.
func (s Stage) Prev() Stage { return (s.clamp() + MaxStage) % (MaxStage + 1) }

func (s Stage) clamp() Stage {
	if s < 0 {
		return 0
	} else if s > MaxStage {
		return MaxStage
	}
	return s
}

// StyleIndex returns the index into [Table] used to shade stage s.
// Out of range stages map to the last style.
func (s Stage) StyleIndex() int {
	if s < 0 || int(s) >= NumStyles {
		return NumStyles - 1
	}
	return int(s)
}

// Name returns a human readable title of the stage.
func (s Stage) Name() string {
	if s == AutoRotate {
		return "Animated (Auto-rotate)"
	}
	return ForStage(s).Name
}

func (s Stage) String() string {
	return fmt.Sprintf("Stage %d: %s", int(s), s.Name())
}

// Band is a lighting quantization step: diffuse intensities strictly above
// Threshold are replaced with Level.
type Band struct {
	Threshold float32
	Level     float32
}

// Edge configures silhouette darkening. The grazing term (1-|n·v|)^Power
// above Threshold replaces the color with Ink.
type Edge struct {
	Enabled   bool
	Power     float32
	Threshold float32
	Ink       ms3.Vec
	// InkGrain adds paper noise scaled by InkGrain to the ink color.
	InkGrain float32
}

// Pattern configures the red spiral and spot accents painted on the surface.
type Pattern struct {
	Enabled         bool
	Color           ms3.Vec
	Blend           float32
	SpiralThreshold float32
	SpotThreshold   float32
}

// Style is a fixed shading program described as data.
type Style struct {
	Name string
	// Notes are short descriptions printed when the style is selected.
	Notes []string
	Base  ms3.Vec
	// Ambient and Diffuse weight smooth lighting. Only used when Bands is empty.
	Ambient float32
	Diffuse float32
	// Bands quantize the diffuse term in descending threshold order.
	// Intensities below every threshold are set to Floor.
	Bands   []Band
	Floor   float32
	Edge    Edge
	Pattern Pattern
	// Grain adds paper texture noise and a subtle vertical color variation.
	Grain bool
}

// Banded reports whether the style quantizes lighting.
func (st *Style) Banded() bool { return len(st.Bands) > 0 }

// Quantize maps a diffuse intensity in [0,1] to the style's lighting level.
func (st *Style) Quantize(diff float32) float32 {
	if !st.Banded() {
		return diff
	}
	for _, b := range st.Bands {
		if diff > b.Threshold {
			return b.Level
		}
	}
	return st.Floor
}

var (
	cream      = ms3.Vec{X: 0.96, Y: 0.94, Z: 0.87}
	creamWarm  = ms3.Vec{X: 0.97, Y: 0.95, Z: 0.88}
	ink        = ms3.Vec{X: 0.07, Y: 0.07, Z: 0.07}
	threeTones = []Band{{Threshold: 0.7, Level: 1}, {Threshold: 0.3, Level: 0.58}}
	thickInk   = Edge{Enabled: true, Power: 1.7, Threshold: 0.24, Ink: ink}
)

// Table holds the shading styles indexed by [Stage.StyleIndex].
var Table = [NumStyles]Style{
	{
		Name:    "Basic 3D Model",
		Notes:   []string{"Standard Phong lighting"},
		Base:    ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		Ambient: 0.3,
		Diffuse: 0.6,
	},
	{
		Name:  "Cel Shading (3-tone)",
		Notes: []string{"Warm cream base color", "Clear light separation"},
		Base:  cream,
		Bands: threeTones,
		Floor: 0.3,
	},
	{
		Name:  "Sumi-e Outlines (thick)",
		Notes: []string{"Very thick black lines", "Traditional brush stroke feel"},
		Base:  cream,
		Bands: threeTones,
		Floor: 0.3,
		Edge:  thickInk,
	},
	{
		Name:  "Tomoe Patterns (controlled)",
		Notes: []string{"Selective red markings", "Spiral + spot patterns"},
		Base:  cream,
		Bands: threeTones,
		Floor: 0.3,
		Edge:  thickInk,
		Pattern: Pattern{
			Enabled:         true,
			Color:           ms3.Vec{X: 0.82, Y: 0.12, Z: 0.14},
			Blend:           0.75,
			SpiralThreshold: 0.82,
			SpotThreshold:   0.88,
		},
	},
	{
		Name:  "Full Okami Style",
		Notes: []string{"Paper texture", "Balanced colors", "Complete ukiyo-e aesthetic"},
		Base:  creamWarm,
		Bands: []Band{
			{Threshold: 0.8, Level: 1},
			{Threshold: 0.5, Level: 0.7},
			{Threshold: 0.25, Level: 0.45},
		},
		Floor: 0.25,
		Edge: Edge{
			Enabled:   true,
			Power:     1.7,
			Threshold: 0.24,
			Ink:       ink,
			InkGrain:  0.05,
		},
		Pattern: Pattern{
			Enabled:         true,
			Color:           ms3.Vec{X: 0.84, Y: 0.11, Z: 0.14},
			Blend:           0.78,
			SpiralThreshold: 0.82,
			SpotThreshold:   0.88,
		},
		Grain: true,
	},
}

// ForStage returns the style used to shade stage s.
func ForStage(s Stage) *Style {
	return &Table[s.StyleIndex()]
}
