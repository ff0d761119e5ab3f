// Package glbuild generates the GLSL programs for the shading styles in package style.
package glbuild

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sumie/style"
)

const VersionStr = "#version 330 core\n"

// Uniform names shared by the vertex and fragment programs.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformLightPos   = "lightPos"
	UniformViewPos    = "viewPos"
	UniformTime       = "time"
)

// Vertex attribute locations.
const (
	AttribPosition = 0
	AttribNormal   = 1
)

// Programmer writes GLSL sources. The zero value is not ready for use; see [NewDefaultProgrammer].
type Programmer struct {
	version []byte
	scratch []byte
}

// NewDefaultProgrammer returns a Programmer targeting GLSL 3.30 core.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		version: []byte(VersionStr),
		scratch: make([]byte, 0, 2048),
	}
}

const vertexBody = `layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

out vec3 FragPos;
out vec3 Normal;
out vec3 WorldPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main() {
	FragPos = vec3(model * vec4(aPos, 1.0));
	Normal = mat3(transpose(inverse(model))) * aNormal;
	WorldPos = aPos;
	gl_Position = projection * view * vec4(FragPos, 1.0);
}
`

// WriteVertex writes the vertex program shared by all styles. It outputs world
// space position and normal plus the untransformed mesh position.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	p.scratch = append(p.scratch[:0], p.version...)
	p.scratch = append(p.scratch, vertexBody...)
	return w.Write(p.scratch)
}

// WriteFragment writes the fragment program implementing st.
func (p *Programmer) WriteFragment(w io.Writer, st *style.Style) (int, error) {
	if st == nil {
		return 0, errors.New("nil style")
	}
	b := append(p.scratch[:0], p.version...)
	b = append(b, `in vec3 FragPos;
in vec3 Normal;
in vec3 WorldPos;
out vec4 FragColor;

uniform vec3 lightPos;
uniform vec3 viewPos;
uniform float time;

float paperNoise(vec2 p, vec2 seed, float scale) {
	return fract(sin(dot(p, seed)) * scale);
}

void main() {
	vec3 norm = normalize(Normal);
	vec3 lightDir = normalize(lightPos - FragPos);
	float diff = max(dot(norm, lightDir), 0.0);
`...)
	b = appendLighting(b, st)
	if st.Pattern.Enabled {
		b = appendPattern(b, st.Pattern)
	}
	needNoise := st.Grain || st.Edge.InkGrain != 0
	if needNoise {
		b = append(b, "\tfloat noise1 = paperNoise(FragPos.xy, "...)
		b = appendVec2(b, style.NoiseSeedXY)
		b = append(b, ", "...)
		b = AppendFloat(b, style.NoiseScaleXY)
		b = append(b, ");\n"...)
	}
	if st.Grain {
		b = appendGrain(b)
	}
	if st.Edge.Enabled {
		b = appendEdge(b, st.Edge, needNoise)
	}
	b = append(b, "\tFragColor = vec4(color, 1.0);\n}\n"...)
	p.scratch = b
	return w.Write(b)
}

func appendLighting(b []byte, st *style.Style) []byte {
	if !st.Banded() {
		b = append(b, "\tvec3 color = ("...)
		b = AppendFloat(b, st.Ambient)
		b = append(b, " + diff * "...)
		b = AppendFloat(b, st.Diffuse)
		b = append(b, ") * "...)
		b = AppendVec3(b, st.Base)
		return append(b, ";\n"...)
	}
	for i, band := range st.Bands {
		b = append(b, '\t')
		if i > 0 {
			b = append(b, "else "...)
		}
		b = append(b, "if (diff > "...)
		b = AppendFloat(b, band.Threshold)
		b = append(b, ") diff = "...)
		b = AppendFloat(b, band.Level)
		b = append(b, ";\n"...)
	}
	b = append(b, "\telse diff = "...)
	b = AppendFloat(b, st.Floor)
	b = append(b, ";\n\tvec3 color = "...)
	b = AppendVec3(b, st.Base)
	return append(b, " * diff;\n"...)
}

func appendPattern(b []byte, pat style.Pattern) []byte {
	b = append(b, "\tfloat angle = atan(WorldPos.z, WorldPos.x);\n\tfloat radius = length(WorldPos.xz);\n\tfloat spiral = sin(angle * "...)
	b = AppendFloat(b, style.SpiralArms)
	b = append(b, " - radius * "...)
	b = AppendFloat(b, style.SpiralTwist)
	b = append(b, ");\n\tfloat spots = sin(WorldPos.y * "...)
	b = AppendFloat(b, style.SpotFrequency)
	b = append(b, ") * cos(angle * "...)
	b = AppendFloat(b, style.SpotArms)
	b = append(b, ");\n\tif (spiral > "...)
	b = AppendFloat(b, pat.SpiralThreshold)
	b = append(b, " || spots > "...)
	b = AppendFloat(b, pat.SpotThreshold)
	b = append(b, ") {\n\t\tcolor = mix(color, "...)
	b = AppendVec3(b, pat.Color)
	b = append(b, ", "...)
	b = AppendFloat(b, pat.Blend)
	return append(b, ");\n\t}\n"...)
}

func appendGrain(b []byte) []byte {
	b = append(b, "\tfloat noise2 = paperNoise(FragPos.yz, "...)
	b = appendVec2(b, style.NoiseSeedYZ)
	b = append(b, ", "...)
	b = AppendFloat(b, style.NoiseScaleYZ)
	b = append(b, ");\n\tcolor += vec3((noise1 + noise2) * "...)
	b = AppendFloat(b, style.GrainAmount)
	b = append(b, ");\n\tfloat variation = sin(WorldPos.y * "...)
	b = AppendFloat(b, style.VariationFrequency)
	b = append(b, ") * "...)
	b = AppendFloat(b, style.VariationAmount)
	b = append(b, ";\n\tcolor += variation * "...)
	b = AppendVec3(b, style.VariationTint)
	return append(b, ";\n"...)
}

func appendEdge(b []byte, edge style.Edge, haveNoise bool) []byte {
	b = append(b, "\tvec3 viewDir = normalize(viewPos - FragPos);\n\tfloat edge = pow(max(1.0 - abs(dot(norm, viewDir)), 0.0), "...)
	b = AppendFloat(b, edge.Power)
	b = append(b, ");\n\tif (edge > "...)
	b = AppendFloat(b, edge.Threshold)
	b = append(b, ") {\n\t\tcolor = "...)
	b = AppendVec3(b, edge.Ink)
	if haveNoise && edge.InkGrain != 0 {
		b = append(b, " + vec3(noise1 * "...)
		b = AppendFloat(b, edge.InkGrain)
		b = append(b, ')')
	}
	return append(b, ";\n\t}\n"...)
}

// AppendFloat appends the shortest GLSL float literal that represents v.
// The result always carries a decimal point so it is never parsed as an integer.
func AppendFloat(b []byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	if bytes.IndexByte(b[start:], '.') < 0 {
		b = append(b, ".0"...)
	}
	return b
}

// AppendVec3 appends a GLSL vec3 constructor of v.
func AppendVec3(b []byte, v ms3.Vec) []byte {
	b = append(b, "vec3("...)
	b = AppendFloat(b, v.X)
	b = append(b, ", "...)
	b = AppendFloat(b, v.Y)
	b = append(b, ", "...)
	b = AppendFloat(b, v.Z)
	return append(b, ')')
}

func appendVec2(b []byte, v [2]float32) []byte {
	b = append(b, "vec2("...)
	b = AppendFloat(b, v[0])
	b = append(b, ", "...)
	b = AppendFloat(b, v[1])
	return append(b, ')')
}
