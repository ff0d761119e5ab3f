package sumie

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Egg surface parameters. The equatorial radius swells from eggMinRadius at
// the poles to eggMinRadius+eggSwell around the middle.
const (
	eggMinRadius = 0.6
	eggSwell     = 0.2
	eggHeight    = 1.0
)

// EggConfig sets the grid subdivision of the egg surface.
type EggConfig struct {
	// Stacks is the number of subdivisions along the polar angle (top to bottom).
	Stacks int
	// Slices is the number of subdivisions around the vertical axis.
	Slices int
}

// DefaultEggConfig is the subdivision used by the demo.
var DefaultEggConfig = EggConfig{Stacks: 40, Slices: 40}

// Mesh is an indexed triangle mesh. Every 3 consecutive indices form a
// triangle. Index winding is clockwise when viewed from outside the surface.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// NewEgg samples the egg surface on a (Stacks+1)×(Slices+1) grid and returns
// the resulting mesh with Stacks×Slices×6 indices. Normals come from the
// gradient of the implicit surface so they are smooth across seams.
func NewEgg(cfg EggConfig) (Mesh, error) {
	stacks, slices := cfg.Stacks, cfg.Slices
	if stacks < 1 || slices < 1 {
		return Mesh{}, fmt.Errorf("egg needs at least one stack and slice, got %dx%d", stacks, slices)
	}
	nv := (stacks + 1) * (slices + 1)
	if uint64(nv) > math.MaxUint32 {
		return Mesh{}, errors.New("egg subdivision overflows 32 bit indices")
	}
	mesh := Mesh{
		Vertices: make([]Vertex, 0, nv),
		Indices:  make([]uint32, 0, 6*stacks*slices),
	}
	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		r := eggMinRadius + eggSwell*sinPhi
		r2 := r * r
		for j := 0; j <= slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
			p := ms3.Vec{
				X: r * cosTheta * sinPhi,
				Y: eggHeight * cosPhi,
				Z: r * sinTheta * sinPhi,
			}
			grad := ms3.Vec{X: p.X / r2, Y: p.Y / (eggHeight * eggHeight), Z: p.Z / r2}
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: p, Normal: unitOrUp(grad)})
		}
	}
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			first := uint32(i)*row + uint32(j)
			second := first + row
			mesh.Indices = append(mesh.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return mesh, nil
}

// Triangles returns the mesh faces as position triangles reordered to
// counter-clockwise winding so the right hand rule yields outward normals.
func (m Mesh) Triangles() []ms3.Triangle {
	tris := make([]ms3.Triangle, len(m.Indices)/3)
	for i := range tris {
		idx := m.Indices[3*i : 3*i+3]
		tris[i] = ms3.Triangle{
			m.Vertices[idx[0]].Position,
			m.Vertices[idx[2]].Position,
			m.Vertices[idx[1]].Position,
		}
	}
	return tris
}

// Bounds returns the axis aligned bounding box of the mesh vertices.
// An empty mesh has a zero box.
func (m Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		bb.Min = ms3.MinElem(bb.Min, v.Position)
		bb.Max = ms3.MaxElem(bb.Max, v.Position)
	}
	return bb
}
