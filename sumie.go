// Package sumie generates the procedural egg mesh drawn by the sumi-e style
// demo and provides exporters for it.
package sumie

import (
	"github.com/soypat/geometry/ms3"
)

const (
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

// Vertex is a mesh point with its surface normal. Fields are laid out so a
// []Vertex can be uploaded to the GPU as interleaved float32 data.
type Vertex struct {
	Position ms3.Vec
	Normal   ms3.Vec
}

func unitOrUp(v ms3.Vec) ms3.Vec {
	n := ms3.Norm(v)
	if n < epstol {
		return ms3.Vec{Y: 1}
	}
	return ms3.Scale(1/n, v)
}
