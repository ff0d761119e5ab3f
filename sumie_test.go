package sumie_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sumie"
)

func TestEggCounts(t *testing.T) {
	for stacks := 1; stacks <= 12; stacks++ {
		for slices := 1; slices <= 12; slices++ {
			mesh, err := sumie.NewEgg(sumie.EggConfig{Stacks: stacks, Slices: slices})
			if err != nil {
				t.Fatal(err)
			}
			wantV := (stacks + 1) * (slices + 1)
			wantI := stacks * slices * 6
			if len(mesh.Vertices) != wantV {
				t.Errorf("%dx%d: want %d vertices, got %d", stacks, slices, wantV, len(mesh.Vertices))
			}
			if len(mesh.Indices) != wantI {
				t.Errorf("%dx%d: want %d indices, got %d", stacks, slices, wantI, len(mesh.Indices))
			}
			for i, idx := range mesh.Indices {
				if int(idx) >= len(mesh.Vertices) {
					t.Fatalf("%dx%d: index %d out of bounds: %d", stacks, slices, i, idx)
				}
			}
		}
	}
}

func TestEggDefault(t *testing.T) {
	mesh, err := sumie.NewEgg(sumie.DefaultEggConfig)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 1681 {
		t.Errorf("want 1681 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 9600 {
		t.Errorf("want 9600 indices, got %d", len(mesh.Indices))
	}
	const tol = 1e-5
	for i, v := range mesh.Vertices {
		if n := ms3.Norm(v.Normal); math32.Abs(n-1) > tol {
			t.Errorf("vertex %d normal not unit length: %v (%v)", i, n, v.Normal)
		}
		// Egg is convex and centered at origin: normals point away from the center.
		if ms3.Dot(v.Normal, v.Position) <= 0 {
			t.Errorf("vertex %d normal points inward: pos=%v normal=%v", i, v.Position, v.Normal)
		}
	}
	bb := mesh.Bounds()
	if math32.Abs(bb.Max.Y-1) > tol || math32.Abs(bb.Min.Y+1) > tol {
		t.Errorf("want unit height egg, got bounds %v", bb)
	}
	if bb.Max.X > 0.8+tol || bb.Max.X < 0.79 {
		t.Errorf("want equatorial radius near 0.8, got %v", bb.Max.X)
	}
}

func TestEggBadConfig(t *testing.T) {
	for _, cfg := range []sumie.EggConfig{{}, {Stacks: 1}, {Slices: 1}, {Stacks: -1, Slices: 3}} {
		_, err := sumie.NewEgg(cfg)
		if err == nil {
			t.Errorf("expected error for %+v", cfg)
		}
	}
}

func TestTrianglesOutward(t *testing.T) {
	mesh, err := sumie.NewEgg(sumie.EggConfig{Stacks: 16, Slices: 24})
	if err != nil {
		t.Fatal(err)
	}
	tris := mesh.Triangles()
	if len(tris) != len(mesh.Indices)/3 {
		t.Fatalf("want %d triangles, got %d", len(mesh.Indices)/3, len(tris))
	}
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if ms3.Norm(n) < 1e-6 {
			continue // Pole triangles collapse to a line.
		}
		centroid := ms3.Scale(1./3, ms3.Add(tri[0], ms3.Add(tri[1], tri[2])))
		if ms3.Dot(n, centroid) <= 0 {
			t.Errorf("triangle %d winds inward", i)
		}
	}
}

func TestWriteBinarySTL(t *testing.T) {
	mesh, err := sumie.NewEgg(sumie.EggConfig{Stacks: 4, Slices: 6})
	if err != nil {
		t.Fatal(err)
	}
	tris := mesh.Triangles()
	var buf bytes.Buffer
	n, err := sumie.WriteBinarySTL(&buf, tris)
	if err != nil {
		t.Fatal(err)
	}
	want := 84 + 50*len(tris)
	if n != want || buf.Len() != want {
		t.Fatalf("want %d bytes written, got n=%d len=%d", want, n, buf.Len())
	}
	count := binary.LittleEndian.Uint32(buf.Bytes()[80:])
	if int(count) != len(tris) {
		t.Errorf("header triangle count %d, want %d", count, len(tris))
	}
}
