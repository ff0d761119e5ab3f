package orbit_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sumie/orbit"
)

func TestDefaultPosition(t *testing.T) {
	c := orbit.New()
	want := ms3.Vec{Y: 0.5, Z: 3}
	if ms3.Norm(ms3.Sub(c.Position(), want)) > 1e-6 {
		t.Errorf("want start position %v, got %v", want, c.Position())
	}
}

func TestDragExact(t *testing.T) {
	c := orbit.New()
	start := c.Yaw()
	c.Drag(100, 0)
	if got := c.Yaw() - start; math.Abs(got-0.5) > 1e-12 {
		t.Errorf("want yaw increase of 0.5, got %v", got)
	}
	if c.Pitch() != 0 {
		t.Errorf("horizontal drag changed pitch: %v", c.Pitch())
	}
	// Dragging upwards raises the camera.
	c.Drag(0, -20)
	if c.Pitch() <= 0 || c.Position().Y <= 0.5 {
		t.Errorf("upward drag should raise camera: pitch=%v pos=%v", c.Pitch(), c.Position())
	}
}

func TestPitchClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := orbit.New()
	const limit = math.Pi/2 - orbit.PitchMargin
	for i := 0; i < 10000; i++ {
		c.Drag(2000*(rng.Float64()-0.5), 4000*(rng.Float64()-0.5))
		if math.Abs(c.Pitch()) > limit {
			t.Fatalf("pitch %v exceeds limit %v after %d drags", c.Pitch(), limit, i)
		}
	}
	c.Drag(0, -1e9)
	if c.Pitch() != limit {
		t.Errorf("want pitch clamped to %v, got %v", limit, c.Pitch())
	}
	c.Drag(0, 1e9)
	if c.Pitch() != -limit {
		t.Errorf("want pitch clamped to %v, got %v", -limit, c.Pitch())
	}
}

func TestZoomClamp(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	c := orbit.New()
	for i := 0; i < 10000; i++ {
		c.Zoom(20 * (rng.Float64() - 0.5))
		d := c.Distance()
		if d < orbit.DefaultMinDistance || d > orbit.DefaultMaxDistance {
			t.Fatalf("distance %v outside band after %d scrolls", d, i)
		}
	}
	c.Zoom(1000)
	if c.Distance() != orbit.DefaultMinDistance {
		t.Errorf("want min distance, got %v", c.Distance())
	}
	c.Zoom(-1000)
	if c.Distance() != orbit.DefaultMaxDistance {
		t.Errorf("want max distance, got %v", c.Distance())
	}
}

func TestPositionTracksParameters(t *testing.T) {
	c := orbit.New()
	c.Drag(123, -45)
	c.Zoom(-2)
	pos := c.Position()
	// Distance from the orbit center (origin lifted by height) equals camera distance.
	center := ms3.Vec{Y: float32(c.Height)}
	got := ms3.Norm(ms3.Sub(pos, center))
	if math32.Abs(got-float32(c.Distance())) > 1e-5 {
		t.Errorf("position %v not at distance %v from orbit center", pos, c.Distance())
	}
	c.Reset()
	if c.Yaw() != 0 || c.Pitch() != 0 || c.Distance() != orbit.DefaultDistance {
		t.Errorf("reset failed: yaw=%v pitch=%v dist=%v", c.Yaw(), c.Pitch(), c.Distance())
	}
}
