package glbuild_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/sumie/glbuild"
	"github.com/soypat/sumie/style"
)

func TestWriteFragment(t *testing.T) {
	programmer := glbuild.NewDefaultProgrammer()
	var source bytes.Buffer
	for i := range style.Table {
		st := &style.Table[i]
		source.Reset()
		n, err := programmer.WriteFragment(&source, st)
		if err != nil {
			t.Fatal(err)
		} else if n != source.Len() {
			t.Fatalf("%s: written length mismatch %d != %d", st.Name, n, source.Len())
		}
		src := source.String()
		if !strings.HasPrefix(src, glbuild.VersionStr) {
			t.Errorf("%s: missing version header", st.Name)
		}
		if strings.Count(src, "{") != strings.Count(src, "}") {
			t.Errorf("%s: unbalanced braces\n%s", st.Name, src)
		}
		if strings.Count(src, "(") != strings.Count(src, ")") {
			t.Errorf("%s: unbalanced parentheses\n%s", st.Name, src)
		}
		if !strings.Contains(src, "FragColor = vec4(color, 1.0);") {
			t.Errorf("%s: missing output write\n%s", st.Name, src)
		}
		for _, band := range st.Bands {
			want := "if (diff > " + string(glbuild.AppendFloat(nil, band.Threshold)) + ") diff = " + string(glbuild.AppendFloat(nil, band.Level))
			if !strings.Contains(src, want) {
				t.Errorf("%s: missing band %q\n%s", st.Name, want, src)
			}
		}
		hasEdge := strings.Contains(src, "float edge")
		if hasEdge != st.Edge.Enabled {
			t.Errorf("%s: edge emitted=%v, want %v", st.Name, hasEdge, st.Edge.Enabled)
		}
		hasPattern := strings.Contains(src, "float spiral")
		if hasPattern != st.Pattern.Enabled {
			t.Errorf("%s: pattern emitted=%v, want %v", st.Name, hasPattern, st.Pattern.Enabled)
		}
		hasGrain := strings.Contains(src, "noise2")
		if hasGrain != st.Grain {
			t.Errorf("%s: grain emitted=%v, want %v", st.Name, hasGrain, st.Grain)
		}
	}
}

func TestWriteFragmentNil(t *testing.T) {
	var buf bytes.Buffer
	_, err := glbuild.NewDefaultProgrammer().WriteFragment(&buf, nil)
	if err == nil {
		t.Error("expected error for nil style")
	}
}

func TestWriteVertex(t *testing.T) {
	var buf bytes.Buffer
	n, err := glbuild.NewDefaultProgrammer().WriteVertex(&buf)
	if err != nil {
		t.Fatal(err)
	} else if n != buf.Len() {
		t.Fatal("written length mismatch")
	}
	src := buf.String()
	for _, uniform := range []string{glbuild.UniformModel, glbuild.UniformView, glbuild.UniformProjection} {
		if !strings.Contains(src, "uniform mat4 "+uniform+";") {
			t.Errorf("missing uniform %s", uniform)
		}
	}
}

func TestAppendFloat(t *testing.T) {
	tests := []struct {
		v    float32
		want string
	}{
		{v: 1, want: "1.0"},
		{v: 0, want: "0.0"},
		{v: 0.7, want: "0.7"},
		{v: -2.5, want: "-2.5"},
	}
	for _, test := range tests {
		got := string(glbuild.AppendFloat(nil, test.v))
		if got != test.want {
			t.Errorf("AppendFloat(%v) = %q, want %q", test.v, got, test.want)
		}
	}
	got := string(glbuild.AppendVec3(nil, ms3.Vec{X: 0.5, Y: 1, Z: -0.25}))
	if got != "vec3(0.5, 1.0, -0.25)" {
		t.Errorf("AppendVec3 got %q", got)
	}
}
