// Package sumieaux runs the interactive sumi-e demo and renders still
// previews of its stages.
package sumieaux

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/soypat/sumie"
	"github.com/soypat/sumie/glrender"
	"github.com/soypat/sumie/style"
)

// UIConfig configures the interactive window. Zero fields take defaults.
type UIConfig struct {
	Width  int
	Height int
	Title  string
	Egg    sumie.EggConfig
	// Context ends the render loop when done. May be nil.
	Context context.Context
	// Output receives status lines. Defaults to standard output.
	Output io.Writer
	Silent bool
}

func (cfg *UIConfig) setDefaults() {
	if cfg.Width == 0 {
		cfg.Width = 1280
	}
	if cfg.Height == 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "Sumi-e Style Demo"
	}
	if cfg.Egg == (sumie.EggConfig{}) {
		cfg.Egg = sumie.DefaultEggConfig
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Silent {
		cfg.Output = nil
	}
}

// UI opens a window and runs the demo until the window is closed or the
// context is cancelled. It must be called from the main OS thread.
func UI(cfg UIConfig) error {
	if cfg.Width < 0 || cfg.Height < 0 {
		return errors.New("negative window dimensions")
	}
	cfg.setDefaults()
	mesh, err := sumie.NewEgg(cfg.Egg)
	if err != nil {
		return err
	}
	app := NewApp(cfg.Output)
	app.PrintBanner()
	err = ui(mesh, app, cfg)
	if err == nil {
		app.println("\nDemo closed.")
	}
	return err
}

// PreviewConfig configures [RenderPreviews]. Zero fields take defaults.
type PreviewConfig struct {
	// Dir is the output directory of the stage PNG files.
	Dir string
	// Size is the side length of the square images in pixels.
	Size int
	// STL is the file name the mesh is written to. Empty skips the STL output.
	STL    string
	Egg    sumie.EggConfig
	Output io.Writer
	Silent bool
}

// RenderPreviews renders one labeled PNG per stage with the CPU rasterizer
// from the default camera, plus an optional STL file of the mesh.
func RenderPreviews(cfg PreviewConfig) error {
	if cfg.Size == 0 {
		cfg.Size = 512
	} else if cfg.Size < 16 {
		return errors.New("preview size too small")
	}
	if cfg.Egg == (sumie.EggConfig{}) {
		cfg.Egg = sumie.DefaultEggConfig
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Fprintln(out, args...)
		}
	}
	watch := stopwatch()
	mesh, err := sumie.NewEgg(cfg.Egg)
	if err != nil {
		return err
	}
	log("generated", len(mesh.Vertices), "vertices and", len(mesh.Indices)/3, "triangles in", watch())

	app := NewApp(nil)
	renderer := glrender.NewImageRenderer(glrender.ImageRendererConfig{})
	img := image.NewRGBA(image.Rect(0, 0, cfg.Size, cfg.Size))
	labelSize := float64(cfg.Size) / 24
	for s := style.Stage(0); s <= style.MaxStage; s++ {
		watch = stopwatch()
		scene := app.Scene()
		if s == style.AutoRotate {
			// Show the accents from a different side.
			scene.Rotation = 100 * RotationStep
		}
		err = renderer.Render(mesh, style.ForStage(s), scene, img)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", s, err)
		}
		err = glrender.DrawLabel(img, s.String(), labelSize, glrender.InkColor)
		if err != nil {
			return fmt.Errorf("labeling %s: %w", s, err)
		}
		filename := filepath.Join(cfg.Dir, fmt.Sprintf("stage%d.png", int(s)))
		err = writePNG(filename, img)
		if err != nil {
			return err
		}
		log("wrote", filename, "in", watch())
	}

	if cfg.STL != "" {
		watch = stopwatch()
		fp, err := os.Create(cfg.STL)
		if err != nil {
			return err
		}
		defer fp.Close()
		_, err = sumie.WriteBinarySTL(fp, mesh.Triangles())
		if err != nil {
			return fmt.Errorf("writing STL file: %w", err)
		}
		log("wrote", fp.Name(), "in", watch())
	}
	return nil
}

func writePNG(filename string, img image.Image) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = png.Encode(fp, img)
	if err != nil {
		return err
	}
	return fp.Sync()
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
