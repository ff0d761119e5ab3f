package sumieaux

import (
	"fmt"
	"io"
	"strings"

	"github.com/soypat/sumie/glrender"
	"github.com/soypat/sumie/orbit"
	"github.com/soypat/sumie/style"
)

// RotationStep is the model rotation in radians added every frame of the [style.AutoRotate] stage.
const RotationStep = 0.008

// Key is a device independent key understood by [App].
type Key int

const (
	KeyNone Key = iota
	KeyNext
	KeyPrev
	KeyReset
	KeyQuit
)

// Action is the outcome of handling a key.
type Action int

const (
	ActionNone Action = iota
	ActionStageChanged
	ActionReset
	// ActionQuit requests the window to close.
	ActionQuit
)

// App is the demo state mutated by input events and read by the render loop
// every frame. It is not safe for concurrent use.
type App struct {
	Camera *orbit.Camera

	stage    style.Stage
	rotation float32

	dragging     bool
	lastX, lastY float64

	out io.Writer
}

// NewApp returns the demo state at stage 0 with a reset camera. Status
// lines are written to out; a nil out silences them.
func NewApp(out io.Writer) *App {
	return &App{
		Camera: orbit.New(),
		out:    out,
	}
}

// Stage returns the active stage.
func (a *App) Stage() style.Stage { return a.stage }

// Rotation returns the model rotation angle in radians. It grows without
// bound while auto-rotating.
func (a *App) Rotation() float32 { return a.rotation }

// Dragging reports whether a drag gesture is in progress.
func (a *App) Dragging() bool { return a.dragging }

// HandleKey applies a key press.
func (a *App) HandleKey(k Key) Action {
	switch k {
	case KeyNext:
		a.setStage(a.stage.Next())
		return ActionStageChanged
	case KeyPrev:
		a.setStage(a.stage.Prev())
		return ActionStageChanged
	case KeyReset:
		a.rotation = 0
		a.Camera.Reset()
		a.println("Rotation and camera reset")
		return ActionReset
	case KeyQuit:
		return ActionQuit
	}
	return ActionNone
}

func (a *App) setStage(s style.Stage) {
	a.stage = s
	a.printStage()
}

// PressButton starts a drag gesture at cursor position (x, y).
func (a *App) PressButton(x, y float64) {
	a.dragging = true
	a.lastX, a.lastY = x, y
}

// ReleaseButton ends the drag gesture.
func (a *App) ReleaseButton() { a.dragging = false }

// MoveCursor orbits the camera by the cursor displacement while dragging.
// Movement outside of a drag gesture is ignored.
func (a *App) MoveCursor(x, y float64) {
	if !a.dragging {
		return
	}
	a.Camera.Drag(x-a.lastX, y-a.lastY)
	a.lastX, a.lastY = x, y
}

// Scroll zooms the camera.
func (a *App) Scroll(dy float64) { a.Camera.Zoom(dy) }

// Advance steps per-frame animation.
func (a *App) Advance() {
	if a.stage == style.AutoRotate {
		a.rotation += RotationStep
	}
}

// Scene returns the view of the current frame.
func (a *App) Scene() glrender.Scene {
	return glrender.Scene{
		Eye:      a.Camera.Position(),
		Target:   a.Camera.Target(),
		Rotation: a.rotation,
	}
}

const rule = "------------------------------------"

func (a *App) printStage() {
	if a.out == nil {
		return
	}
	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(a.stage.String())
	if a.stage != style.AutoRotate {
		for _, note := range style.ForStage(a.stage).Notes {
			b.WriteString("\n-> " + note)
		}
	}
	b.WriteString("\n" + rule)
	fmt.Fprintln(a.out, b.String())
}

func (a *App) println(args ...any) {
	if a.out != nil {
		fmt.Fprintln(a.out, args...)
	}
}

// PrintBanner writes the title and control help.
func (a *App) PrintBanner() {
	a.println("Sumi-e Style Demo\n\n" +
		"Controls:\n" +
		"  SPACE / Right : Next stage\n" +
		"  Left          : Previous stage\n" +
		"  R             : Reset rotation and camera\n" +
		"  ESC / Q       : Quit\n" +
		"  Mouse drag    : Rotate camera view\n" +
		"  Mouse wheel   : Zoom in/out")
	a.printStage()
}
