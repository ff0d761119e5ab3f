//go:build !tinygo && cgo

package sumieaux

import (
	"bytes"
	"fmt"
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/sumie"
	"github.com/soypat/sumie/glbuild"
	"github.com/soypat/sumie/glrender"
	"github.com/soypat/sumie/style"
)

func ui(mesh sumie.Mesh, app *App, cfg UIConfig) error {
	window, term, err := startGLFW(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return err
	}
	defer term()

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if app.HandleKey(mapKey(key)) == ActionQuit {
			w.SetShouldClose(true)
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			app.PressButton(w.GetCursorPos())
		case glfw.Release:
			app.ReleaseButton()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		app.MoveCursor(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.Scroll(yoff)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	vao, buffers := uploadMesh(mesh)
	defer gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	defer gl.DeleteVertexArrays(1, &vao)
	if err := glgl.Err(); err != nil {
		return fmt.Errorf("uploading mesh: %w", err)
	}

	programmer := glbuild.NewDefaultProgrammer()
	var vertSrc, fragSrc bytes.Buffer
	_, err = programmer.WriteVertex(&vertSrc)
	if err != nil {
		return err
	}
	vertSrc.WriteByte(0)
	programs := stageProgram[glgl.Program]{
		compile: func(s style.Stage) (glgl.Program, error) {
			fragSrc.Reset()
			_, err := programmer.WriteFragment(&fragSrc, style.ForStage(s))
			if err != nil {
				var zero glgl.Program
				return zero, err
			}
			fragSrc.WriteByte(0)
			return glgl.CompileProgram(glgl.ShaderSource{
				Vertex:   vertSrc.String(),
				Fragment: fragSrc.String(),
			})
		},
		release: func(p glgl.Program) { p.Delete() },
	}
	defer programs.Close()

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	bg := glrender.PaperColor
	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		glfw.PollEvents()
		gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		stage := app.Stage()
		prog, ok, err := programs.Ensure(stage)
		if err != nil {
			log.Printf("building %s program, frames skipped until stage changes: %s", stage, err)
		}
		app.Advance()
		if ok {
			width, height := window.GetFramebufferSize()
			if height == 0 {
				height = 1 // Minimized window.
			}
			prog.Bind()
			scene := app.Scene()
			setUniforms(prog.ID(), scene, float32(width)/float32(height))
			gl.BindVertexArray(vao)
			gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
			gl.BindVertexArray(0)
		}
		window.SwapBuffers()
	}
	return nil
}

// uploadMesh creates the vertex array holding the interleaved vertex buffer
// and the element buffer of mesh. buffers holds the VBO and EBO in that order.
func uploadMesh(mesh sumie.Mesh) (vao uint32, buffers [2]uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(2, &buffers[0])
	gl.BindVertexArray(vao)

	stride := int32(unsafe.Sizeof(sumie.Vertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, buffers[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buffers[1])
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(glbuild.AttribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(sumie.Vertex{}.Position))))
	gl.EnableVertexAttribArray(glbuild.AttribPosition)
	gl.VertexAttribPointer(glbuild.AttribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(sumie.Vertex{}.Normal))))
	gl.EnableVertexAttribArray(glbuild.AttribNormal)
	gl.BindVertexArray(0)
	return vao, buffers
}

// setUniforms uploads the frame parameters. Uniforms optimized out of a
// style's program have location -1 and are silently ignored by GL.
func setUniforms(prog uint32, scene glrender.Scene, aspect float32) {
	model := scene.Model()
	view := scene.View()
	projection := scene.Projection(aspect)
	light := glrender.DefaultLight
	eye := scene.Eye
	gl.UniformMatrix4fv(uniform(prog, glbuild.UniformModel), 1, false, &model[0])
	gl.UniformMatrix4fv(uniform(prog, glbuild.UniformView), 1, false, &view[0])
	gl.UniformMatrix4fv(uniform(prog, glbuild.UniformProjection), 1, false, &projection[0])
	gl.Uniform3f(uniform(prog, glbuild.UniformLightPos), light.X, light.Y, light.Z)
	gl.Uniform3f(uniform(prog, glbuild.UniformViewPos), eye.X, eye.Y, eye.Z)
	gl.Uniform1f(uniform(prog, glbuild.UniformTime), float32(glfw.GetTime()))
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func mapKey(key glfw.Key) Key {
	switch key {
	case glfw.KeySpace, glfw.KeyRight:
		return KeyNext
	case glfw.KeyLeft:
		return KeyPrev
	case glfw.KeyR:
		return KeyReset
	case glfw.KeyEscape, glfw.KeyQ:
		return KeyQuit
	}
	return KeyNone
}

func startGLFW(width, height int, title string) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
