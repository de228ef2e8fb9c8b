package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/flagpole/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the window and its OpenGL context.
type Platform struct {
	window    *glfw.Window
	startTime float64
}

func New() *Platform {
	return &Platform{}
}

/**
 * @brief Creates the window with an OpenGL 3.3 core, forward compatible
 * context and makes the context current on the calling thread.
 *
 * @param samples The number of MSAA samples. Zero disables multisampling.
 */
func (p *Platform) Startup(applicationName string, x, y, width, height, samples uint32) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Samples, int(samples))
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.window = window

	p.window.SetInputMode(glfw.StickyKeysMode, glfw.True)
	p.window.SetKeyCallback(keyCallback)
	p.window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.window.SetPos(int(x), int(y))
	p.window.Show()

	p.startTime = glfw.GetTime()

	core.LogInfo("window %q created (%dx%d, %d samples)", applicationName, width, height, samples)
	return nil
}

func (p *Platform) Shutdown() error {
	if p.window != nil {
		p.window.Destroy()
		p.window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window was asked to close, either by the user or by the escape key.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.window.ShouldClose()
}

// SwapBuffers presents the frame rendered into the back buffer.
func (p *Platform) SwapBuffers() {
	p.window.SwapBuffers()
}

// FramebufferSize returns the framebuffer size in pixels.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

// GetAbsoluteTime returns the seconds elapsed since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	code, ok := translateKey(key)
	if !ok || action == glfw.Repeat {
		return
	}
	if err := core.InputProcessKey(code, action == glfw.Press); err != nil {
		core.LogError("failed to process key %d: %s", key, err)
	}
}

func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key == glfw.KeyEscape:
		return core.KEY_ESCAPE, true
	case key == glfw.KeySpace,
		key >= glfw.Key0 && key <= glfw.Key9,
		key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KeyCode(key), true
	default:
		return 0, false
	}
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.LogDebug("framebuffer size changed to %dx%d", width, height)
}
