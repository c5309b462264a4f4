package main

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"fieldview/camera"
	"fieldview/colormap"
	"fieldview/config"
	"fieldview/field"
	"fieldview/render"
)

// sliceStep is how far one keypress moves the active slicing plane, as a
// fraction of the field.
const sliceStep = 0.05

// Viewer owns the window, camera, and the set of cross-sections on
// screen. All methods except Snapshot must run on the GL thread.
type Viewer struct {
	window   *glfw.Window
	settings config.Settings

	cam  *camera.Camera
	proj *camera.Projection

	field *field.ScalarField
	cmap  *colormap.Colormap

	// One slicing plane per axis plus the box shell.
	planes    [3]*render.CrossSection
	positions [3]float32
	box       *render.CrossSection
	showBox   bool

	activeAxis render.Axis

	// Mouse state for camera control.
	mouseDown  bool
	lastMouseX float64
	lastMouseY float64

	// Guards the snapshot fields read by the websocket server.
	mu sync.Mutex
}

// NewViewer creates the GLFW window and GL context and builds the initial
// cross-sections for f. Must be called from the locked main thread.
func NewViewer(settings config.Settings, f *field.ScalarField) (*Viewer, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(settings.Window.Width, settings.Window.Height, settings.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	fmt.Println("OpenGL version:", gl.GoStr(gl.GetString(gl.VERSION)))

	v := &Viewer{
		window:     window,
		settings:   settings,
		field:      f,
		cmap:       colormap.ByName(settings.Render.Colormap),
		positions:  [3]float32{0.5, 0.5, 0.5},
		showBox:    false,
		activeAxis: render.AxisZ,
		proj:       camera.NewProjection(settings.Window.Width, settings.Window.Height),
	}

	gl.Enable(gl.DEPTH_TEST)
	bg := settings.Render.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	if err := v.rebuildSections(); err != nil {
		glfw.Terminate()
		return nil, err
	}

	// Frame the whole volume.
	v.cam = camera.New(1)
	v.cam.Rotate(0.6, 0.4)
	v.cam.Focus(v.planes[0].EffectiveRadius())

	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		v.onResize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		v.onKey(key, action)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		v.cam.Zoom(float32(1.0 - yoff*0.1))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		v.onMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		v.onMouseMove(xpos, ypos)
	})

	return v, nil
}

// rebuildSections constructs and initializes the three slicing planes and
// the box shell from the current field, colormap, and plane positions.
// The mesh of a cross-section is immutable, so moving a plane or changing
// the colormap means building a replacement. Pointer swaps happen under
// v.mu because Snapshot reads the planes from server goroutines.
func (v *Viewer) rebuildSections() error {
	for axis := 0; axis < 3; axis++ {
		cs, err := v.buildSection(render.NewPlane(render.Axis(axis), v.positions[axis]))
		if err != nil {
			return err
		}
		v.swapPlane(axis, cs)
	}

	cs, err := v.buildSection(render.NewBox())
	if err != nil {
		return err
	}
	if v.box != nil {
		v.box.Destroy()
	}
	v.box = cs
	return nil
}

// swapPlane installs a replacement plane under the snapshot lock and
// destroys the one it displaces.
func (v *Viewer) swapPlane(axis int, cs *render.CrossSection) {
	v.mu.Lock()
	old := v.planes[axis]
	v.planes[axis] = cs
	v.mu.Unlock()
	if old != nil {
		old.Destroy()
	}
}

func (v *Viewer) buildSection(model render.Model) (*render.CrossSection, error) {
	cs, err := render.NewCrossSection(model, v.field, mgl32.Vec3{},
		render.WithColormap(v.cmap))
	if err != nil {
		return nil, err
	}
	if err := cs.Initialize(); err != nil {
		return nil, err
	}
	return cs, nil
}

// rebuildPlane replaces only the active axis plane, after a slice move.
func (v *Viewer) rebuildPlane() {
	axis := int(v.activeAxis)
	cs, err := v.buildSection(render.NewPlane(v.activeAxis, v.positions[axis]))
	if err != nil {
		fmt.Println("failed to rebuild slicing plane:", err)
		return
	}
	v.swapPlane(axis, cs)
}

// SetField swaps in a new same-shape field and re-uploads every section's
// texture.
func (v *Viewer) SetField(f *field.ScalarField) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, cs := range v.allSections() {
		if err := cs.SetField(f); err != nil {
			return err
		}
	}
	return v.field.Replace(f)
}

func (v *Viewer) allSections() []*render.CrossSection {
	out := []*render.CrossSection{v.planes[0], v.planes[1], v.planes[2]}
	if v.box != nil {
		out = append(out, v.box)
	}
	return out
}

// Frame renders one frame and swaps buffers.
func (v *Viewer) Frame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if v.showBox {
		v.box.Render(v.cam, v.proj)
	} else {
		for _, p := range v.planes {
			p.Render(v.cam, v.proj)
		}
	}

	v.window.SwapBuffers()
}

// Run drives the frame loop until the window closes.
func (v *Viewer) Run() {
	for !v.window.ShouldClose() {
		v.Frame()
		glfw.PollEvents()
	}
}

// Terminate releases all GL resources and the window.
func (v *Viewer) Terminate() {
	for _, cs := range v.allSections() {
		cs.Destroy()
	}
	v.cmap.Destroy()
	v.window.Destroy()
	glfw.Terminate()
}

// Snapshot materializes the data the websocket server streams: shape,
// extrema, display window, and the sampled values of the active slice.
// Everything is copied while the lock is held, so the server never holds
// a reference into the live field. Safe to call from any goroutine.
func (v *Viewer) Snapshot() FieldSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	vmin, vmax := v.planes[v.activeAxis].Range()
	return snapshotField(v.field, v.cmap, int(v.activeAxis), v.positions[v.activeAxis], vmin, vmax)
}

func (v *Viewer) onResize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	v.proj.Resize(width, height)
}

func (v *Viewer) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		v.window.SetShouldClose(true)
	case glfw.KeyX:
		v.setActiveAxis(render.AxisX)
	case glfw.KeyY:
		v.setActiveAxis(render.AxisY)
	case glfw.KeyZ:
		v.setActiveAxis(render.AxisZ)
	case glfw.KeyB:
		v.showBox = !v.showBox
		if v.showBox {
			fmt.Println("Showing box shell")
		} else {
			fmt.Println("Showing slicing planes")
		}
	case glfw.KeyLeftBracket:
		v.moveSlice(-sliceStep)
	case glfw.KeyRightBracket:
		v.moveSlice(sliceStep)
	case glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4:
		v.switchColormap(colormap.All[int(key-glfw.Key1)])
	}
}

func (v *Viewer) setActiveAxis(axis render.Axis) {
	v.mu.Lock()
	v.activeAxis = axis
	v.mu.Unlock()
	fmt.Println("Active slicing axis:", axis)
}

func (v *Viewer) moveSlice(delta float32) {
	v.mu.Lock()
	axis := int(v.activeAxis)
	pos := v.positions[axis] + delta
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	v.positions[axis] = pos
	v.mu.Unlock()

	v.rebuildPlane()
	fmt.Printf("Slice %s = %.2f\n", v.activeAxis, pos)
}

func (v *Viewer) switchColormap(cm *colormap.Colormap) {
	v.mu.Lock()
	v.cmap = cm
	v.mu.Unlock()

	if err := v.rebuildSections(); err != nil {
		fmt.Println("failed to switch colormap:", err)
		return
	}
	fmt.Println("Colormap:", cm.Name())
}

func (v *Viewer) onMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	if action == glfw.Press {
		v.mouseDown = true
		v.lastMouseX, v.lastMouseY = v.window.GetCursorPos()
	} else if action == glfw.Release {
		v.mouseDown = false
	}
}

func (v *Viewer) onMouseMove(xpos, ypos float64) {
	if !v.mouseDown {
		return
	}
	dx := float32(xpos - v.lastMouseX)
	dy := float32(ypos - v.lastMouseY)
	v.cam.Rotate(dx*0.01, dy*0.01)
	v.lastMouseX = xpos
	v.lastMouseY = ypos
}
