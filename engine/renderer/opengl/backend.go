package opengl

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/platform"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

type OpenGLRenderer struct {
	platform    *platform.Platform
	FrameNumber uint64

	program            *Program
	modelLocation      int32
	viewLocation       int32
	projectionLocation int32

	clearColour       math.Vec3
	framebufferWidth  uint32
	framebufferHeight uint32

	geometries     map[uint32]*openglGeometryData
	nextGeometryID uint32
}

func New(p *platform.Platform) *OpenGLRenderer {
	return &OpenGLRenderer{
		platform:   p,
		geometries: make(map[uint32]*openglGeometryData),
	}
}

// Initialize loads the GL function pointers for the current context and
// builds the shader program. The platform window must already exist.
func (r *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig, width, height uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r.clearColour = config.ClearColour
	r.framebufferWidth, r.framebufferHeight = r.platform.FramebufferSize()
	if r.framebufferWidth == 0 || r.framebufferHeight == 0 {
		r.framebufferWidth, r.framebufferHeight = width, height
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, int32(r.framebufferWidth), int32(r.framebufferHeight))

	program, err := NewProgram(config.VertexShaderSource, config.FragmentShaderSource)
	if err != nil {
		return err
	}
	r.program = program
	r.modelLocation = program.GetUniformLocation("u_Model")
	r.viewLocation = program.GetUniformLocation("u_View")
	r.projectionLocation = program.GetUniformLocation("u_Projection")

	core.LogInfo("OpenGL renderer initialized successfully.")
	return nil
}

func (r *OpenGLRenderer) Shutdown() error {
	// Destroy in the opposite order of creation.
	ids := make([]int, 0, len(r.geometries))
	for id := range r.geometries {
		ids = append(ids, int(id))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	for _, id := range ids {
		r.DestroyGeometry(&metadata.Geometry{InternalID: uint32(id)})
	}

	if r.program != nil {
		core.LogDebug("Destroying OpenGL program...")
		r.program.Delete()
		r.program = nil
	}
	return nil
}

func (r *OpenGLRenderer) Resized(width, height uint32) error {
	r.framebufferWidth = width
	r.framebufferHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	core.LogInfo("OpenGL renderer backend->resized: w/h: %d/%d", width, height)
	return nil
}

func (r *OpenGLRenderer) BeginFrame(deltaTime float64) error {
	gl.ClearColor(r.clearColour.X, r.clearColour.Y, r.clearColour.Z, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	return nil
}

func (r *OpenGLRenderer) UpdateGlobalState(projection, view math.Mat4) {
	gl.UniformMatrix4fv(r.projectionLocation, 1, false, &projection.Data[0])
	gl.UniformMatrix4fv(r.viewLocation, 1, false, &view.Data[0])
}

func (r *OpenGLRenderer) EndFrame(deltaTime float64) error {
	r.platform.SwapBuffers()
	r.FrameNumber++
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x at frame %d", code, r.FrameNumber)
	}
	return nil
}
