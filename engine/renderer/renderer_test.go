package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

type fakeBackend struct {
	initialized bool
	shutdown    bool
	nextID      uint32
	live        map[uint32][]math.Vertex
	draws       []string
	frames      int
	projection  math.Mat4
	failEnd     bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{live: map[uint32][]math.Vertex{}}
}

func (f *fakeBackend) Initialize(config *metadata.RendererBackendConfig, width, height uint32) error {
	f.initialized = true
	return nil
}

func (f *fakeBackend) Shutdown() error {
	f.shutdown = true
	return nil
}

func (f *fakeBackend) Resized(width, height uint32) error { return nil }

func (f *fakeBackend) BeginFrame(deltaTime float64) error { return nil }

func (f *fakeBackend) UpdateGlobalState(projection, view math.Mat4) {
	f.projection = projection
}

func (f *fakeBackend) EndFrame(deltaTime float64) error {
	if f.failEnd {
		return errors.New("swap failed")
	}
	f.frames++
	return nil
}

func (f *fakeBackend) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex, indices []uint32) error {
	f.nextID++
	geometry.InternalID = f.nextID
	f.live[geometry.InternalID] = append([]math.Vertex(nil), vertices...)
	return nil
}

func (f *fakeBackend) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex) error {
	f.live[geometry.InternalID] = append([]math.Vertex(nil), vertices...)
	return nil
}

func (f *fakeBackend) DestroyGeometry(geometry *metadata.Geometry) {
	delete(f.live, geometry.InternalID)
}

func (f *fakeBackend) DrawGeometry(data *metadata.GeometryRenderData) {
	f.draws = append(f.draws, data.Geometry.Name)
}

func triangleConfig(name string, dynamic bool) *metadata.GeometryConfig {
	return &metadata.GeometryConfig{
		Name: name,
		Vertices: []math.Vertex{
			{Position: math.NewVec3(0, 0, 0)},
			{Position: math.NewVec3(1, 0, 0)},
			{Position: math.NewVec3(0, 1, 0)},
		},
		Indices: []uint32{0, 1, 2},
		Dynamic: dynamic,
	}
}

func TestRendererSystemGeometryLifecycle(t *testing.T) {
	backend := newFakeBackend()
	r := NewRendererSystem(backend)
	require.NoError(t, r.Initialize(&metadata.RendererBackendConfig{}, 1024, 768))
	assert.True(t, backend.initialized)

	static, err := r.CreateGeometry(triangleConfig("pole", false))
	require.NoError(t, err)
	assert.True(t, core.IdentifierIsValid(static.ID))
	assert.Equal(t, uint32(3), static.VertexCount)

	flag, err := r.CreateGeometry(triangleConfig("flag", true))
	require.NoError(t, err)
	assert.NotEqual(t, static.ID, flag.ID)
	assert.Equal(t, 2, r.GeometryCount())

	_, err = r.CreateGeometry(triangleConfig("flag", true))
	assert.Error(t, err)

	moved := []math.Vertex{{Position: math.NewVec3(0, 0, 1)}, {}, {}}
	require.NoError(t, r.UpdateGeometry(flag, moved))
	assert.Equal(t, uint16(1), flag.Generation)
	assert.Equal(t, moved, backend.live[flag.InternalID])

	assert.Error(t, r.UpdateGeometry(static, moved))
	assert.Error(t, r.UpdateGeometry(flag, moved[:2]))

	got, ok := r.Get("pole")
	require.True(t, ok)
	assert.Same(t, static, got)

	r.DestroyGeometry(static)
	_, ok = r.Get("pole")
	assert.False(t, ok)
	assert.Len(t, backend.live, 1)

	require.NoError(t, r.Shutdown())
	assert.Empty(t, backend.live)
	assert.Zero(t, r.GeometryCount())
	assert.True(t, backend.shutdown)
}

func TestRendererSystemRejectsBadBuffers(t *testing.T) {
	r := NewRendererSystem(newFakeBackend())

	config := triangleConfig("bad", false)
	config.Indices = []uint32{0, 1, 3}
	_, err := r.CreateGeometry(config)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)

	config = triangleConfig("partial", false)
	config.Indices = []uint32{0, 1}
	_, err = r.CreateGeometry(config)
	assert.Error(t, err)

	_, err = r.CreateGeometry(&metadata.GeometryConfig{Name: "empty"})
	assert.Error(t, err)
	assert.Zero(t, r.GeometryCount())
}

func TestRendererSystemDrawFrame(t *testing.T) {
	backend := newFakeBackend()
	r := NewRendererSystem(backend)

	pole, err := r.CreateGeometry(triangleConfig("pole", false))
	require.NoError(t, err)
	ball, err := r.CreateGeometry(triangleConfig("ball", false))
	require.NoError(t, err)

	projection := math.NewMat4Perspective(math.DegToRad(45), 4.0/3.0, 0.1, 100)
	packet := &metadata.RenderPacket{
		DeltaTime:  1.0 / 60.0,
		Projection: projection,
		View:       math.NewMat4Identity(),
		Geometries: []metadata.GeometryRenderData{
			{Model: math.NewMat4Identity(), Geometry: pole},
			{Model: math.NewMat4Identity(), Geometry: ball},
		},
	}
	require.NoError(t, r.DrawFrame(packet))
	assert.Equal(t, []string{"pole", "ball"}, backend.draws)
	assert.Equal(t, projection, backend.projection)
	assert.Equal(t, uint64(1), r.FrameNumber)

	backend.failEnd = true
	assert.Error(t, r.DrawFrame(packet))
	assert.Equal(t, uint64(1), r.FrameNumber)
}
