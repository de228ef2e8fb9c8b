package scene

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/flagpole/engine/assets"
	"github.com/spaghettifunk/flagpole/engine/config"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/math"
	"github.com/spaghettifunk/flagpole/engine/renderer"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
	"github.com/spaghettifunk/flagpole/engine/systems"
)

const flagMesh = `# two faces
v 0 0 0
v 1 0 0
v 1 0.5 0
v 0 0.5 0
c 1 0 0
c 1 1 1
f 1/1 2/1 3/2
f 1/1 3/2 4/2
`

type recordingBackend struct {
	nextID   uint32
	uploaded map[uint32][]math.Vertex
	updates  int
}

func (b *recordingBackend) Initialize(config *metadata.RendererBackendConfig, width, height uint32) error {
	return nil
}
func (b *recordingBackend) Shutdown() error                                { return nil }
func (b *recordingBackend) Resized(width, height uint32) error             { return nil }
func (b *recordingBackend) BeginFrame(deltaTime float64) error             { return nil }
func (b *recordingBackend) UpdateGlobalState(projection, view math.Mat4)   {}
func (b *recordingBackend) EndFrame(deltaTime float64) error               { return nil }
func (b *recordingBackend) DrawGeometry(data *metadata.GeometryRenderData) {}

func (b *recordingBackend) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex, indices []uint32) error {
	b.nextID++
	geometry.InternalID = b.nextID
	b.uploaded[geometry.InternalID] = append([]math.Vertex(nil), vertices...)
	return nil
}

func (b *recordingBackend) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex) error {
	b.updates++
	b.uploaded[geometry.InternalID] = append([]math.Vertex(nil), vertices...)
	return nil
}

func (b *recordingBackend) DestroyGeometry(geometry *metadata.Geometry) {
	delete(b.uploaded, geometry.InternalID)
}

type fixture struct {
	cfg      *config.Config
	dir      string
	backend  *recordingBackend
	renderer *renderer.RendererSystem
	assets   *assets.AssetManager
}

func newFixture(t *testing.T, flag string) *fixture {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "vertexstore.obj"), []byte(flag), 0o644))

	am, err := assets.NewAssetManager(dir)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(false))
	t.Cleanup(am.Shutdown)

	cfg := config.Default()
	cfg.Assets.Dir = dir
	backend := &recordingBackend{uploaded: map[uint32][]math.Vertex{}}

	return &fixture{
		cfg:      cfg,
		dir:      dir,
		backend:  backend,
		renderer: renderer.NewRendererSystem(backend),
		assets:   am,
	}
}

func (f *fixture) writeFlag(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "meshes", "vertexstore.obj"), []byte(content), 0o644))
}

func TestBuildPoleBatch(t *testing.T) {
	cfg := config.Default().Scene
	batch := BuildPoleBatch(&cfg)

	segments := cfg.Segments + 1
	require.Equal(t, 6+2*4*segments, batch.VertexCount())
	require.Equal(t, 12+2*6*segments, batch.IndexCount())
	for i, idx := range batch.Indices {
		require.Less(t, idx, batch.VertexCount(), "index %d", i)
	}

	// ground, then the shaft starting at 6, then the finial after the shaft
	assert.Equal(t, uint32(6), batch.Indices[12])
	finialStart := 6 + 4*segments
	assert.Equal(t, finialStart, batch.Indices[12+6*segments])
	assert.Equal(t, systems.GroundColour, batch.Vertices[0].Colour)
	assert.Equal(t, float32(0.05), batch.Vertices[6].Position.Z)
	assert.InDelta(t, 0.02, batch.Vertices[finialStart].Position.Z, 1e-7)
	assert.Equal(t, float32(-1.1), batch.Vertices[finialStart].Position.Y)
}

func TestBuildSphere(t *testing.T) {
	cfg := config.Default().Scene
	sphere := BuildSphere(&cfg)
	assert.Equal(t, uint32(19*37), sphere.VertexCount())
	assert.InDelta(t, 0.16, sphere.Extents.Max.Y, 1e-6)
	assert.InDelta(t, 0.0, sphere.Extents.Min.Y, 1e-6)
	assert.Equal(t, SphereMeshName, sphere.Name)
}

func TestFlagSceneLifecycle(t *testing.T) {
	f := newFixture(t, flagMesh)
	s := New(f.cfg, f.assets)
	require.NoError(t, s.Initialize(f.renderer, nil))
	assert.Equal(t, 3, f.renderer.GeometryCount())

	pole, ok := f.renderer.Get(PoleMeshName)
	require.True(t, ok)
	assert.False(t, pole.Dynamic)
	flag, ok := f.renderer.Get(f.cfg.Assets.FlagMesh)
	require.True(t, ok)
	assert.True(t, flag.Dynamic)
	assert.Equal(t, uint32(6), flag.VertexCount)

	require.NoError(t, s.Update(0, 0))
	for i, v := range s.FlagVertices() {
		x := float64(v.Position.X)
		assert.InDelta(t, x*0.5*gomath.Sin(3*x), v.Position.Z, 1e-6, "vertex %d", i)
	}
	assert.True(t, s.Camera().GetPosition().Compare(math.NewVec3(0, 1, 4), 1e-6))

	packet := &metadata.RenderPacket{}
	require.NoError(t, s.Render(packet, 0))
	require.Len(t, packet.Geometries, 3)
	assert.Equal(t, flag, packet.Geometries[2].Geometry)
	assert.Equal(t, 1, f.backend.updates)
	assert.Equal(t, s.FlagVertices(), f.backend.uploaded[flag.InternalID])
	assert.Equal(t, s.Camera().GetView(), packet.View)

	require.NoError(t, s.Shutdown())
	assert.Zero(t, f.renderer.GeometryCount())
}

func TestFlagSceneAnimationKeepsParsedFlag(t *testing.T) {
	f := newFixture(t, flagMesh)
	s := New(f.cfg, f.assets)
	require.NoError(t, s.Initialize(f.renderer, nil))

	require.NoError(t, s.Update(0.5, 7.25))
	first := append([]math.Vertex(nil), s.FlagVertices()...)
	require.NoError(t, s.Update(0.5, 7.25))
	assert.Equal(t, first, s.FlagVertices())
	assert.Equal(t, float32(0.5), s.FlagVertices()[2].Position.Y)
}

func TestFlagSceneInitializeFailsOnBadFlag(t *testing.T) {
	f := newFixture(t, "v 0 0 0\nc 1 1 1\nf 1/1 2/1 1/1\n")
	s := New(f.cfg, f.assets)
	err := s.Initialize(f.renderer, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIndexOutOfRange)
	// nothing is drawn from a partial scene
	assert.Zero(t, f.renderer.GeometryCount())
}

func TestFlagSceneReload(t *testing.T) {
	require.True(t, core.EventSystemInitialize())
	t.Cleanup(func() { _ = core.EventSystemShutdown() })

	f := newFixture(t, flagMesh)
	s := New(f.cfg, f.assets)
	require.NoError(t, s.Initialize(f.renderer, nil))

	f.writeFlag(t, "v 0 0 0\nv 2 0 0\nv 2 1 0\nc 0 0 1\nf 1/1 2/1 3/1\n")
	handled := core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_ASSET_CHANGED,
		Data: &core.AssetEvent{Path: f.cfg.Assets.FlagMesh},
	})
	assert.True(t, handled)
	flag, ok := f.renderer.Get(f.cfg.Assets.FlagMesh)
	require.True(t, ok)
	assert.Equal(t, uint32(3), flag.VertexCount)
	assert.Len(t, s.FlagVertices(), 3)

	// A broken file keeps the current flag.
	f.writeFlag(t, "f 1/1 2/1\n")
	assert.ErrorIs(t, s.Reload(), core.ErrMalformedFace)
	flag, ok = f.renderer.Get(f.cfg.Assets.FlagMesh)
	require.True(t, ok)
	assert.Equal(t, uint32(3), flag.VertexCount)
	assert.Equal(t, 3, f.renderer.GeometryCount())

	// A file that parses but cannot be uploaded restores the current flag.
	before, ok := f.renderer.Get(f.cfg.Assets.FlagMesh)
	require.True(t, ok)
	f.writeFlag(t, "# nothing but a comment\n")
	assert.Error(t, s.Reload())
	flag, ok = f.renderer.Get(f.cfg.Assets.FlagMesh)
	require.True(t, ok)
	assert.Equal(t, uint32(3), flag.VertexCount)
	assert.NotEqual(t, before.ID, flag.ID)
	assert.Equal(t, 3, f.renderer.GeometryCount())
	assert.Len(t, s.FlagVertices(), 3)

	// Other assets are ignored.
	assert.False(t, core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_ASSET_CHANGED,
		Data: &core.AssetEvent{Path: "shaders/vert.glsl"},
	}))
}
