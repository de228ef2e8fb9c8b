package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

const triangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\nc 1 1 1\nf 1/1 2/1 3/1\n"

func newAssetsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "flag.obj"), []byte(triangle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "vert.glsl"), []byte("#version 330 core\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("ignored"), 0o644))
	return dir
}

func TestAssetManagerIndexAndLoad(t *testing.T) {
	dir := newAssetsDir(t)
	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(false))
	defer am.Shutdown()

	info, ok := am.Lookup("meshes/flag.obj")
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeMesh, info.Type)
	_, ok = am.Lookup("readme.md")
	assert.False(t, ok)

	mesh, err := am.LoadMesh("meshes/flag.obj")
	require.NoError(t, err)
	assert.Equal(t, "meshes/flag.obj", mesh.Name)
	assert.Equal(t, uint32(3), mesh.VertexCount())

	source, err := am.LoadShaderSource("shaders/vert.glsl")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\n\x00", source)
}

func TestAssetManagerErrors(t *testing.T) {
	dir := newAssetsDir(t)
	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(false))
	defer am.Shutdown()

	_, err = am.LoadMesh("meshes/missing.obj")
	assert.ErrorIs(t, err, core.ErrUnknownAsset)

	_, err = am.LoadMesh("shaders/vert.glsl")
	assert.ErrorIs(t, err, core.ErrUnknownAsset)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "flag.obj"), []byte("f 1/1 2/1\n"), 0o644))
	_, err = am.LoadMesh("meshes/flag.obj")
	assert.ErrorIs(t, err, core.ErrMalformedFace)
	assert.Contains(t, err.Error(), "loading meshes/flag.obj")

	_, err = NewAssetManager(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestAssetManagerReportsChanges(t *testing.T) {
	dir := newAssetsDir(t)
	am, err := NewAssetManager(dir)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(true))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "flag.obj"), []byte(triangle+"f 3/1 2/1 1/1\n"), 0o644))

	assert.Eventually(t, func() bool {
		select {
		case name := <-am.Changes():
			return name == "meshes/flag.obj"
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	mesh, err := am.LoadMesh("meshes/flag.obj")
	require.NoError(t, err)
	assert.Equal(t, uint32(6), mesh.VertexCount())

	am.Shutdown()
	for range am.Changes() {
	}
	_, open := <-am.Changes()
	assert.False(t, open)
	am.Shutdown()
}
