package assets

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/spaghettifunk/flagpole/engine/assets/loaders"
	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

// changeBufferSize bounds the number of change notifications waiting for
// the engine loop. Further notifications are dropped until it catches up.
const changeBufferSize = 64

type AssetInfo struct {
	// Name is the slash separated path relative to the assets directory.
	Name       string
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	dir     string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
	changes  chan string
}

func NewAssetManager(assetsDir string) (*AssetManager, error) {
	info, err := os.Stat(assetsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "assets directory %s", assetsDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("assets directory %s is not a directory", assetsDir)
	}

	return &AssetManager{
		dir:     filepath.Clean(assetsDir),
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		changes: make(chan string, changeBufferSize),
		done:    make(chan struct{}),
	}, nil
}

/**
 * @brief Indexes every known asset under the assets directory and registers
 * the loaders. When watch is true the directory tree is also watched and
 * modified assets are reported on Changes.
 */
func (am *AssetManager) Initialize(watch bool) error {
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.MeshLoader{})

	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "creating assets watcher")
		}
		am.fsnotify = fsWatch
		am.watching = true
	}

	if err := am.watchRecursive(am.dir, false); err != nil {
		if am.watching {
			am.fsnotify.Close()
			am.watching = false
		}
		return errors.Wrapf(err, "indexing assets in %s", am.dir)
	}

	if am.watching {
		am.wg.Add(1)
		go am.start()
	}

	am.mutex.RLock()
	core.LogInfo("asset manager indexed %d assets in %s (watch=%t)", len(am.assets), am.dir, watch)
	am.mutex.RUnlock()
	return nil
}

// Shutdown stops the watcher and closes the Changes channel.
func (am *AssetManager) Shutdown() {
	if am.isClosed {
		return
	}
	am.isClosed = true
	if am.watching {
		close(am.done)
		am.wg.Wait()
	}
	close(am.changes)
}

// Changes reports the name of every indexed asset that was created or
// written after Initialize. The channel is closed by Shutdown.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

// Dir returns the assets directory.
func (am *AssetManager) Dir() string {
	return am.dir
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Lookup returns the index entry for name.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	asset, exists := am.assets[filepath.ToSlash(filepath.Clean(name))]
	return asset, exists
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	key := filepath.ToSlash(filepath.Clean(name))

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[key] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, errors.Wrapf(core.ErrUnknownAsset, "asset %s", name)
	}
	if asset.Type != resourceType {
		return nil, errors.Wrapf(core.ErrUnknownAsset, "asset %s is a %s, not a %s", name, asset.Type, resourceType)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, errors.Wrapf(core.ErrNoLoader, "asset type %s", asset.Type)
	}

	resource, err := loader.Load(asset.Path, resourceType, params)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", name)
	}
	core.LogDebug("loaded %s asset %s (%d bytes)", resource.Type, name, resource.DataSize)
	return resource, nil
}

func (am *AssetManager) UnloadAsset(resource *metadata.Resource) error {
	loader, exists := am.loaders[resource.Type]
	if !exists {
		return errors.Wrapf(core.ErrNoLoader, "asset type %s", resource.Type)
	}
	return loader.Unload(resource)
}

// LoadMesh parses the mesh asset called name.
func (am *AssetManager) LoadMesh(name string) (*metadata.GeometryConfig, error) {
	resource, err := am.LoadAsset(name, metadata.ResourceTypeMesh, nil)
	if err != nil {
		return nil, err
	}
	config := resource.Data.(*metadata.GeometryConfig)
	config.Name = name
	return config, nil
}

// LoadShaderSource returns the NUL terminated source of the shader asset called name.
func (am *AssetManager) LoadShaderSource(name string) (string, error) {
	resource, err := am.LoadAsset(name, metadata.ResourceTypeShader, nil)
	if err != nil {
		return "", err
	}
	return resource.Data.(string), nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if name, ok := am.handleFileEvent(e.Name); ok {
					am.notify(name)
				}
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("assets watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(name string) {
	select {
	case am.changes <- name:
	default:
		core.LogWarn("asset change queue is full, dropping %s", name)
	}
}

// watchRecursive indexes all files under the given directory and, when
// watching, adds every directory to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if !am.watching {
				return nil
			}
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return "", false
	}
	name, err := filepath.Rel(am.dir, path)
	if err != nil {
		return "", false
	}
	name = filepath.ToSlash(name)

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Name: name,
		Path: path,
		Type: assetType,
	}
	return name, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, err := filepath.Rel(am.dir, path)
	if err != nil {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, filepath.ToSlash(name))
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".glsl", ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".obj":
		return metadata.ResourceTypeMesh
	default:
		return metadata.ResourceTypeNone
	}
}
