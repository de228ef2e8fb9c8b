package assets

import "github.com/spaghettifunk/flagpole/engine/renderer/metadata"

// Loader turns a file on disk into a resource. Data holds the loader's
// own type, for example *metadata.GeometryConfig for meshes.
type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
