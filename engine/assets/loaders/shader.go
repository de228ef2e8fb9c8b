package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/flagpole/engine/core"
	"github.com/spaghettifunk/flagpole/engine/renderer/metadata"
)

// ShaderLoader reads GLSL source text.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("shader %s: %w", path, core.ErrFileNotFound)
		}
		return nil, err
	}
	// GL expects a NUL terminated string
	source := string(data)
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeShader,
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: uint64(len(source)),
		Data:     source,
	}, nil
}

func (sl *ShaderLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
