package platform

import (
	"path/filepath"
	"strings"

	"github.com/aretw0/scrawl/pkg/core"
)

// CodecFor picks the codec matching the file extension of path.
// YAML for .yaml and .yml, JSON otherwise.
func CodecFor(path string) core.Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return core.YAMLCodec{}
	default:
		return core.JSONCodec{}
	}
}
