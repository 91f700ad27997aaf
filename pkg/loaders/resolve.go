package loaders

import (
	"fmt"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// LoadScene resolves a scene reference: a built-in scene ID such as "reflection",
// a discovered file scene ID such as "file:mirror-room", or a path to a .json file.
func LoadScene(ref string) (*scene.Scene, error) {
	if ref == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if strings.HasPrefix(ref, "file:") {
		files, err := scene.ListFileScenes()
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == ref {
				return LoadSceneFile(info.FilePath)
			}
		}
		return nil, fmt.Errorf("scene file %q not found", strings.TrimPrefix(ref, "file:"))
	}

	if strings.HasSuffix(strings.ToLower(ref), ".json") {
		return LoadSceneFile(ref)
	}

	return scene.NewBuiltinScene(ref)
}
