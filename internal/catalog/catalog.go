// Package catalog filters an image directory down to the files relevant
// to a song's cast of singers.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

// Find returns the paths of all images in dir whose filename starts with
// one of the singer keys followed by a '.' and ends in a supported raster
// extension. The result is sorted so planning starts from a deterministic
// ordering; any randomness comes from the planner's shuffles.
func Find(dir string, singerKeys []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read image directory %s: %v", domain.ErrConfiguration, dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		for _, key := range singerKeys {
			if strings.HasPrefix(name, key+".") {
				matches = append(matches, filepath.Join(dir, name))
				break
			}
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no image files for singers %v in %s", domain.ErrConfiguration, singerKeys, dir)
	}

	sort.Strings(matches)
	return matches, nil
}
