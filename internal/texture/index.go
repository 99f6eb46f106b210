package texture

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// extRank orders formats for the same stem; lower wins. Alpha-capable
// formats come first so a dial with a transparent rim keeps it.
var extRank = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".jpg":  3,
	".jpeg": 3,
	".bmp":  4,
}

// Supported reports whether the file extension is a decodable dial texture.
func Supported(path string) bool {
	_, ok := extRank[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for dial textures. An empty
// dir yields an empty index.
func BuildIndex(dir string) (*Index, error) {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("texture: index %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("texture: index %s: not a directory", dir)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("texture: index %s: %w", dir, err)
	}
	return idx, nil
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Names may carry a directory prefix or an extension; only the stem is matched.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
