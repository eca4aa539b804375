package definition

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// LoadFS parses every .yaml, .yml and .json file in fsys and indexes the
// definitions by id. A file without an id is indexed by its base name.
func LoadFS(fsys fs.FS) (map[string]Definition, error) {
	out := make(map[string]Definition)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		def, err := Parse(data)
		if err != nil {
			return fmt.Errorf("definition: parse %s: %w", path, err)
		}
		if def.ID == "" {
			def.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if def.Title == "" {
				def.Title = Label(def.ID)
			}
		}
		if _, exists := out[def.ID]; exists {
			return fmt.Errorf("definition: %s redefines %q", path, def.ID)
		}
		out[def.ID] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
