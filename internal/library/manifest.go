package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sysmod-lang/sysmod/internal/config"
)

// Manifest describes a standard library distribution: which files it
// ships and in which order they load. Order matters only for
// reproducible diagnostics; name resolution is order-independent.
type Manifest struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Files   []string `yaml:"files"`
}

// loadManifest reads library.yaml from the library root. A missing
// manifest falls back to every source file in the directory tree,
// sorted; a malformed one is an error because the library author
// clearly intended it to be used.
func loadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, config.LibraryManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return scanManifest(dir)
		}
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Files) == 0 {
		return scanManifest(dir)
	}
	return &m, nil
}

func scanManifest(dir string) (*Manifest, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(d.Name(), ext) {
				rel, relErr := filepath.Rel(dir, path)
				if relErr != nil {
					return relErr
				}
				files = append(files, rel)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return &Manifest{Files: files}, nil
}
