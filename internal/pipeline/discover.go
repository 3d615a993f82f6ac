package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the files directly inside sourceDir whose names end in ext
// (case-sensitive) and returns their paths in filename order. Subdirectories
// are neither returned nor descended into.
func Discover(sourceDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		files = append(files, filepath.Join(sourceDir, e.Name()))
	}
	return files, nil
}
