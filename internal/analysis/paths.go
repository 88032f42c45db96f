package analysis

import (
	"path/filepath"
	"strings"
)

func dirOf(path string) string {
	return filepath.Dir(path)
}

// baseNameOf strips the directory and extension from a path, yielding the
// base name sidecar subtitle files are matched against.
func baseNameOf(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
