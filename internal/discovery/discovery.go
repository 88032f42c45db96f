// Package discovery provides media file discovery for batch analysis and
// sidecar subtitle lookup.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/playcheck/internal/errors"
)

// mediaExtensions are the container extensions accepted for analysis.
var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".avi":  true,
	".wmv":  true,
	".ts":   true,
	".m2ts": true,
	".webm": true,
	".mpg":  true,
	".mpeg": true,
	".flv":  true,
}

// subtitleExtensions identify sidecar subtitle files.
var subtitleExtensions = map[string]bool{
	".srt": true,
	".ass": true,
	".ssa": true,
	".sub": true,
	".vtt": true,
	".sup": true,
	".idx": true,
}

// IsMediaFile reports whether a path has a recognized media container
// extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindMediaFiles finds analyzable media files in the given directory,
// sorted alphabetically by filename. Hidden files and subdirectories are
// skipped.
func FindMediaFiles(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, errors.NewInputNotFoundError(inputDir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewInputNotFoundError(inputDir, os.ErrInvalid)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.NewInputNotFoundError(inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if IsMediaFile(name) {
			files = append(files, filepath.Join(inputDir, name))
		}
	}

	if len(files) == 0 {
		return nil, errors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	return files, nil
}

// SidecarLister lists subtitle files next to an input, matched by base name.
// It satisfies the analysis pipeline's sidecar contract.
type SidecarLister struct{}

// ListSidecars returns the names of subtitle files in dir whose name starts
// with baseName. Language-suffixed names ("Movie.en.srt") match too.
func (SidecarLister) ListSidecars(dir, baseName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !subtitleExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == baseName || strings.HasPrefix(stem, baseName+".") {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}
