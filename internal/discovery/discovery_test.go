package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/playcheck/internal/errors"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindMediaFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "B Movie.mkv")
	touch(t, dir, "a movie.mp4")
	touch(t, dir, "notes.txt")
	touch(t, dir, ".hidden.mkv")
	if err := os.Mkdir(filepath.Join(dir, "extras"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := FindMediaFiles(dir)
	if err != nil {
		t.Fatalf("FindMediaFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
	// Case-insensitive sort by filename.
	if filepath.Base(files[0]) != "a movie.mp4" || filepath.Base(files[1]) != "B Movie.mkv" {
		t.Errorf("order = %v", files)
	}
}

func TestFindMediaFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := FindMediaFiles(dir)
	if err == nil {
		t.Fatal("no error for a directory without media")
	}
	if !errors.IsKind(err, errors.KindNoFilesFound) {
		t.Errorf("error kind = %v, want no files found", err)
	}
}

func TestFindMediaFilesMissingDir(t *testing.T) {
	_, err := FindMediaFiles(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("no error for a missing directory")
	}
	if !errors.IsKind(err, errors.KindInputNotFound) {
		t.Errorf("error kind = %v, want input not found", err)
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MP4", true},
		{"movie.m2ts", true},
		{"movie.srt", false},
		{"movie", false},
	}
	for _, tt := range tests {
		if got := IsMediaFile(tt.path); got != tt.want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestListSidecars(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Movie (2020).mkv")
	touch(t, dir, "Movie (2020).srt")
	touch(t, dir, "Movie (2020).en.srt")
	touch(t, dir, "Movie (2020).forced.sup")
	touch(t, dir, "Other Movie.srt")
	touch(t, dir, "Movie (2020).nfo")

	names, err := SidecarLister{}.ListSidecars(dir, "Movie (2020)")
	if err != nil {
		t.Fatalf("ListSidecars: %v", err)
	}

	want := []string{"Movie (2020).en.srt", "Movie (2020).forced.sup", "Movie (2020).srt"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("sidecar %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestListSidecarsNoMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Movie.mkv")

	names, err := SidecarLister{}.ListSidecars(dir, "Movie")
	if err != nil {
		t.Fatalf("ListSidecars: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("got %v, want none", names)
	}
}
