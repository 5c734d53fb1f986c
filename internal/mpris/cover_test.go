package mpris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/cadence/internal/catalog"
)

func TestSidecarArt(t *testing.T) {
	// Create temp directory with a cover file
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	trackPath := filepath.Join(dir, "track.mp3")

	got := sidecarArt(trackPath)
	if got != coverPath {
		t.Errorf("sidecarArt() = %q, want %q", got, coverPath)
	}
}

func TestSidecarArt_NotFound(t *testing.T) {
	dir := t.TempDir()
	trackPath := filepath.Join(dir, "track.mp3")

	got := sidecarArt(trackPath)
	if got != "" {
		t.Errorf("sidecarArt() = %q, want empty string", got)
	}
}

func TestSidecarArt_Priority(t *testing.T) {
	dir := t.TempDir()

	// Create folder.jpg (lower priority)
	folderPath := filepath.Join(dir, "folder.jpg")
	if err := os.WriteFile(folderPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Create cover.jpg (higher priority)
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	trackPath := filepath.Join(dir, "track.mp3")

	got := sidecarArt(trackPath)
	if got != coverPath {
		t.Errorf("sidecarArt() = %q, want %q (higher priority)", got, coverPath)
	}
}

func TestArtURL(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "art.jpg")
	if err := os.WriteFile(explicit, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		track catalog.Track
		want  string
	}{
		{"remote cover", catalog.Track{CoverRef: "https://img.example/a.jpg"}, "https://img.example/a.jpg"},
		{"existing cover file", catalog.Track{CoverRef: explicit}, "file://" + explicit},
		{"missing cover falls back to media dir", catalog.Track{CoverRef: "/nope.jpg", MediaRef: filepath.Join(dir, "t.mp3")}, "file://" + coverPath},
		{"nothing", catalog.Track{Title: "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtURL(tt.track); got != tt.want {
				t.Errorf("ArtURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
