package mpris

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/catalog"
)

var (
	artStems = []string{"cover", "folder", "album", "front"}
	artExts  = []string{".jpg", ".png", ".jpeg"}

	// artNames is every stem with every extension, best match first.
	artNames = lo.FlatMap(artStems, func(stem string, _ int) []string {
		return lo.Map(artExts, func(ext string, _ int) string { return stem + ext })
	})
)

// sidecarArt returns the first cover image found next to mediaPath.
func sidecarArt(mediaPath string) string {
	dir := filepath.Dir(mediaPath)
	path, _ := lo.Find(lo.Map(artNames, func(name string, _ int) string {
		return filepath.Join(dir, name)
	}), func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	})
	return path
}

// ArtURL returns a URL for the track's cover: its cover ref when it is a
// URL or an existing file, otherwise art found beside the media file.
func ArtURL(track catalog.Track) string {
	ref := track.CoverRef
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "file://"):
		return ref
	case ref != "":
		if _, err := os.Stat(ref); err == nil {
			return "file://" + ref
		}
	}
	if track.MediaRef != "" {
		if art := sidecarArt(track.MediaRef); art != "" {
			return "file://" + art
		}
	}
	return ""
}
