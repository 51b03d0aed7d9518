package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported video file extensions (lowercase, with leading dot).
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".mov":  true,
	".avi":  true,
	".m4v":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".mpg":  true,
	".mpeg": true,
}

// IsVideo reports whether path has a supported video extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover returns the video files under input, sorted lexicographically
// for deterministic processing order. A single-file input is returned
// as-is when it has a video extension.
func Discover(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !IsVideo(input) {
			return nil, nil
		}
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsVideo(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
