package recording

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FindLatest finds the most recently modified recording in dir
func FindLatest(dir string) (string, error) {
	files, err := List(dir)
	if err != nil {
		return "", err
	}
	return newest(files)
}

// newest returns the most recently modified of files. Files that can no
// longer be stat'ed are skipped.
func newest(files []string) (string, error) {
	var latestFile string
	var latestTime time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = f
		}
	}
	if latestFile == "" {
		return "", fmt.Errorf("no readable recording files among %d candidates", len(files))
	}
	return latestFile, nil
}

// List returns the recording files of dir in name order
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recordings directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no recording files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// Resolve expands path to the recordings it names: a single file, or every
// recording in a directory.
func Resolve(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return List(path)
	}
	return []string{path}, nil
}
