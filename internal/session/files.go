// Package session discovers and parses judge session files.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File name convention for judge submissions: session_<name>.json.
const (
	FilePrefix = "session_"
	FileSuffix = ".json"
)

// File represents a session file on disk.
type File struct {
	Path    string
	Name    string
	Session string
	Size    int64
	ModTime time.Time
}

// IsSessionFile reports whether a file name follows the session naming convention.
func IsSessionFile(name string) bool {
	return strings.HasPrefix(name, FilePrefix) && strings.HasSuffix(name, FileSuffix)
}

// SessionName derives the session identifier from a file name:
// "session_alice.json" yields "alice".
func SessionName(fileName string) string {
	return strings.TrimSuffix(strings.TrimPrefix(fileName, FilePrefix), FileSuffix)
}

// List finds session files in dir, sorted by file name. A missing directory
// yields an empty list.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var files []File
	for _, e := range entries {
		if e.IsDir() || !IsSessionFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path:    filepath.Join(dir, e.Name()),
			Name:    e.Name(),
			Session: SessionName(e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}
