// Package discover enumerates candidate audio files under a root path.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConvertedDirName is the designated output folder. Directories with this
// name are skipped so already-converted files are never reprocessed.
const ConvertedDirName = "Converted for Rekordbox"

// resourceForkPrefix marks macOS AppleDouble sidecar files.
const resourceForkPrefix = "._"

// supportedExtensions are the audio extensions that qualify a file for
// conversion, lowercase, without the leading dot.
var supportedExtensions = map[string]bool{
	"aiff": true,
	"aif":  true,
	"flac": true,
	"wav":  true,
	"mp3":  true,
	"ogg":  true,
	"aac":  true,
}

// Entry is one candidate file: its full path and its display name
// (file name without the extension).
type Entry struct {
	Path string
	Name string
}

// Error is a fatal discovery failure: the root path does not exist or a
// directory could not be read. Discovery errors abort the whole run.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("discover %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// List returns every supported audio file under root, depth-first.
// Ordering within a directory is whatever the filesystem yields.
// If root is itself a file it is returned as a single entry.
func List(root string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &Error{Path: root, Err: err}
	}

	if !info.IsDir() {
		return []Entry{newEntry(root)}, nil
	}

	var entries []Entry
	if err := walk(root, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func walk(dir string, entries *[]Entry) error {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return &Error{Path: dir, Err: err}
	}

	for _, d := range dirents {
		full := filepath.Join(dir, d.Name())

		if d.IsDir() {
			if d.Name() == ConvertedDirName {
				continue
			}
			if err := walk(full, entries); err != nil {
				return err
			}
			continue
		}

		if !wanted(d.Name()) {
			continue
		}
		*entries = append(*entries, newEntry(full))
	}

	return nil
}

// wanted reports whether a file name qualifies for conversion: a supported
// audio extension and not a resource-fork artifact.
func wanted(name string) bool {
	if strings.HasPrefix(name, resourceForkPrefix) {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return supportedExtensions[ext]
}

func newEntry(path string) Entry {
	base := filepath.Base(path)
	return Entry{
		Path: path,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
	}
}
