// Package filesys collects the small set of filesystem helpers the
// log engine needs: creating the segment directory and listing its
// segment files in a stable order. It is a trimmed descendant of the
// teacher repository's much broader filesys package — CopyDir,
// SearchFiles, and friends had no caller in this store, so they did
// not make the cut.
package filesys

import (
	"errors"
	"os"
	"sort"
	"strings"
)

// ErrIsNotDir is returned when a path that should be a directory
// turns out to be a regular file.
var ErrIsNotDir = errors.New("path exists and is not a directory")

// CreateDir ensures dirPath exists as a directory with the given
// permission bits, creating any missing parents. It is not an error
// for the directory to already exist.
func CreateDir(dirPath string, perm os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return ErrIsNotDir
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, perm)
}

// ListFilesWithSuffix returns the names (not full paths) of every
// regular file directly inside dir whose name ends in suffix, sorted
// lexicographically. Non-regular entries (subdirectories, symlinks)
// and files with any other suffix are ignored, matching spec.md §6:
// "every regular file in that directory whose name ends in .log is a
// segment; other files are ignored."
func ListFilesWithSuffix(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}
