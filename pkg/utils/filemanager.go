// =============================================================================
// Sales Order Splitter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities, including:
//   - Output directory naming and creation
//   - Atomic file writes (temp file + rename)
//   - File discovery and existence checks
//
// ATOMIC WRITES:
//   Output files are first written to a uniquely named temporary file in the
//   destination directory and then renamed over the final name. A failed
//   write never leaves a partial file under the final name.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO-8601 calendar date used in directory names.
const DateLayout = "2006-01-02"

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// OrdersDirPath returns the output directory for an input file:
// <dir of inputPath>/<prefix><YYYY-MM-DD>.
//
// PARAMETERS:
//   - inputPath: The path to the sales data file.
//   - prefix: The directory name prefix, e.g. "Orders_".
//   - today: The run date. Only the calendar date is used.
//
// RETURNS:
//   - The absolute output directory path.
//   - An error if the input path cannot be made absolute.
func OrdersDirPath(inputPath, prefix string, today time.Time) (string, error) {
	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve input path: %w", err)
	}

	return filepath.Join(filepath.Dir(absPath), prefix+today.Format(DateLayout)), nil
}

// EnsureDir creates dir and any parents if they don't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic writes the content produced by write to path. The content
// goes to a temporary file in the same directory which is renamed over path
// once write and close have succeeded. On any failure the temporary file is
// removed and path is left untouched.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = write(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", filepath.Base(path), err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filepath.Base(path), err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// ListFiles returns the regular files in dir whose extension matches ext
// (case-insensitive), sorted by name. Hidden files are skipped.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}
		if ext == "" || strings.EqualFold(filepath.Ext(name), ext) {
			files = append(files, filepath.Join(dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
