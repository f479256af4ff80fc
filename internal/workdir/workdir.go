package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"runcheck/internal/lang"
)

const (
	// FolderName is the conventional name of the working folder holding the
	// sources to be timed.
	FolderName = "check_code"

	// PointerName is the single-line file recording the working folder's
	// absolute path.
	PointerName = "dest.txt"
)

// Resolve locates the working folder for the given base directory.
//
// A check_code folder next to base wins and the pointer file is rewritten to
// its absolute path. Otherwise a pointer file naming an existing directory is
// honored, which lets the user relocate the folder. Failing both, a fresh
// check_code and pointer file are created.
func Resolve(base string) (string, error) {
	local := filepath.Join(base, FolderName)
	pointer := filepath.Join(base, PointerName)

	if info, err := os.Stat(local); err == nil && info.IsDir() {
		abs, err := filepath.Abs(local)
		if err != nil {
			return "", err
		}
		if err := writePointer(pointer, abs); err != nil {
			return "", err
		}
		return abs, nil
	}

	if stored, err := readPointer(pointer); err == nil && stored != "" {
		if info, err := os.Stat(stored); err == nil && info.IsDir() {
			return stored, nil
		}
		// Stale pointer: the directory moved away or was deleted. Fall
		// through and regenerate the default layout.
	}

	if err := os.MkdirAll(local, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s folder: %w", FolderName, err)
	}
	abs, err := filepath.Abs(local)
	if err != nil {
		return "", err
	}
	if err := writePointer(pointer, abs); err != nil {
		return "", err
	}
	return abs, nil
}

// ListSources returns the names of supported source files in dir, sorted.
func ListSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if lang.Supported(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func readPointer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line, nil
}

func writePointer(path, dir string) error {
	if err := os.WriteFile(path, []byte(dir+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", PointerName, err)
	}
	return nil
}
