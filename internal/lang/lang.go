package lang

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for file extensions no toolchain is known for.
var ErrUnsupported = errors.New("unsupported file type")

// Language describes how to compile and run a source file of one language.
type Language struct {
	Name     string
	Compiled bool
}

var (
	Python = Language{Name: "python", Compiled: false}
	C      = Language{Name: "c", Compiled: true}
	CPP    = Language{Name: "cpp", Compiled: true}
	Java   = Language{Name: "java", Compiled: true}
)

var byExtension = map[string]Language{
	".py":   Python,
	".c":    C,
	".cpp":  CPP,
	".cxx":  CPP,
	".cc":   CPP,
	".java": Java,
}

// Supported reports whether the file's extension maps to a known language.
func Supported(path string) bool {
	_, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ForFile maps a source file to its language by extension.
func ForFile(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := byExtension[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return Language{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	return l, nil
}

// CompileCommand returns the argv that compiles src into artDir, or nil for
// interpreted languages.
func (l Language) CompileCommand(src, artDir string) []string {
	switch l.Name {
	case "c":
		return []string{"gcc", src, "-o", filepath.Join(artDir, stem(src)+".out")}
	case "cpp":
		return []string{"g++", src, "-o", filepath.Join(artDir, stem(src)+".out")}
	case "java":
		return []string{"javac", "-d", artDir, src}
	}
	return nil
}

// RunCommand returns the argv that executes src (or its compiled artifact
// from artDir).
func (l Language) RunCommand(src, artDir string) []string {
	switch l.Name {
	case "python":
		return []string{pythonInterpreter(), src}
	case "c", "cpp":
		return []string{filepath.Join(artDir, stem(src)+".out")}
	case "java":
		return []string{"java", "-cp", artDir, stem(src)}
	}
	return nil
}

// Toolchain returns the external program the language depends on, used to
// distinguish a missing compiler/interpreter from a failing one.
func (l Language) Toolchain() string {
	switch l.Name {
	case "python":
		return pythonInterpreter()
	case "c":
		return "gcc"
	case "cpp":
		return "g++"
	case "java":
		return "javac"
	}
	return ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// python3 is preferred; some systems only install "python".
func pythonInterpreter() string {
	if _, err := exec.LookPath("python3"); err == nil {
		return "python3"
	}
	return "python"
}
