package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"runcheck/internal/lang"
)

// Status classifies the outcome of a run.
type Status string

const (
	StatusSuccess      Status = "Success"
	StatusCompileError Status = "Compilation Error"
	StatusRuntimeError Status = "Runtime Error"
	StatusTimeLimit    Status = "Time Limit Exceeded"
	StatusToolMissing  Status = "Tool Missing"
)

// tempFolderName holds per-run build artifacts inside the working folder.
const tempFolderName = "temp_files"

var (
	ErrFileEmpty = errors.New("file is empty or contains only whitespace")
)

// Options control a single run.
type Options struct {
	// Stdin is passed to the target program's standard input when non-empty.
	Stdin string

	// TimeLimit bounds the compile and run steps. Zero means no limit; a
	// hung target then hangs the run.
	TimeLimit time.Duration

	// KeepArtifacts leaves compiled binaries/class files in the temp_files
	// folder instead of removing them after the run.
	KeepArtifacts bool
}

// Result reports a finished (or failed) run. Runtime is a best-effort
// wall-clock measurement, not a benchmark-grade metric.
type Result struct {
	Status   Status
	Language string
	File     string
	Runtime  time.Duration
	Output   string
	Stderr   string
}

// Failed reports whether the run ended in anything but success.
func (r *Result) Failed() bool {
	return r.Status != StatusSuccess
}

// Run compiles file if its language requires it, executes it, and measures
// the wall-clock time of the execution step.
//
// Tool outcomes (compile errors, non-zero exits, exceeded limits) are
// reported through the Result; the returned error is reserved for problems
// with the target file itself or with the run setup.
func Run(ctx context.Context, file string, opts Options) (*Result, error) {
	l, err := lang.ForFile(file)
	if err != nil {
		return nil, err
	}

	res := &Result{Language: l.Name, File: filepath.Base(file)}

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("file not found: %s", file)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, fmt.Errorf("%s: %w", file, ErrFileEmpty)
	}

	if _, err := exec.LookPath(l.Toolchain()); err != nil {
		res.Status = StatusToolMissing
		res.Stderr = fmt.Sprintf("%s not found in PATH; is the %s toolchain installed?", l.Toolchain(), l.Name)
		return res, nil
	}

	workDir := filepath.Dir(abs)
	artRoot := filepath.Join(workDir, tempFolderName)
	if err := os.MkdirAll(artRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s folder: %w", tempFolderName, err)
	}
	artDir, err := os.MkdirTemp(artRoot, "run")
	if err != nil {
		return nil, err
	}
	if !opts.KeepArtifacts {
		defer func() {
			os.RemoveAll(artDir)
			// Remove the artifact root too once nothing else lives in it.
			os.Remove(artRoot)
		}()
	}

	if l.Compiled {
		if done := compile(ctx, l, abs, artDir, workDir, opts, res); done {
			return res, nil
		}
	}

	argv := l.RunCommand(abs, artDir)

	runCtx := ctx
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	if opts.Stdin != "" {
		cmd.Stdin = strings.NewReader(opts.Stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res.Runtime = time.Since(start)
	res.Output = strings.TrimRight(stdout.String(), "\n")
	res.Stderr = strings.TrimRight(stderr.String(), "\n")

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		res.Status = StatusTimeLimit
		res.Stderr = fmt.Sprintf("execution exceeded time limit of %s", opts.TimeLimit)
	case runErr == nil:
		res.Status = StatusSuccess
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.Status = StatusRuntimeError
			if res.Stderr == "" {
				res.Stderr = fmt.Sprintf("process exited with non-zero status code: %d", exitErr.ExitCode())
			}
		} else {
			// The process never started, so there is nothing to time.
			res.Status = StatusToolMissing
			res.Runtime = 0
			res.Stderr = runErr.Error()
		}
	}
	return res, nil
}

// compile runs the language's compile step. It reports true when the run is
// finished, i.e. compilation failed and the binary must not be executed.
func compile(ctx context.Context, l lang.Language, src, artDir, workDir string, opts Options, res *Result) bool {
	argv := l.CompileCommand(src, artDir)

	compileCtx := ctx
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		compileCtx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	cmd := exec.CommandContext(compileCtx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if compileCtx.Err() == context.DeadlineExceeded {
			res.Status = StatusTimeLimit
			res.Stderr = fmt.Sprintf("compilation exceeded time limit of %s", opts.TimeLimit)
			return true
		}
		res.Status = StatusCompileError
		res.Stderr = strings.TrimRight(stderr.String(), "\n")
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
		return true
	}
	return false
}
