package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"runcheck/internal"
	"runcheck/internal/history"
	"runcheck/internal/runner"
	"runcheck/internal/workdir"
)

func main() {
	runFile := flag.String("run", "", "Source file to time (headless, no TUI)")
	input := flag.String("input", "", "Stdin data for the target program (use \\n for new lines)")
	limit := flag.Duration("limit", 0, "Time limit for compile and run steps (0 = none)")
	keep := flag.Bool("keep", false, "Keep compiled artifacts in temp_files")
	list := flag.Bool("list", false, "List runnable files in the working folder and exit")
	flag.Parse()

	base := baseDir()
	opts := runner.Options{
		Stdin:         strings.ReplaceAll(*input, "\\n", "\n"),
		TimeLimit:     *limit,
		KeepArtifacts: *keep,
	}

	target := *runFile
	if target == "" && flag.NArg() > 0 {
		target = flag.Arg(0)
	}

	if *list {
		if err := listFiles(base); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if target != "" {
		os.Exit(runHeadless(base, target, opts))
	}

	m, err := internal.NewModel(base, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// baseDir anchors dest.txt and check_code next to the binary, falling back to
// the current directory.
func baseDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

func listFiles(base string) error {
	dir, err := workdir.Resolve(base)
	if err != nil {
		return err
	}
	files, err := workdir.ListSources(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No supported code files found in %s.\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func runHeadless(base, target string, opts runner.Options) int {
	dir, err := workdir.Resolve(base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Bare file names are looked up in the working folder.
	if _, err := os.Stat(target); err != nil && !filepath.IsAbs(target) {
		candidate := filepath.Join(dir, target)
		if _, err := os.Stat(candidate); err == nil {
			target = candidate
		}
	}

	res, err := runner.Run(context.Background(), target, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("Status: %s\n", res.Status)
	fmt.Printf("Language: %s\n", res.Language)
	if res.Status != runner.StatusToolMissing {
		fmt.Printf("Runtime: %.3f s\n", res.Runtime.Seconds())
	}
	if res.Output != "" {
		fmt.Printf("Output:\n%s\n", res.Output)
	}
	if res.Stderr != "" {
		fmt.Printf("Error:\n%s\n", res.Stderr)
	}

	recordRun(base, res)

	if res.Failed() {
		return 1
	}
	return 0
}

// recordRun appends the result to the history database. History is advisory;
// a failure here never fails the run.
func recordRun(base string, res *runner.Result) {
	repo, err := history.NewRepository(filepath.Join(base, "runcheck.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer repo.Close()

	run := &history.Run{
		File:     res.File,
		Language: res.Language,
		Status:   string(res.Status),
		Runtime:  res.Runtime,
		RanAt:    time.Now(),
	}
	if err := repo.Create(run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
