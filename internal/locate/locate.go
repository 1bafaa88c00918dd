// Package locate finds installed executables.
//
// A search runs in two phases. The fast phase asks the OS command index
// (`where` on Windows, `which -a` elsewhere). Only when that finds nothing
// does the long phase run a recursive search under an explicit root
// (`where /R <root>` on Windows, `find <root>` elsewhere). The root is a
// command argument; the process working directory is never changed.
package locate

import (
	"context"
	"runtime"
	"strings"

	"github.com/thiagodp/apache-php/internal/fsops"
)

// Phase identifies which search produced a result.
type Phase string

const (
	PhaseFast Phase = "fast"
	PhaseLong Phase = "long"
)

// Result holds the candidate paths of one search.
type Result struct {
	// Paths are the candidates in the order the search printed them.
	// Duplicates are kept.
	Paths []string

	// Phase is the last phase that ran.
	Phase Phase
}

// query is one search command.
type query struct {
	name string
	args []string

	// partial keeps output of a non-zero exit. find exits 1 on any
	// unreadable directory even when it found matches.
	partial bool
}

// Locator searches for executables.
type Locator struct {
	runner     Runner
	fs         fsops.FS
	searchRoot string
	goos       string

	// OnPhase, when set, is called before each phase starts.
	OnPhase func(phase Phase, exe string)
}

// New creates a Locator for the running OS. searchRoot is where the long
// search starts.
func New(runner Runner, fs fsops.FS, searchRoot string) *Locator {
	return NewForOS(runner, fs, searchRoot, runtime.GOOS)
}

// NewForOS creates a Locator that builds search commands for goos.
func NewForOS(runner Runner, fs fsops.FS, searchRoot, goos string) *Locator {
	return &Locator{
		runner:     runner,
		fs:         fs,
		searchRoot: searchRoot,
		goos:       goos,
	}
}

// Locate returns every path where exe is installed. It never fails: a
// missing program, a failing command or an unusable search root all yield
// an empty result.
func (l *Locator) Locate(ctx context.Context, exe string) Result {
	l.notify(PhaseFast, exe)
	paths := l.run(ctx, l.fastQuery(exe))
	if len(paths) > 0 {
		return Result{Paths: paths, Phase: PhaseFast}
	}

	l.notify(PhaseLong, exe)
	return Result{Paths: l.longSearch(ctx, exe), Phase: PhaseLong}
}

// FastSearch runs only the indexed search.
func (l *Locator) FastSearch(ctx context.Context, exe string) []string {
	return l.run(ctx, l.fastQuery(exe))
}

func (l *Locator) longSearch(ctx context.Context, exe string) []string {
	info, err := l.fs.Stat(l.searchRoot)
	if err != nil || !info.IsDir() {
		return nil
	}
	return l.run(ctx, l.longQuery(exe))
}

func (l *Locator) fastQuery(exe string) query {
	if l.goos == "windows" {
		return query{name: "where", args: []string{exe}}
	}
	return query{name: "which", args: []string{"-a", exe}}
}

func (l *Locator) longQuery(exe string) query {
	if l.goos == "windows" {
		return query{name: "where", args: []string{"/R", l.searchRoot, exe}}
	}
	return query{
		name:    "find",
		args:    []string{l.searchRoot, "-type", "f", "-name", exe},
		partial: true,
	}
}

func (l *Locator) run(ctx context.Context, q query) []string {
	out, err := l.runner.Run(ctx, q.name, q.args...)
	if err != nil {
		return nil
	}
	if out.ExitCode != 0 && !q.partial {
		return nil
	}
	return FilterPaths(out.Lines)
}

func (l *Locator) notify(phase Phase, exe string) {
	if l.OnPhase != nil {
		l.OnPhase(phase, exe)
	}
}

// FilterPaths keeps the lines that contain a path separator, dropping
// bare-name echoes and informational messages.
func FilterPaths(lines []string) []string {
	var paths []string
	for _, line := range lines {
		if strings.ContainsAny(line, `/\`) {
			paths = append(paths, line)
		}
	}
	return paths
}
