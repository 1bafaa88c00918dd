package locate

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Output is what a search command printed and how it exited.
type Output struct {
	Lines    []string
	ExitCode int
}

// Runner runs a search command and captures its standard output.
type Runner interface {
	// Run executes name with args. A command that starts and exits
	// non-zero is not an error: the exit code is reported in Output.
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, discarding stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	out := Output{}
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return out, fmt.Errorf("failed to run %s: %w", name, err)
		}
		out.ExitCode = exitErr.ExitCode()
	}

	scanner := bufio.NewScanner(&stdout)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line != "" {
			out.Lines = append(out.Lines, line)
		}
	}
	return out, scanner.Err()
}

// FakeRunner implements Runner with canned outputs for testing.
type FakeRunner struct {
	outputs map[string]Output
	errs    map[string]error

	// Calls records every command line run, in order.
	Calls []string
}

// NewFakeRunner creates an empty FakeRunner. Unknown commands exit 1
// with no output.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		outputs: make(map[string]Output),
		errs:    make(map[string]error),
	}
}

// Set registers the output for a command line.
func (r *FakeRunner) Set(out Output, name string, args ...string) {
	r.outputs[commandLine(name, args)] = out
}

// SetError makes a command line fail to start.
func (r *FakeRunner) SetError(err error, name string, args ...string) {
	r.errs[commandLine(name, args)] = err
}

// Run returns the canned output for the command line.
func (r *FakeRunner) Run(_ context.Context, name string, args ...string) (Output, error) {
	key := commandLine(name, args)
	r.Calls = append(r.Calls, key)
	if err, ok := r.errs[key]; ok {
		return Output{}, err
	}
	if out, ok := r.outputs[key]; ok {
		return out, nil
	}
	return Output{ExitCode: 1}, nil
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
