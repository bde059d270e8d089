// Package harness runs key derivation candidates against generated vectors
// and compares their output with the in-process reference pipeline.
package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

// Candidate is an implementation under test.  Run receives the raw input
// bytes and returns the raw stdout bytes.  Timeouts are imposed by the caller
// through ctx.
type Candidate interface {
	// Run executes the candidate once.  A non-nil error means the candidate
	// did not complete normally; stdout is still returned when available.
	Run(ctx context.Context, input []byte) ([]byte, error)

	// Name returns a human-readable name for this candidate.
	Name() string
}

// ExitError reports a candidate that exited with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("candidate exited with status %d", e.Code)
	}
	return fmt.Sprintf("candidate exited with status %d: %s", e.Code, e.Stderr)
}

// Builder is implemented by candidates that need a one-time build step.
// Runner.Run calls Build once before dispatching any case.
type Builder interface {
	Build(ctx context.Context) error
}

// BuildError reports a build command that exited with a non-zero status.
type BuildError struct {
	Code   int
	Output string
}

func (e *BuildError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("build exited with status %d", e.Code)
	}
	return fmt.Sprintf("build exited with status %d: %s", e.Code, e.Output)
}

const (
	// DefaultBuildTimeout bounds a build when BuildTimeout is unset.
	DefaultBuildTimeout = 30 * time.Second

	// processWaitDelay is how long Run waits for output pipes after the
	// process was killed.
	processWaitDelay = 500 * time.Millisecond
)

// ProcessCandidate runs an external program, feeding the input on stdin.
type ProcessCandidate struct {
	CandidateName string
	Command       string
	Args          []string
	Dir           string
	Env           []string

	// BuildCommand is an optional command (argv) run once before the cases, e.g.
	// {"g++", "-O2", "-o", "main", "main.cpp"}.
	BuildCommand []string
	BuildTimeout time.Duration // 0 = DefaultBuildTimeout
}

// Name returns the configured name, or the command when none is set.
func (p *ProcessCandidate) Name() string {
	if p.CandidateName != "" {
		return p.CandidateName
	}
	return p.Command
}

// Run starts the process and waits for it to exit or for ctx to end.
func (p *ProcessCandidate) Run(ctx context.Context, input []byte) ([]byte, error) {
	if p.Command == "" {
		return nil, errors.New("candidate command is empty")
	}

	cmd := p.command(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.Bytes(), ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	if err != nil {
		return stdout.Bytes(), fmt.Errorf("failed to run %s: %w", p.Command, err)
	}
	return stdout.Bytes(), nil
}

// Build runs the build command, if any, in the candidate directory.
func (p *ProcessCandidate) Build(ctx context.Context) error {
	if len(p.BuildCommand) == 0 {
		return nil
	}

	timeout := p.BuildTimeout
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var output bytes.Buffer
	cmd := p.command(ctx, p.BuildCommand[0], p.BuildCommand[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("build of %s did not finish within %s: %w", p.Name(), timeout, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &BuildError{
			Code:   exitErr.ExitCode(),
			Output: strings.TrimSpace(output.String()),
		}
	}
	if err != nil {
		return fmt.Errorf("failed to run build %s: %w", p.BuildCommand[0], err)
	}
	return nil
}

func (p *ProcessCandidate) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = p.Dir
	if len(p.Env) > 0 {
		cmd.Env = append(cmd.Environ(), p.Env...)
	}
	setProcessGroup(cmd)
	cmd.WaitDelay = processWaitDelay
	return cmd
}

// ReferenceCandidate runs the keyderive pipeline in-process.  It behaves like
// the keyderive binary: three lines on success, an *ExitError on failure.
type ReferenceCandidate struct{}

// Name returns "reference".
func (ReferenceCandidate) Name() string {
	return "reference"
}

// Run derives the artifacts for the hex key in input.
func (ReferenceCandidate) Run(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := keyderive.Derive(firstLine(string(input)))
	if err != nil {
		return nil, &ExitError{Code: 1, Stderr: err.Error()}
	}
	return []byte(d.Format()), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Registry maps candidate names to implementations.  Selection is always an
// explicit name lookup.
type Registry struct {
	mu         sync.RWMutex
	candidates map[string]Candidate
}

// NewRegistry creates a registry that already contains the reference
// candidate.
func NewRegistry() *Registry {
	r := &Registry{candidates: make(map[string]Candidate)}
	r.candidates[ReferenceCandidate{}.Name()] = ReferenceCandidate{}
	return r
}

// Register adds c under its name.  Registering a name twice is an error.
func (r *Registry) Register(c Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if name == "" {
		return errors.New("candidate name is empty")
	}
	if _, ok := r.candidates[name]; ok {
		return fmt.Errorf("candidate %q already registered", name)
	}
	r.candidates[name] = c
	return nil
}

// Get returns the candidate registered under name.
func (r *Registry) Get(name string) (Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.candidates[name]
	if !ok {
		return nil, fmt.Errorf("unknown candidate %q (available: %s)", name, strings.Join(r.namesLocked(), ", "))
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.candidates))
	for name := range r.candidates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
