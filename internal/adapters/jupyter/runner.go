// Package jupyter provides the notebook runner adapter shelling out to
// nbconvert.
package jupyter

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

var _ ports.NotebookRunner = (*Runner)(nil)

// Decoder parses raw ipynb bytes. nbformat.Codec satisfies it.
type Decoder interface {
	Decode(data []byte) (*domain.Notebook, error)
}

// Runner implements ports.NotebookRunner using `jupyter nbconvert`.
// The executed notebook is read back from nbconvert's stdout; kernel
// management, timeouts and sandboxing are nbconvert's concern.
type Runner struct {
	decoder Decoder
	logger  ports.Logger
	// command overrides the executable for tests.
	command string
}

// NewRunner creates a Runner.
func NewRunner(decoder Decoder, log ports.Logger) *Runner {
	return &Runner{
		decoder: decoder,
		logger:  log,
		command: "jupyter",
	}
}

// Run executes the notebook at path and returns the executed document.
// On failure the returned error carries the interpreter's stderr tail
// and exit code as metadata.
func (r *Runner) Run(ctx context.Context, path string) (*domain.Notebook, error) {
	args := []string{"nbconvert", "--to", "notebook", "--execute", "--stdout", path}

	cmd := exec.CommandContext(ctx, r.command, args...) //nolint:gosec // fixed executable, path from build driver
	cmd.Env = os.Environ()

	var stdout bytes.Buffer
	stderr := &tailWriter{logger: r.logger}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "nbconvert failed"), "exit_code", exitCode)
		return nil, zerr.With(wrapped, "stderr", stderr.Tail())
	}

	nb, err := r.decoder.Decode(stdout.Bytes())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse executed notebook")
	}
	return nb, nil
}

// tailWriter streams lines to the logger while keeping a bounded tail
// for error reporting.
type tailWriter struct {
	logger ports.Logger
	lines  []string
}

const tailLimit = 40

func (w *tailWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		w.logger.Info(line)
		w.lines = append(w.lines, line)
		if len(w.lines) > tailLimit {
			w.lines = w.lines[len(w.lines)-tailLimit:]
		}
	}
	return len(p), nil
}

// Tail returns the retained stderr lines.
func (w *tailWriter) Tail() string {
	return strings.Join(w.lines, "\n")
}
