package ports

import (
	"context"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
)

// NotebookRunner executes a single notebook and returns the executed
// document with outputs populated.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type NotebookRunner interface {
	// Run executes the notebook at path. On failure the error carries
	// the interpreter traceback for reporting.
	Run(ctx context.Context, path string) (*domain.Notebook, error)
}
