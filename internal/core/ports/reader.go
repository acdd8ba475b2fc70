package ports

import "github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"

// NotebookReader parses notebook documents and derives their identity.
//
//go:generate go run go.uber.org/mock/mockgen -source=reader.go -destination=mocks/mock_reader.go -package=mocks
type NotebookReader interface {
	// Read parses the notebook file at path.
	Read(path string) (*domain.Notebook, error)

	// ContentKey computes the identity key for a notebook. The key
	// derives from cell content only, never from the file path, so a
	// renamed file with identical content keeps its records.
	ContentKey(nb *domain.Notebook) string
}
