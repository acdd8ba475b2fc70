package nbformat

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// NodeID is the unique identifier for the notebook codec Graft node.
const NodeID graft.ID = "adapter.nbformat"

func init() {
	graft.Register(graft.Node[ports.NotebookReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.NotebookReader, error) {
			return New(), nil
		},
	})
}
