package jupyter

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// NodeID is the unique identifier for the notebook runner Graft node.
const NodeID graft.ID = "adapter.notebook_runner"

func init() {
	graft.Register(graft.Node[ports.NotebookRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{nbformat.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.NotebookRunner, error) {
			reader, err := graft.Dep[ports.NotebookReader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			decoder, ok := reader.(Decoder)
			if !ok {
				decoder = nbformat.New()
			}
			return NewRunner(decoder, log), nil
		},
	})
}
