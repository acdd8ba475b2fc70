package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/cache"    //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat" //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/telemetry"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			nbformat.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			engine, err := graft.Dep[ports.ExecutionEngine](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.NotebookReader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := loader.Load(".")
			if err != nil {
				return nil, err
			}

			return New(engine, reader, log, tracer, settings.OutputDir), nil
		},
	})
}
