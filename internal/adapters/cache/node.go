package cache

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/jupyter"  //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat" //nolint:depguard // Wired in engine wiring
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/telemetry"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// NodeID is the unique identifier for the execution engine Graft node.
const NodeID graft.ID = "adapter.execution_engine"

func init() {
	graft.Register(graft.Node[ports.ExecutionEngine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			nbformat.NodeID,
			jupyter.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.ExecutionEngine, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.NotebookReader](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.NotebookRunner](ctx)
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

			settings, err := loader.Load(".")
			if err != nil {
				return nil, err
			}

			// The engine is constructed even with caching disabled;
			// the orchestrator gates its use on the settings.
			dir := settings.CacheDir
			if dir == "" {
				dir = domain.DefaultCacheDirName
			}
			store, err := NewStore(dir)
			if err != nil {
				return nil, err
			}

			return NewEngine(store, reader, runner, log, tracer, settings.Parallelism), nil
		},
	})
}
