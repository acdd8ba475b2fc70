package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat" //nolint:depguard // Wired in app layer
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/engine/orchestrator"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			orchestrator.NodeID,
			nbformat.NodeID,
			glue.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}

			reader, err := graft.Dep[ports.NotebookReader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[*glue.Store](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, orch, reader, store, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			glue.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*glue.Store](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          application,
		Logger:       log,
		ConfigLoader: loader,
		Glue:         store,
	}, nil
}
