// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/cache"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/config"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/jupyter"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/logger"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/nbformat"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/adapters/telemetry"
	// Register app, engine and glue nodes.
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/app"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/engine/orchestrator"
	_ "github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)
