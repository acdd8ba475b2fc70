package app

import (
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/glue"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the
// CLI layer.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
	Glue         *glue.Store
}
