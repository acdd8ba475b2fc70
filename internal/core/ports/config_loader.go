package ports

import "github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"

// ConfigLoader defines the interface for loading the build settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the settings from the given working directory.
	Load(cwd string) (*domain.Settings, error)
}
