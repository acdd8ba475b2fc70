// Package config provides the build settings loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/domain"
	"github.com/ExecutableBookProject/sphinx-notebook/internal/core/ports"
)

// DefaultFilename is the settings file looked up in the working
// directory.
const DefaultFilename = "nbbuild.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the settings from the given working directory. A missing
// file yields the defaults.
func (l *FileConfigLoader) Load(cwd string) (*domain.Settings, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// settingsDTO represents the structure of the nbbuild.yaml file.
type settingsDTO struct {
	Execute     *bool        `yaml:"execute"`
	Force       bool         `yaml:"force"`
	Cache       cacheSetting `yaml:"cache"`
	Exclude     []string     `yaml:"exclude"`
	Output      string       `yaml:"output"`
	Parallelism int          `yaml:"parallelism"`
}

// cacheSetting captures the cache location tri-state: a bare true
// means the default on-disk location, a string an explicit directory,
// false disables caching.
type cacheSetting struct {
	set     bool
	enabled bool
	path    string
}

// UnmarshalYAML implements yaml.Unmarshaler for bool-or-string values.
func (c *cacheSetting) UnmarshalYAML(value *yaml.Node) error {
	c.set = true
	switch value.Tag {
	case "!!bool":
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		c.enabled = b
	case "!!str":
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		c.enabled = true
		c.path = s
	default:
		return zerr.With(zerr.New("cache must be a boolean or a path"), "tag", value.Tag)
	}
	return nil
}

// Load reads a settings file from the given path.
func Load(path string) (*domain.Settings, error) {
	settings := defaults(filepath.Dir(path))

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, zerr.Wrap(err, "failed to read settings file")
	}

	var dto settingsDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, "failed to parse settings file")
	}

	if dto.Execute != nil {
		settings.ExecuteNotebooks = *dto.Execute
	}
	settings.ForceRun = dto.Force
	settings.ExcludePatterns = dto.Exclude
	if dto.Output != "" {
		settings.OutputDir = dto.Output
	}
	if dto.Parallelism > 0 {
		settings.Parallelism = dto.Parallelism
	}
	applyCacheSetting(settings, dto.Cache, filepath.Dir(path))

	return settings, nil
}

func defaults(dir string) *domain.Settings {
	return &domain.Settings{
		ExecuteNotebooks: true,
		CacheMode:        domain.CacheDefault,
		CacheDir:         filepath.Join(dir, domain.DefaultCacheDirName),
		OutputDir:        filepath.Join(dir, "_build"),
	}
}

func applyCacheSetting(settings *domain.Settings, c cacheSetting, dir string) {
	if !c.set {
		return
	}
	switch {
	case !c.enabled:
		settings.CacheMode = domain.CacheDisabled
		settings.CacheDir = ""
	case c.path != "":
		settings.CacheMode = domain.CachePath
		settings.CacheDir = c.path
	default:
		settings.CacheMode = domain.CacheDefault
		settings.CacheDir = filepath.Join(dir, domain.DefaultCacheDirName)
	}
}
