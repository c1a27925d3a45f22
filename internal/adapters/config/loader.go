// Package config provides the optional precache.yaml settings loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Jarcho/cargo-ci-precache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the settings file looked up in the working directory.
const DefaultFilename = "precache.yaml"

// FileLoader loads tool settings from a YAML file.
type FileLoader struct {
	Filename string
}

// NewLoader creates a loader for the default settings file.
func NewLoader() *FileLoader {
	return &FileLoader{Filename: DefaultFilename}
}

// settingsFile represents the structure of precache.yaml.
type settingsFile struct {
	Temp      string `yaml:"temp"`
	CargoHome string `yaml:"cargoHome"`
	DryRun    bool   `yaml:"dryRun"`
}

// Load reads the settings from the given working directory. A missing file
// yields zero settings: the file is entirely optional, flags and environment
// cover everything it can say.
func (l *FileLoader) Load(cwd string) (domain.Settings, error) {
	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, nil
		}
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings file"), "path", path)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to parse settings file"), "path", path)
	}

	return domain.Settings{
		Temp:      file.Temp,
		CargoHome: file.CargoHome,
		DryRun:    file.DryRun,
	}, nil
}
