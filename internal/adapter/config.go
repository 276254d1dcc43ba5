package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/placefold/internal/model"
)

// ConfigFileName is looked up in the folder root when no --config is given.
const ConfigFileName = "placefold.yaml"

// ConfigLoader reads the optional configuration file.
type ConfigLoader interface {
	// Load merges the file at path over the defaults. A missing file yields the
	// defaults unless required is set.
	Load(path m.Path, required bool) (m.Config, error)
}

// YAMLConfigLoader implements ConfigLoader with gopkg.in/yaml.v3.
type YAMLConfigLoader struct {
	fs ProjectFSAdapter
}

// NewYAMLConfigLoader constructs a YAMLConfigLoader.
func NewYAMLConfigLoader(fs ProjectFSAdapter) *YAMLConfigLoader {
	return &YAMLConfigLoader{fs: fs}
}

type configYAML struct {
	ScriptExtensions       map[string]string `yaml:"script_extensions"`
	DefaultScriptExtension *string           `yaml:"default_script_extension"`
	ModelSuffix            *string           `yaml:"model_suffix"`
	Debounce               string            `yaml:"debounce"`
}

// Load reads path and applies it over m.DefaultConfig.
func (l *YAMLConfigLoader) Load(path m.Path, required bool) (m.Config, error) {
	cfg := m.DefaultConfig()

	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw configYAML

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	for class, ext := range raw.ScriptExtensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			return cfg, fmt.Errorf("config %s: script extension %q for %s must start with a dot", path, ext, class)
		}

		cfg.ScriptExtensions[class] = ext
	}

	if raw.DefaultScriptExtension != nil {
		if !strings.HasPrefix(*raw.DefaultScriptExtension, ".") {
			return cfg, fmt.Errorf("config %s: default_script_extension must start with a dot", path)
		}

		cfg.DefaultScriptExtension = *raw.DefaultScriptExtension
	}

	if raw.ModelSuffix != nil {
		if !strings.HasPrefix(*raw.ModelSuffix, ".") {
			return cfg, fmt.Errorf("config %s: model_suffix must start with a dot", path)
		}

		cfg.ModelSuffix = *raw.ModelSuffix
	}

	if raw.Debounce != "" {
		d, err := time.ParseDuration(raw.Debounce)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("config %s: invalid debounce %q", path, raw.Debounce)
		}

		cfg.Debounce = d
	}

	return cfg, nil
}
