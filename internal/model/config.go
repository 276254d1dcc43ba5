package model

import (
	"strings"
	"time"
)

// Config holds the projection catalog and runtime options.
type Config struct {
	// ScriptExtensions maps script classes to their file extension.
	ScriptExtensions map[string]string
	// DefaultScriptExtension is used for script classes mapped to "".
	DefaultScriptExtension string
	// ModelSuffix is appended after the lowercased class for property files.
	ModelSuffix string
	// Debounce is the quiet period the watch command waits before rebuilding.
	Debounce time.Duration
}

// DefaultConfig returns the built-in catalog.
func DefaultConfig() Config {
	return Config{
		ScriptExtensions: map[string]string{
			"Script":       ".server.lua",
			"LocalScript":  ".local.lua",
			"ModuleScript": ".module.lua",
		},
		DefaultScriptExtension: ".lua",
		ModelSuffix:            ".model",
		Debounce:               500 * time.Millisecond,
	}
}

// IsScript reports whether class is projected with a script file.
func (c Config) IsScript(class string) bool {
	_, ok := c.ScriptExtensions[class]
	return ok
}

// ScriptExtension returns the script file extension for class.
func (c Config) ScriptExtension(class string) string {
	if ext := c.ScriptExtensions[class]; ext != "" {
		return ext
	}

	return c.DefaultScriptExtension
}

// ModelExtension returns the property file extension for class.
func (c Config) ModelExtension(class string) string {
	return "." + strings.ToLower(class) + c.ModelSuffix
}
