// Package config loads and validates the tagedit YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Workspace struct {
		Root        string   `yaml:"root"`
		DeniedPaths []string `yaml:"denied_paths"` // path prefixes no tool may touch
	} `yaml:"workspace"`

	Tools ToolsConfig `yaml:"tools"`

	Log struct {
		Path        string `yaml:"path"`        // empty disables file logging
		Development bool   `yaml:"development"` // readable encoder instead of JSON
	} `yaml:"log"`
}

// ToolsConfig holds per-tool configuration with explicit enable/disable
type ToolsConfig struct {
	View ViewToolConfig `yaml:"view"`
	Edit EditToolConfig `yaml:"edit"`
}

// ViewToolConfig configures the view tool (tagged file reading)
type ViewToolConfig struct {
	Enabled  bool `yaml:"enabled"`
	MaxLines int  `yaml:"max_lines"` // max lines returned per call
}

// EditToolConfig configures the edit tool
type EditToolConfig struct {
	Enabled            bool `yaml:"enabled"`
	MaxFileSizeKB      int  `yaml:"max_file_size_kb"`
	ReadBeforeEditMsgs int  `yaml:"read_before_edit_msgs"` // require view within N tool calls before edit (0 = disabled)
}

// Default returns a usable configuration rooted at the current directory.
func Default() *Config {
	cfg := &Config{}
	cfg.Tools.View.Enabled = true
	cfg.Tools.Edit.Enabled = true
	cfg.applyDefaults()
	if cwd, err := os.Getwd(); err == nil {
		cfg.Workspace.Root = cwd
	}
	return cfg
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Convert workspace root to absolute path
	if cfg.Workspace.Root != "" {
		absRoot, err := filepath.Abs(cfg.Workspace.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
		}
		cfg.Workspace.Root = absRoot
	} else if cwd, err := os.Getwd(); err == nil {
		cfg.Workspace.Root = cwd
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tools.View.MaxLines == 0 {
		c.Tools.View.MaxLines = 500
	}
	if c.Tools.Edit.MaxFileSizeKB == 0 {
		c.Tools.Edit.MaxFileSizeKB = 1024
	}
}

// IsToolEnabled returns true if the tool is enabled in config
func (c *Config) IsToolEnabled(toolName string) bool {
	switch toolName {
	case "view":
		return c.Tools.View.Enabled
	case "edit":
		return c.Tools.Edit.Enabled
	default:
		return false
	}
}

// IsPathDenied reports whether a path falls under a denied prefix.
func (c *Config) IsPathDenied(absPath string) bool {
	for _, denied := range c.Workspace.DeniedPaths {
		prefix := denied
		if !filepath.IsAbs(prefix) {
			prefix = filepath.Join(c.Workspace.Root, prefix)
		}
		prefix = filepath.Clean(prefix)
		if absPath == prefix || strings.HasPrefix(absPath, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
