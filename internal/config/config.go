// Package config provides project configuration loading, validation, and
// persistence. Project configurations are the external parameter bag
// consumed by workflow validation: paths into the source tree, toolchain
// install, and build outputs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProjectConfig is the parameter bag for one embedded build project.
// Validation only reads it; the engine never writes to a loaded config.
type ProjectConfig struct {
	Name        string `koanf:"name" toml:"name" validate:"required"`
	Description string `koanf:"description" toml:"description,omitempty"`

	SourcePath        string `koanf:"source_path" toml:"source_path" validate:"required"`
	GeneratedCodePath string `koanf:"generated_code_path" toml:"generated_code_path" validate:"required"`
	ToolchainPath     string `koanf:"toolchain_path" toml:"toolchain_path" validate:"required"`
	PostLinkDataPath  string `koanf:"post_link_data_path" toml:"post_link_data_path" validate:"required"`
	OutputPath        string `koanf:"output_path" toml:"output_path" validate:"required"`

	// StageTimeout overrides per-kind default stage timeouts when set.
	// Seconds; zero means "use the kind default".
	StageTimeout int `koanf:"stage_timeout" toml:"stage_timeout,omitempty"`

	CustomParams map[string]string `koanf:"custom_params" toml:"custom_params,omitempty"`

	CreatedAt  string `koanf:"created_at" toml:"created_at,omitempty"`
	ModifiedAt string `koanf:"modified_at" toml:"modified_at,omitempty"`
}

// Param returns the value of a well-known project parameter by its
// canonical name (the names that appear in finding fields). Custom
// parameters are consulted last.
func (c *ProjectConfig) Param(name string) (string, bool) {
	switch name {
	case "sourcePath":
		return c.SourcePath, c.SourcePath != ""
	case "generatedCodePath":
		return c.GeneratedCodePath, c.GeneratedCodePath != ""
	case "toolchainPath":
		return c.ToolchainPath, c.ToolchainPath != ""
	case "postLinkDataPath":
		return c.PostLinkDataPath, c.PostLinkDataPath != ""
	case "outputPath":
		return c.OutputPath, c.OutputPath != ""
	}
	v, ok := c.CustomParams[name]
	return v, ok && v != ""
}

// envPrefix is the prefix for environment variable overrides, e.g.
// MBDFLOW_TOOLCHAIN_PATH overrides toolchain_path.
const envPrefix = "MBDFLOW_"

// Load reads a project configuration with layered priority:
// environment variables > the given file > defaults. The file is TOML
// unless it carries a .json extension.
// Missing or blank parameters are not an error here; semantic validation
// reports them as findings so the caller sees the complete list.
func Load(path string) (*ProjectConfig, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, fmt.Errorf("loading project config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading project config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling project config: %w", err)
	}

	cfg.SourcePath = expandHomePath(cfg.SourcePath)
	cfg.GeneratedCodePath = expandHomePath(cfg.GeneratedCodePath)
	cfg.ToolchainPath = expandHomePath(cfg.ToolchainPath)
	cfg.PostLinkDataPath = expandHomePath(cfg.PostLinkDataPath)
	cfg.OutputPath = expandHomePath(cfg.OutputPath)

	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	if filepath.Ext(path) == ".json" {
		return kjson.Parser()
	}
	return toml.Parser()
}

// envTransform converts environment variable names to config keys.
// Example: MBDFLOW_TOOLCHAIN_PATH -> toolchain_path.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
