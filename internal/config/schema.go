package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeString ConfigValueType = iota
	TypeInt
	TypePath
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypePath:
		return "path"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known project configuration key with its
// expected type and help text.
type ConfigKeySchema struct {
	Path        string          // key as stored in TOML (e.g. "toolchain_path")
	Param       string          // canonical parameter name used in finding fields, empty for non-parameters
	Type        ConfigValueType // expected value type for validation
	Description string          // human-readable description for help text
}

// KnownKeys is the registry of all known project configuration keys. The
// parameter names form a closed, versioned set consumed by validation.
var KnownKeys = map[string]ConfigKeySchema{
	"name": {
		Path:        "name",
		Type:        TypeString,
		Description: "Project name",
	},
	"description": {
		Path:        "description",
		Type:        TypeString,
		Description: "Project description",
	},
	"source_path": {
		Path:        "source_path",
		Param:       "sourcePath",
		Type:        TypePath,
		Description: "Source model tree directory",
	},
	"generated_code_path": {
		Path:        "generated_code_path",
		Param:       "generatedCodePath",
		Type:        TypePath,
		Description: "Directory receiving generated code",
	},
	"toolchain_path": {
		Path:        "toolchain_path",
		Param:       "toolchainPath",
		Type:        TypePath,
		Description: "Toolchain install directory (IAR Embedded Workbench)",
	},
	"post_link_data_path": {
		Path:        "post_link_data_path",
		Param:       "postLinkDataPath",
		Type:        TypePath,
		Description: "Post-link calibration data file (.a2l)",
	},
	"output_path": {
		Path:        "output_path",
		Param:       "outputPath",
		Type:        TypePath,
		Description: "Directory receiving packaged build outputs",
	},
	"stage_timeout": {
		Path:        "stage_timeout",
		Type:        TypeInt,
		Description: "Per-stage timeout override in seconds (0 uses kind defaults)",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ValidateValue validates a raw string value against the schema for a key
// and returns the parsed value.
func ValidateValue(key, value string) (interface{}, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return nil, err
	}
	switch schema.Type {
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %q", value)
		}
		return n, nil
	case TypePath:
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("path value must not be blank")
		}
		return value, nil
	default:
		return value, nil
	}
}

// Set applies a validated value to the matching ProjectConfig field.
func (c *ProjectConfig) Set(key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "name":
		c.Name = parsed.(string)
	case "description":
		c.Description = parsed.(string)
	case "source_path":
		c.SourcePath = parsed.(string)
	case "generated_code_path":
		c.GeneratedCodePath = parsed.(string)
	case "toolchain_path":
		c.ToolchainPath = parsed.(string)
	case "post_link_data_path":
		c.PostLinkDataPath = parsed.(string)
	case "output_path":
		c.OutputPath = parsed.(string)
	case "stage_timeout":
		c.StageTimeout = parsed.(int)
	default:
		return ErrUnknownKey{Key: key}
	}
	return nil
}
