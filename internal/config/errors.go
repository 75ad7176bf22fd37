package config

import "strings"

// ConfigError is the base error for configuration load/save problems. It
// carries actionable suggestions that CLI surfaces render under the
// message.
type ConfigError struct {
	Message     string
	Suggestions []string
}

func (e *ConfigError) Error() string {
	if len(e.Suggestions) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteString("\n\nsuggestions:")
	for _, s := range e.Suggestions {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

// SaveError reports a failure to persist a project configuration.
func SaveError(reason string) *ConfigError {
	return &ConfigError{
		Message: "cannot save configuration: " + reason,
		Suggestions: []string{
			"check permissions on the configuration directory",
			"make sure there is free disk space",
		},
	}
}

// LoadError reports a failure to load a project configuration.
func LoadError(reason string, suggestions ...string) *ConfigError {
	if len(suggestions) == 0 {
		suggestions = []string{
			"check that the configuration file exists",
			"verify the file format is valid TOML",
		}
	}
	return &ConfigError{
		Message:     "cannot load configuration: " + reason,
		Suggestions: suggestions,
	}
}

// ValidationFailedError reports that a configuration failed required-field
// validation.
func ValidationFailedError(reason string) *ConfigError {
	return &ConfigError{
		Message: "configuration validation failed: " + reason,
		Suggestions: []string{
			"check that all required fields are filled in",
			"make sure paths are well-formed",
		},
	}
}
