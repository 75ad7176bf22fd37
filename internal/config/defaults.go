package config

// Defaults returns the default values applied before any config file or
// environment override is loaded.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"name":          "",
		"description":   "",
		"stage_timeout": 0,
	}
}
