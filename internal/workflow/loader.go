package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a user-supplied workflow document from a JSON or YAML
// file and validates it structurally. The returned workflow is ready for
// semantic validation against a project configuration.
func LoadFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file: %w", err)
	}

	var doc Document
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing workflow file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing workflow file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("loading workflow file %s: unsupported extension %q (expected .json, .yaml, or .yml)", path, ext)
	}

	w, err := FromDocument(doc)
	if err != nil {
		return nil, err
	}
	if err := ValidateStructure(w); err != nil {
		return nil, err
	}
	return w, nil
}
