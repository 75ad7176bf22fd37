package validation

import (
	"fmt"
	"strings"

	"github.com/mbdkits/mbdflow/internal/config"
	"github.com/mbdkits/mbdflow/internal/paths"
	"github.com/mbdkits/mbdflow/internal/workflow"
)

var pathSuggestions = []string{
	"check the spelling of the path",
	"confirm the directory or file has been created",
	"pick the path again in the project configuration",
}

// ValidatePaths checks that every path-typed parameter required by an
// enabled stage points at an existing filesystem object of the expected
// kind. Parameters left unset are skipped here; ValidateParameters already
// reports them. Each parameter is checked once, attributed to the first
// stage that requires it. Synchronous filesystem queries only; nothing is
// written.
func ValidatePaths(w *workflow.Workflow, cfg *config.ProjectConfig, n *paths.Normalizer) []Finding {
	var findings []Finding
	checked := make(map[string]bool)

	for _, s := range w.EnabledStages() {
		for _, param := range workflow.RuleFor(s.Kind).RequiredParams {
			if checked[param] {
				continue
			}
			checked[param] = true

			value, ok := cfg.Param(param)
			if !ok {
				continue
			}
			if f := checkPath(param, value, s.ID, n); f != nil {
				findings = append(findings, *f)
			}
		}
	}
	return findings
}

func checkPath(param, value, stageID string, n *paths.Normalizer) *Finding {
	spec := workflow.ParamSpecs[param]

	resolved, err := n.Normalize(value)
	if err != nil {
		return &Finding{
			Field:       "project." + param,
			Message:     fmt.Sprintf("cannot resolve path %s: %v", value, err),
			Severity:    SeverityError,
			Suggestions: pathSuggestions,
			Stage:       stageID,
		}
	}

	exists, isDir, err := paths.Stat(resolved)
	if err != nil {
		return &Finding{
			Field:       "project." + param,
			Message:     fmt.Sprintf("cannot access path %s: %v", value, err),
			Severity:    SeverityError,
			Suggestions: pathSuggestions,
			Stage:       stageID,
		}
	}
	if !exists {
		return &Finding{
			Field:       "project." + param,
			Message:     fmt.Sprintf("%s does not exist: %s", spec.Label, value),
			Severity:    SeverityError,
			Suggestions: pathSuggestions,
			Stage:       stageID,
		}
	}

	switch spec.Kind {
	case paths.KindDir:
		if !isDir {
			return &Finding{
				Field:       "project." + param,
				Message:     fmt.Sprintf("%s is not a directory: %s", spec.Label, value),
				Severity:    SeverityError,
				Suggestions: pathSuggestions,
				Stage:       stageID,
			}
		}
	case paths.KindFile:
		if isDir {
			return &Finding{
				Field:       "project." + param,
				Message:     fmt.Sprintf("%s is not a file: %s", spec.Label, value),
				Severity:    SeverityError,
				Suggestions: pathSuggestions,
				Stage:       stageID,
			}
		}
		if spec.Ext != "" && !strings.EqualFold(extOf(resolved), spec.Ext) {
			return &Finding{
				Field:       "project." + param,
				Message:     fmt.Sprintf("%s must be a %s file: %s", spec.Label, spec.Ext, value),
				Severity:    SeverityError,
				Suggestions: pathSuggestions,
				Stage:       stageID,
			}
		}
	}
	return nil
}

// extOf returns the extension of the final path component, tolerating both
// separator styles since normalized paths may be in Windows form.
func extOf(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	if i := strings.LastIndexByte(p, '.'); i >= 0 {
		return p[i:]
	}
	return ""
}
