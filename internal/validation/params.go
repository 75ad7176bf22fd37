package validation

import (
	"fmt"

	"github.com/mbdkits/mbdflow/internal/config"
	"github.com/mbdkits/mbdflow/internal/workflow"
)

// ShortTimeoutSeconds is the threshold below which a stage timeout is
// reported as suspiciously short. Advisory only.
const ShortTimeoutSeconds = 10

// ValidateParameters checks that every enabled stage has its required
// project parameters set and a positive timeout. A project parameter
// required by several enabled stages is reported once, attributed to the
// first stage that needs it in workflow order. Read-only and idempotent.
func ValidateParameters(w *workflow.Workflow, cfg *config.ProjectConfig) []Finding {
	var findings []Finding
	reported := make(map[string]bool)

	if cfg.StageTimeout < 0 {
		findings = append(findings, Finding{
			Field:       "project.stageTimeout",
			Message:     fmt.Sprintf("stage timeout override must be a positive number of seconds, got %d", cfg.StageTimeout),
			Severity:    SeverityError,
			Suggestions: []string{"set stage_timeout to a positive value, or 0 to use per-stage defaults"},
		})
	}

	for _, s := range w.EnabledStages() {
		rule := workflow.RuleFor(s.Kind)
		for _, param := range rule.RequiredParams {
			if reported[param] {
				continue
			}
			if _, ok := cfg.Param(param); ok {
				continue
			}
			reported[param] = true
			spec := workflow.ParamSpecs[param]
			findings = append(findings, Finding{
				Field:       "project." + param,
				Message:     fmt.Sprintf("required parameter %q (%s) is not set", param, spec.Label),
				Severity:    SeverityError,
				Suggestions: []string{fmt.Sprintf("set the %s in the project configuration", spec.Label)},
				Stage:       s.ID,
			})
		}

		findings = append(findings, validateTimeout(s, cfg)...)
	}
	return findings
}

func validateTimeout(s workflow.Stage, cfg *config.ProjectConfig) []Finding {
	effective := s.TimeoutSeconds
	if cfg.StageTimeout > 0 {
		effective = cfg.StageTimeout
	}

	if effective <= 0 {
		return []Finding{{
			Field:       fmt.Sprintf("stage.%s.timeout", s.ID),
			Message:     fmt.Sprintf("stage %q timeout must be a positive number of seconds, got %d", s.ID, effective),
			Severity:    SeverityError,
			Suggestions: []string{"set a positive timeoutSeconds for the stage, or remove it to use the kind default"},
			Stage:       s.ID,
		}}
	}
	if effective < ShortTimeoutSeconds {
		return []Finding{{
			Field:       fmt.Sprintf("stage.%s.timeout", s.ID),
			Message:     fmt.Sprintf("stage %q timeout of %ds is unusually short", s.ID, effective),
			Severity:    SeverityWarning,
			Suggestions: []string{fmt.Sprintf("consider a timeout of at least %ds", ShortTimeoutSeconds)},
			Stage:       s.ID,
		}}
	}
	return nil
}
