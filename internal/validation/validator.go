package validation

import (
	"github.com/mbdkits/mbdflow/internal/config"
	"github.com/mbdkits/mbdflow/internal/paths"
	"github.com/mbdkits/mbdflow/internal/workflow"
)

// Validator runs the validation pipeline over a workflow and a project
// configuration. It holds no cross-call state; concurrent calls with any
// inputs are safe.
type Validator struct {
	// Normalizer resolves path parameters before existence checks.
	Normalizer *paths.Normalizer
}

// New returns a Validator bound to the process environment.
func New() *Validator {
	return &Validator{Normalizer: paths.NewNormalizer()}
}

// Validate checks a workflow against a project configuration and returns
// every finding in one result: graph findings first, then enablement,
// parameter, and path findings in workflow stage order.
//
// Structural errors (unknown references, cycles) short-circuit the
// semantic checks: a broken graph yields only the structural findings, and
// no parameter or path finding is fabricated for stages behind the broken
// edges. The result is a pure function of the two inputs, excluding the
// transient truth of filesystem existence.
func (v *Validator) Validate(w *workflow.Workflow, cfg *config.ProjectConfig) *Result {
	findings := ValidateGraph(w)
	if hasErrors(findings) {
		return NewResult(findings)
	}

	if !w.Runnable() {
		findings = append(findings, Finding{
			Field:       "workflow.stages",
			Message:     "no stages are enabled",
			Severity:    SeverityError,
			Suggestions: []string{"enable at least one stage"},
		})
	}

	findings = append(findings, ValidateEnablement(w)...)
	findings = append(findings, ValidateParameters(w, cfg)...)
	findings = append(findings, ValidatePaths(w, cfg, v.Normalizer)...)
	return NewResult(findings)
}
