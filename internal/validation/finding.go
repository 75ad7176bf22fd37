// Package validation implements the workflow validation engine: structural
// checks over the stage dependency graph, semantic checks of project
// parameters and filesystem paths, and the orchestrator that merges their
// findings into one result.
package validation

// Severity classifies how a finding affects execution.
type Severity string

const (
	// SeverityError blocks execution of the build pipeline.
	SeverityError Severity = "error"
	// SeverityWarning is reported but does not block.
	SeverityWarning Severity = "warning"
	// SeverityInfo is advisory only.
	SeverityInfo Severity = "info"
)

// Finding is one reported validation problem.
type Finding struct {
	// Field is the dotted path of the offending element, e.g.
	// "stage.iar_compile.dependsOn" or "project.toolchainPath".
	Field       string
	Message     string
	Severity    Severity
	Suggestions []string
	// Stage is the originating stage id, when the finding belongs to one.
	Stage string
}

// Result is the aggregate outcome of one validation run. It is constructed
// fresh per call and must not be mutated afterwards; re-run validation
// after any configuration change instead of patching a stale result.
type Result struct {
	findings []Finding
}

// NewResult wraps findings in a Result.
func NewResult(findings []Finding) *Result {
	return &Result{findings: findings}
}

// Findings returns the collected findings in encounter order.
func (r *Result) Findings() []Finding {
	return r.findings
}

// IsValid reports whether no error-severity finding exists. Execution must
// be refused while this is false.
func (r *Result) IsValid() bool {
	return r.ErrorCount() == 0
}

// ErrorCount returns the number of error-severity findings.
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings.
func (r *Result) WarningCount() int {
	n := 0
	for _, f := range r.findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

func hasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
