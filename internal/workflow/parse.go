package workflow

import (
	"fmt"

	"github.com/mbdkits/mbdflow/internal/dag"
)

// StructuralError reports a malformed workflow document: a missing required
// field, an unknown dependency reference, or a dependency cycle. Structural
// errors are fatal to loading the workflow; no partially constructed object
// is ever returned alongside one.
type StructuralError struct {
	Field   string // dotted path of the offending element, empty for document-level problems
	Message string
}

func (e *StructuralError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("workflow document: %s: %s", e.Field, e.Message)
	}
	return "workflow document: " + e.Message
}

// Document is the external structured form of a workflow. Unknown extra
// fields in the source document are ignored for forward compatibility;
// pointer fields distinguish absent values from zero values where the
// distinction matters.
type Document struct {
	ID                   string          `yaml:"id" json:"id"`
	Name                 string          `yaml:"name" json:"name"`
	Description          string          `yaml:"description" json:"description"`
	EstimatedTimeMinutes int             `yaml:"estimatedTimeMinutes" json:"estimatedTimeMinutes"`
	Stages               []StageDocument `yaml:"stages" json:"stages"`
}

// StageDocument is the external form of one stage. A timeoutSeconds of 0
// is the same as leaving it out: both mean "use the kind default".
// Negative values are kept as written and reported by validation.
type StageDocument struct {
	ID             string            `yaml:"id" json:"id"`
	Name           string            `yaml:"name" json:"name"`
	Kind           string            `yaml:"kind" json:"kind"`
	Enabled        *bool             `yaml:"enabled" json:"enabled"`
	DependsOn      []string          `yaml:"dependsOn" json:"dependsOn"`
	TimeoutSeconds int               `yaml:"timeoutSeconds" json:"timeoutSeconds"`
	Parameters     map[string]string `yaml:"parameters" json:"parameters"`
}

// FromDocument builds a Workflow from a parsed document, rejecting
// documents that miss required fields. Absent or zero timeouts receive the
// per-kind default. The returned workflow has unique stage ids; dependency
// references and cycles are checked separately by ValidateStructure.
func FromDocument(doc Document) (*Workflow, error) {
	if doc.ID == "" {
		return nil, &StructuralError{Field: "workflow.id", Message: "missing required field"}
	}
	if doc.Name == "" {
		return nil, &StructuralError{Field: "workflow.name", Message: "missing required field"}
	}
	if doc.Stages == nil {
		return nil, &StructuralError{Field: "workflow.stages", Message: "missing required field"}
	}

	w := &Workflow{
		ID:                   doc.ID,
		Name:                 doc.Name,
		Description:          doc.Description,
		EstimatedTimeMinutes: doc.EstimatedTimeMinutes,
		Stages:               make([]Stage, 0, len(doc.Stages)),
	}

	seen := make(map[string]bool, len(doc.Stages))
	for i, sd := range doc.Stages {
		stage, err := stageFromDocument(i, sd)
		if err != nil {
			return nil, err
		}
		if seen[stage.ID] {
			return nil, &StructuralError{
				Field:   fmt.Sprintf("stage.%s.id", stage.ID),
				Message: "duplicate stage id",
			}
		}
		seen[stage.ID] = true
		w.Stages = append(w.Stages, stage)
	}
	return w, nil
}

func stageFromDocument(index int, sd StageDocument) (Stage, error) {
	id := sd.ID
	if id == "" {
		// A stage may be named without a separate id; the name then
		// doubles as the id.
		id = sd.Name
	}
	if id == "" {
		return Stage{}, &StructuralError{
			Field:   fmt.Sprintf("workflow.stages[%d]", index),
			Message: "missing required field: id or name",
		}
	}
	if sd.Enabled == nil {
		return Stage{}, &StructuralError{
			Field:   fmt.Sprintf("stage.%s.enabled", id),
			Message: "missing required field",
		}
	}

	kind := InferKind(id)
	if sd.Kind != "" {
		parsed, ok := ParseKind(sd.Kind)
		if !ok {
			return Stage{}, &StructuralError{
				Field:   fmt.Sprintf("stage.%s.kind", id),
				Message: fmt.Sprintf("unknown stage kind %q", sd.Kind),
			}
		}
		kind = parsed
	}

	timeout := sd.TimeoutSeconds
	if timeout == 0 {
		timeout = RuleFor(kind).DefaultTimeoutSeconds
	}

	name := sd.Name
	if name == "" {
		name = id
	}

	return Stage{
		ID:             id,
		Name:           name,
		Kind:           kind,
		Enabled:        *sd.Enabled,
		DependsOn:      dedupe(sd.DependsOn),
		TimeoutSeconds: timeout,
		Parameters:     sd.Parameters,
	}, nil
}

// dedupe removes repeated dependency ids while preserving order; dependsOn
// is a set.
func dedupe(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ValidateStructure checks the stage graph of a loaded workflow: every
// dependsOn entry must reference an existing stage and the graph must be
// acyclic. The first violation is returned as a StructuralError; use the
// validation package when all findings are wanted at once.
func ValidateStructure(w *Workflow) error {
	g, err := dag.New(w.Nodes())
	if err != nil {
		return &StructuralError{Message: err.Error()}
	}
	if refs := g.UnknownRefs(); len(refs) > 0 {
		r := refs[0]
		return &StructuralError{
			Field:   fmt.Sprintf("stage.%s.dependsOn", r.From),
			Message: fmt.Sprintf("unknown dependency reference %q", r.To),
		}
	}
	if cycles := g.Cycles(); len(cycles) > 0 {
		return &StructuralError{
			Message: fmt.Sprintf("dependency cycle: %s", joinCycle(cycles[0])),
		}
	}
	return nil
}

func joinCycle(cycle []string) string {
	out := ""
	for i, id := range cycle {
		if i > 0 {
			out += " -> "
		}
		out += id
	}
	if len(cycle) > 0 {
		out += " -> " + cycle[0]
	}
	return out
}
