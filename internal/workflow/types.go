// Package workflow defines the build pipeline workflow model: ordered
// stages with dependency edges, stage-kind rule tables, built-in templates,
// and loading of user-supplied workflow documents.
package workflow

import "github.com/mbdkits/mbdflow/internal/dag"

// Stage is one step of the build pipeline.
type Stage struct {
	ID             string
	Name           string
	Kind           Kind
	Enabled        bool
	DependsOn      []string
	TimeoutSeconds int
	Parameters     map[string]string
}

// Workflow is a named, ordered collection of stages. Instances are owned
// by whichever component loaded them and are read-only to validation.
type Workflow struct {
	ID                   string
	Name                 string
	Description          string
	EstimatedTimeMinutes int
	Stages               []Stage
	// BuiltIn marks workflows shipped with the tool as opposed to
	// user-supplied documents. Both behave identically once loaded.
	BuiltIn bool
}

// Stage returns the stage with the given id.
func (w *Workflow) Stage(id string) (*Stage, bool) {
	for i := range w.Stages {
		if w.Stages[i].ID == id {
			return &w.Stages[i], true
		}
	}
	return nil, false
}

// EnabledStages returns the enabled stages in workflow order.
func (w *Workflow) EnabledStages() []Stage {
	var out []Stage
	for _, s := range w.Stages {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Runnable reports whether at least one stage is enabled.
func (w *Workflow) Runnable() bool {
	for _, s := range w.Stages {
		if s.Enabled {
			return true
		}
	}
	return false
}

// Nodes returns the stage graph as dag nodes in workflow order.
func (w *Workflow) Nodes() []dag.Node {
	nodes := make([]dag.Node, len(w.Stages))
	for i, s := range w.Stages {
		nodes[i] = dag.Node{ID: s.ID, DependsOn: s.DependsOn}
	}
	return nodes
}

// Clone returns a deep copy so callers can toggle stages without touching
// the shared template.
func (w *Workflow) Clone() *Workflow {
	out := *w
	out.Stages = make([]Stage, len(w.Stages))
	for i, s := range w.Stages {
		cs := s
		cs.DependsOn = append([]string(nil), s.DependsOn...)
		if s.Parameters != nil {
			cs.Parameters = make(map[string]string, len(s.Parameters))
			for k, v := range s.Parameters {
				cs.Parameters[k] = v
			}
		}
		out.Stages[i] = cs
	}
	return &out
}
