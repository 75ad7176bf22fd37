package validation

import (
	"fmt"
	"strings"

	"github.com/mbdkits/mbdflow/internal/dag"
	"github.com/mbdkits/mbdflow/internal/workflow"
)

// ValidateGraph checks structural soundness of the stage graph: every
// dependsOn entry must reference an existing stage, and the declared graph
// must be acyclic. Cycle detection runs over the full declared graph
// regardless of stage enablement.
func ValidateGraph(w *workflow.Workflow) []Finding {
	var findings []Finding

	g, err := dag.New(w.Nodes())
	if err != nil {
		return []Finding{{
			Field:       "workflow.stages",
			Message:     err.Error(),
			Severity:    SeverityError,
			Suggestions: []string{"give every stage a unique id"},
		}}
	}

	for _, ref := range g.UnknownRefs() {
		findings = append(findings, Finding{
			Field:       fmt.Sprintf("stage.%s.dependsOn", ref.From),
			Message:     fmt.Sprintf("stage %q depends on unknown stage %q", ref.From, ref.To),
			Severity:    SeverityError,
			Suggestions: []string{"remove or correct the dependency reference"},
			Stage:       ref.From,
		})
	}

	for _, cycle := range g.Cycles() {
		findings = append(findings, Finding{
			Field:       "workflow.stages",
			Message:     fmt.Sprintf("dependency cycle: %s", formatCycle(cycle)),
			Severity:    SeverityError,
			Suggestions: []string{"break the cycle by removing one dependency edge"},
			Stage:       cycle[0],
		})
	}

	return findings
}

// ValidateEnablement checks that every enabled stage depends only on
// enabled stages. Assumes the graph already passed ValidateGraph; running
// this on a cyclic graph is undefined and the orchestrator never does.
func ValidateEnablement(w *workflow.Workflow) []Finding {
	var findings []Finding
	for _, s := range w.EnabledStages() {
		for _, depID := range s.DependsOn {
			dep, ok := w.Stage(depID)
			if !ok || dep.Enabled {
				continue
			}
			findings = append(findings, Finding{
				Field:    fmt.Sprintf("stage.%s.dependsOn", s.ID),
				Message:  fmt.Sprintf("enabled stage %q depends on disabled stage %q", s.ID, depID),
				Severity: SeverityError,
				Suggestions: []string{
					fmt.Sprintf("enable stage %q", depID),
					fmt.Sprintf("disable stage %q", s.ID),
				},
				Stage: s.ID,
			})
		}
	}
	return findings
}

// formatCycle renders a cycle as "a -> b -> a".
func formatCycle(cycle []string) string {
	return strings.Join(append(append([]string{}, cycle...), cycle[0]), " -> ")
}
