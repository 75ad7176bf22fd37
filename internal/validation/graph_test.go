package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbdkits/mbdflow/internal/workflow"
)

func wf(stages ...workflow.Stage) *workflow.Workflow {
	return &workflow.Workflow{ID: "wf", Name: "wf", Stages: stages}
}

func TestValidateGraph_CleanGraph(t *testing.T) {
	t.Parallel()

	w := wf(
		workflow.Stage{ID: "matlab_gen", Enabled: true},
		workflow.Stage{ID: "file_process", Enabled: true, DependsOn: []string{"matlab_gen"}},
		workflow.Stage{ID: "iar_compile", Enabled: false, DependsOn: []string{"file_process"}},
	)
	assert.Empty(t, ValidateGraph(w))
}

func TestValidateGraph_UnknownReference(t *testing.T) {
	t.Parallel()

	w := wf(
		workflow.Stage{ID: "iar_compile", Enabled: true, DependsOn: []string{"missing_stage"}},
	)

	findings := ValidateGraph(w)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "stage.iar_compile.dependsOn", f.Field)
	assert.Contains(t, f.Message, `"iar_compile"`)
	assert.Contains(t, f.Message, `"missing_stage"`)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, []string{"remove or correct the dependency reference"}, f.Suggestions)
	assert.Equal(t, "iar_compile", f.Stage)
}

func TestValidateGraph_CycleNamesAllStages(t *testing.T) {
	t.Parallel()

	w := wf(
		workflow.Stage{ID: "a", Enabled: true, DependsOn: []string{"c"}},
		workflow.Stage{ID: "b", Enabled: true, DependsOn: []string{"a"}},
		workflow.Stage{ID: "c", Enabled: true, DependsOn: []string{"b"}},
	)

	findings := ValidateGraph(w)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Contains(t, f.Message, "a")
	assert.Contains(t, f.Message, "b")
	assert.Contains(t, f.Message, "c")
	assert.Equal(t, "a -> c -> b -> a", f.Message[len("dependency cycle: "):])
}

func TestValidateGraph_CycleRunsOverDisabledStages(t *testing.T) {
	t.Parallel()

	// Cycle detection covers the full declared graph regardless of
	// enablement.
	w := wf(
		workflow.Stage{ID: "a", Enabled: false, DependsOn: []string{"b"}},
		workflow.Stage{ID: "b", Enabled: false, DependsOn: []string{"a"}},
	)

	findings := ValidateGraph(w)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "dependency cycle")
}

func TestValidateGraph_ReportsBothRefAndCycleFindings(t *testing.T) {
	t.Parallel()

	w := wf(
		workflow.Stage{ID: "a", Enabled: true, DependsOn: []string{"ghost", "b"}},
		workflow.Stage{ID: "b", Enabled: true, DependsOn: []string{"a"}},
	)

	findings := ValidateGraph(w)
	require.Len(t, findings, 2)
	assert.Equal(t, "stage.a.dependsOn", findings[0].Field)
	assert.Contains(t, findings[1].Message, "dependency cycle")
}

func TestValidateEnablement(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stages       []workflow.Stage
		wantFindings int
	}{
		"all enabled": {
			stages: []workflow.Stage{
				{ID: "a", Enabled: true},
				{ID: "b", Enabled: true, DependsOn: []string{"a"}},
			},
		},
		"disabled stage may depend on disabled stage": {
			stages: []workflow.Stage{
				{ID: "a", Enabled: false},
				{ID: "b", Enabled: false, DependsOn: []string{"a"}},
			},
		},
		"enabled depends on disabled": {
			stages: []workflow.Stage{
				{ID: "a", Enabled: false},
				{ID: "b", Enabled: true, DependsOn: []string{"a"}},
			},
			wantFindings: 1,
		},
		"two violations reported separately": {
			stages: []workflow.Stage{
				{ID: "a", Enabled: false},
				{ID: "b", Enabled: true, DependsOn: []string{"a"}},
				{ID: "c", Enabled: true, DependsOn: []string{"a"}},
			},
			wantFindings: 2,
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, ValidateEnablement(wf(tt.stages...)), tt.wantFindings)
		})
	}
}
