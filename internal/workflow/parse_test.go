package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func validDocument() Document {
	return Document{
		ID:   "nightly",
		Name: "Nightly build",
		Stages: []StageDocument{
			{ID: "matlab_gen", Enabled: boolPtr(true)},
			{ID: "iar_compile", Enabled: boolPtr(true), DependsOn: []string{"matlab_gen"}},
		},
	}
}

func TestFromDocument_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate    func(*Document)
		wantField string
	}{
		"missing workflow id": {
			mutate:    func(d *Document) { d.ID = "" },
			wantField: "workflow.id",
		},
		"missing workflow name": {
			mutate:    func(d *Document) { d.Name = "" },
			wantField: "workflow.name",
		},
		"missing stages": {
			mutate:    func(d *Document) { d.Stages = nil },
			wantField: "workflow.stages",
		},
		"stage missing id and name": {
			mutate: func(d *Document) {
				d.Stages[0].ID = ""
				d.Stages[0].Name = ""
			},
			wantField: "workflow.stages[0]",
		},
		"stage missing enabled": {
			mutate:    func(d *Document) { d.Stages[1].Enabled = nil },
			wantField: "stage.iar_compile.enabled",
		},
		"duplicate stage id": {
			mutate:    func(d *Document) { d.Stages[1].ID = "matlab_gen" },
			wantField: "stage.matlab_gen.id",
		},
		"unknown stage kind": {
			mutate:    func(d *Document) { d.Stages[0].Kind = "quantum" },
			wantField: "stage.matlab_gen.kind",
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc := validDocument()
			tt.mutate(&doc)

			w, err := FromDocument(doc)
			assert.Nil(t, w)
			var serr *StructuralError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.wantField, serr.Field)
		})
	}
}

func TestFromDocument_Defaults(t *testing.T) {
	t.Parallel()

	doc := Document{
		ID:   "wf",
		Name: "wf",
		Stages: []StageDocument{
			{ID: "matlab_gen", Enabled: boolPtr(true)},
			{ID: "iar_compile", Enabled: boolPtr(false), TimeoutSeconds: 90},
			{Name: "custom_step", Enabled: boolPtr(true)},
		},
	}

	w, err := FromDocument(doc)
	require.NoError(t, err)
	require.Len(t, w.Stages, 3)

	gen := w.Stages[0]
	assert.Equal(t, KindGeneration, gen.Kind)
	assert.Equal(t, 1800, gen.TimeoutSeconds, "absent timeout gets the kind default")

	compile := w.Stages[1]
	assert.Equal(t, KindCompilation, compile.Kind)
	assert.Equal(t, 90, compile.TimeoutSeconds)
	assert.False(t, compile.Enabled)

	custom := w.Stages[2]
	assert.Equal(t, "custom_step", custom.ID, "name doubles as id")
	assert.Equal(t, KindGeneric, custom.Kind)
	assert.Equal(t, 300, custom.TimeoutSeconds)
}

func TestFromDocument_TimeoutContract(t *testing.T) {
	t.Parallel()

	// Zero means "use the kind default", same as leaving timeoutSeconds
	// out; negative values are kept for validation to report.
	doc := Document{
		ID:   "wf",
		Name: "wf",
		Stages: []StageDocument{
			{ID: "matlab_gen", Enabled: boolPtr(true), TimeoutSeconds: 0},
			{ID: "iar_compile", Enabled: boolPtr(true), TimeoutSeconds: -5},
		},
	}

	w, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, 1800, w.Stages[0].TimeoutSeconds)
	assert.Equal(t, -5, w.Stages[1].TimeoutSeconds)
}

func TestFromDocument_ExplicitKind(t *testing.T) {
	t.Parallel()

	doc := Document{
		ID:   "wf",
		Name: "wf",
		Stages: []StageDocument{
			{ID: "build_step", Kind: "compilation", Enabled: boolPtr(true)},
		},
	}

	w, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, KindCompilation, w.Stages[0].Kind)
	assert.Equal(t, 1200, w.Stages[0].TimeoutSeconds)
}

func TestFromDocument_DependsOnIsASet(t *testing.T) {
	t.Parallel()

	doc := Document{
		ID:   "wf",
		Name: "wf",
		Stages: []StageDocument{
			{ID: "a", Enabled: boolPtr(true)},
			{ID: "b", Enabled: boolPtr(true), DependsOn: []string{"a", "a", "a"}},
		},
	}

	w, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, w.Stages[1].DependsOn)
}

func TestValidateStructure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stages  []Stage
		wantErr string
	}{
		"valid chain": {
			stages: []Stage{
				{ID: "a", Enabled: true},
				{ID: "b", Enabled: true, DependsOn: []string{"a"}},
			},
		},
		"unknown reference": {
			stages: []Stage{
				{ID: "a", Enabled: true, DependsOn: []string{"ghost"}},
			},
			wantErr: `unknown dependency reference "ghost"`,
		},
		"cycle": {
			stages: []Stage{
				{ID: "a", Enabled: true, DependsOn: []string{"b"}},
				{ID: "b", Enabled: true, DependsOn: []string{"a"}},
			},
			wantErr: "dependency cycle: a -> b -> a",
		},
		"self loop": {
			stages: []Stage{
				{ID: "a", Enabled: true, DependsOn: []string{"a"}},
			},
			wantErr: "dependency cycle: a -> a",
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStructure(&Workflow{ID: "wf", Name: "wf", Stages: tt.stages})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWorkflow_EnabledStages(t *testing.T) {
	t.Parallel()

	w := &Workflow{Stages: []Stage{
		{ID: "a", Enabled: true},
		{ID: "b", Enabled: false},
		{ID: "c", Enabled: true},
	}}

	var ids []string
	for _, s := range w.EnabledStages() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)
	assert.Empty(t, (&Workflow{}).EnabledStages())
}

func TestWorkflow_Runnable(t *testing.T) {
	t.Parallel()

	w := &Workflow{Stages: []Stage{{ID: "a", Enabled: false}}}
	assert.False(t, w.Runnable())
	w.Stages[0].Enabled = true
	assert.True(t, w.Runnable())
}

func TestWorkflow_Clone(t *testing.T) {
	t.Parallel()

	w := &Workflow{
		ID: "wf",
		Stages: []Stage{
			{ID: "a", Enabled: true, DependsOn: []string{"x"}, Parameters: map[string]string{"k": "v"}},
		},
	}
	c := w.Clone()
	c.Stages[0].Enabled = false
	c.Stages[0].DependsOn[0] = "changed"
	c.Stages[0].Parameters["k"] = "changed"

	assert.True(t, w.Stages[0].Enabled)
	assert.Equal(t, "x", w.Stages[0].DependsOn[0])
	assert.Equal(t, "v", w.Stages[0].Parameters["k"])
}
