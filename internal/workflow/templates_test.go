package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_StructurallyValid(t *testing.T) {
	t.Parallel()

	all := Templates()
	require.NotEmpty(t, all)

	for _, w := range all {
		assert.NoError(t, ValidateStructure(w), "template %s", w.ID)
		assert.True(t, w.BuiltIn, "template %s", w.ID)
		assert.True(t, w.Runnable(), "template %s", w.ID)
	}
}

func TestTemplateByID(t *testing.T) {
	t.Parallel()

	w, ok := TemplateByID("full_build")
	require.True(t, ok)
	assert.Len(t, w.Stages, 5)

	_, ok = TemplateByID("nope")
	assert.False(t, ok)
}

func TestTemplateByID_ReturnsCopy(t *testing.T) {
	t.Parallel()

	first, ok := TemplateByID("full_build")
	require.True(t, ok)
	first.Stages[0].Enabled = false
	first.Stages[1].DependsOn[0] = "changed"

	second, ok := TemplateByID("full_build")
	require.True(t, ok)
	assert.True(t, second.Stages[0].Enabled)
	assert.Equal(t, "matlab_gen", second.Stages[1].DependsOn[0])
}

func TestFullBuildTemplate_DependenciesDerivedFromKindRules(t *testing.T) {
	t.Parallel()

	w, ok := TemplateByID("full_build")
	require.True(t, ok)

	deps := make(map[string][]string, len(w.Stages))
	for _, s := range w.Stages {
		deps[s.ID] = s.DependsOn
	}
	assert.Empty(t, deps["matlab_gen"])
	assert.Equal(t, []string{"matlab_gen"}, deps["file_process"])
	assert.Equal(t, []string{"file_process"}, deps["iar_compile"])
	assert.Equal(t, []string{"iar_compile"}, deps["a2l_process"])
	assert.Equal(t, []string{"iar_compile", "a2l_process"}, deps["package"])
}

func TestTemplates_DependenciesFollowKindRules(t *testing.T) {
	t.Parallel()

	// Every template stage must depend on exactly the stages whose kind the
	// rule table names, restricted to kinds present in that template.
	for _, w := range Templates() {
		kindToIDs := make(map[Kind][]string)
		for _, s := range w.Stages {
			kindToIDs[s.Kind] = append(kindToIDs[s.Kind], s.ID)
		}
		for _, s := range w.Stages {
			var want []string
			for _, kind := range RuleFor(s.Kind).DefaultDependsOn {
				want = append(want, kindToIDs[kind]...)
			}
			assert.Equal(t, want, s.DependsOn, "template %s stage %s", w.ID, s.ID)
		}
	}
}

func TestCompilePackageTemplate_SkipsAbsentKinds(t *testing.T) {
	t.Parallel()

	// compile_package has no staging stage, so compilation ends up with no
	// dependencies instead of a dangling reference.
	w, ok := TemplateByID("compile_package")
	require.True(t, ok)

	compile, ok := w.Stage("iar_compile")
	require.True(t, ok)
	assert.Empty(t, compile.DependsOn)
}

func TestRuleFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		kind       Kind
		wantParams []string
		wantDeps   []Kind
	}{
		"generation": {
			kind:       KindGeneration,
			wantParams: []string{"sourcePath", "generatedCodePath"},
		},
		"compilation": {
			kind:       KindCompilation,
			wantParams: []string{"toolchainPath"},
			wantDeps:   []Kind{KindStaging},
		},
		"packaging": {
			kind:       KindPackaging,
			wantParams: []string{"outputPath"},
			wantDeps:   []Kind{KindCompilation, KindPostLink},
		},
		"unknown kind gets generic rule": {
			kind: Kind("mystery"),
		},
	}

	for name, tt := range tests {

		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rule := RuleFor(tt.kind)
			assert.Equal(t, tt.wantParams, rule.RequiredParams)
			assert.Equal(t, tt.wantDeps, rule.DefaultDependsOn)
			assert.Positive(t, rule.DefaultTimeoutSeconds)
		})
	}
}

func TestParamSpecs_CoverKindRules(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindGeneration, KindStaging, KindCompilation, KindPostLink, KindPackaging} {
		for _, param := range RuleFor(kind).RequiredParams {
			_, ok := ParamSpecs[param]
			assert.True(t, ok, "kind %s requires unspecified parameter %s", kind, param)
		}
	}
}
