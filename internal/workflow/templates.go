package workflow

// Built-in workflow templates shipped with the tool. Callers receive
// copies; the shipped definitions are never mutated. Stage dependencies
// are not spelled out here: they are derived from the kind rule table, so
// adding a stage kind rewires the templates without touching them.
var templates = []Workflow{
	{
		ID:                   "full_build",
		Name:                 "Full build",
		Description:          "Generate code, stage files, compile, process calibration data, and package outputs",
		EstimatedTimeMinutes: 65,
		BuiltIn:              true,
		Stages: []Stage{
			{ID: "matlab_gen", Name: "Code generation", Kind: KindGeneration, Enabled: true, TimeoutSeconds: 1800},
			{ID: "file_process", Name: "File staging", Kind: KindStaging, Enabled: true, TimeoutSeconds: 300},
			{ID: "iar_compile", Name: "IAR compilation", Kind: KindCompilation, Enabled: true, TimeoutSeconds: 1200},
			{ID: "a2l_process", Name: "A2L processing", Kind: KindPostLink, Enabled: true, TimeoutSeconds: 600},
			{ID: "package", Name: "Packaging", Kind: KindPackaging, Enabled: true, TimeoutSeconds: 60},
		},
	},
	{
		ID:                   "codegen_only",
		Name:                 "Code generation only",
		Description:          "Generate code from the model tree without compiling",
		EstimatedTimeMinutes: 30,
		BuiltIn:              true,
		Stages: []Stage{
			{ID: "matlab_gen", Name: "Code generation", Kind: KindGeneration, Enabled: true, TimeoutSeconds: 1800},
		},
	},
	{
		ID:                   "compile_package",
		Name:                 "Compile and package",
		Description:          "Compile previously generated code and package outputs",
		EstimatedTimeMinutes: 35,
		BuiltIn:              true,
		Stages: []Stage{
			{ID: "iar_compile", Name: "IAR compilation", Kind: KindCompilation, Enabled: true, TimeoutSeconds: 1200},
			{ID: "a2l_process", Name: "A2L processing", Kind: KindPostLink, Enabled: true, TimeoutSeconds: 600},
			{ID: "package", Name: "Packaging", Kind: KindPackaging, Enabled: true, TimeoutSeconds: 60},
		},
	},
}

func init() {
	for i := range templates {
		applyDefaultDependencies(&templates[i])
	}
}

// applyDefaultDependencies fills in stage dependencies from the kind rule
// table: a stage without explicit dependencies depends on every stage of
// its kind's default dependency kinds that is present in the workflow.
// Absent kinds contribute nothing, so a partial pipeline such as
// compile_package starts at its first present stage.
func applyDefaultDependencies(w *Workflow) {
	for i := range w.Stages {
		s := &w.Stages[i]
		if s.DependsOn != nil {
			continue
		}
		for _, kind := range RuleFor(s.Kind).DefaultDependsOn {
			for _, other := range w.Stages {
				if other.Kind == kind {
					s.DependsOn = append(s.DependsOn, other.ID)
				}
			}
		}
	}
}

// Templates returns copies of the built-in workflow templates in display
// order.
func Templates() []*Workflow {
	out := make([]*Workflow, len(templates))
	for i := range templates {
		out[i] = templates[i].Clone()
	}
	return out
}

// TemplateByID returns a copy of the built-in template with the given id.
func TemplateByID(id string) (*Workflow, bool) {
	for i := range templates {
		if templates[i].ID == id {
			return templates[i].Clone(), true
		}
	}
	return nil, false
}
