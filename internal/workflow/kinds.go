package workflow

import "github.com/mbdkits/mbdflow/internal/paths"

// Kind classifies a stage by the pipeline step it performs. Validation
// rules are keyed by kind, so adding a stage kind is a data change in the
// tables below rather than new branching.
type Kind string

const (
	// KindGeneration generates source code from the model tree.
	KindGeneration Kind = "generation"
	// KindStaging stages generated files for compilation.
	KindStaging Kind = "staging"
	// KindCompilation compiles the staged sources with the installed toolchain.
	KindCompilation Kind = "compilation"
	// KindPostLink processes calibration data against the linked image.
	KindPostLink Kind = "postlink"
	// KindPackaging packages build outputs for delivery.
	KindPackaging Kind = "packaging"
	// KindGeneric is used for custom stages with no built-in rules.
	KindGeneric Kind = "generic"
)

// ParamSpec describes one well-known project configuration parameter.
type ParamSpec struct {
	Name  string     // parameter name as referenced in finding fields
	Label string     // human-readable description for messages
	Kind  paths.Kind // expected filesystem kind
	Ext   string     // required file extension (with dot), empty for none
}

// ParamSpecs is the closed set of path-typed project parameters consumed
// by validation, keyed by parameter name.
var ParamSpecs = map[string]ParamSpec{
	"sourcePath":        {Name: "sourcePath", Label: "source model tree", Kind: paths.KindDir},
	"generatedCodePath": {Name: "generatedCodePath", Label: "generated code directory", Kind: paths.KindDir},
	"toolchainPath":     {Name: "toolchainPath", Label: "toolchain install directory", Kind: paths.KindDir},
	"postLinkDataPath":  {Name: "postLinkDataPath", Label: "post-link data file", Kind: paths.KindFile, Ext: ".a2l"},
	"outputPath":        {Name: "outputPath", Label: "output directory", Kind: paths.KindDir},
}

// KindRule carries the per-kind validation data: which project parameters
// the stage needs, which kinds it depends on by default, and its default
// timeout.
type KindRule struct {
	RequiredParams        []string
	DefaultDependsOn      []Kind
	DefaultTimeoutSeconds int
}

// kindRules is the declarative rule table for built-in stage kinds.
var kindRules = map[Kind]KindRule{
	KindGeneration: {
		RequiredParams:        []string{"sourcePath", "generatedCodePath"},
		DefaultTimeoutSeconds: 1800,
	},
	KindStaging: {
		RequiredParams:        []string{"generatedCodePath"},
		DefaultDependsOn:      []Kind{KindGeneration},
		DefaultTimeoutSeconds: 300,
	},
	KindCompilation: {
		RequiredParams:        []string{"toolchainPath"},
		DefaultDependsOn:      []Kind{KindStaging},
		DefaultTimeoutSeconds: 1200,
	},
	KindPostLink: {
		RequiredParams:        []string{"postLinkDataPath"},
		DefaultDependsOn:      []Kind{KindCompilation},
		DefaultTimeoutSeconds: 600,
	},
	KindPackaging: {
		RequiredParams:        []string{"outputPath"},
		DefaultDependsOn:      []Kind{KindCompilation, KindPostLink},
		DefaultTimeoutSeconds: 60,
	},
	KindGeneric: {
		DefaultTimeoutSeconds: 300,
	},
}

// RuleFor returns the validation rule for a stage kind. Unknown kinds get
// the generic rule.
func RuleFor(k Kind) KindRule {
	if rule, ok := kindRules[k]; ok {
		return rule
	}
	return kindRules[KindGeneric]
}

// ParseKind maps a document kind string to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindGeneration, KindStaging, KindCompilation, KindPostLink, KindPackaging, KindGeneric:
		return Kind(s), true
	}
	return "", false
}

// kindByStageID infers kinds for the stage ids used by the built-in
// templates, so template documents do not have to spell out a kind.
var kindByStageID = map[string]Kind{
	"matlab_gen":   KindGeneration,
	"file_process": KindStaging,
	"iar_compile":  KindCompilation,
	"a2l_process":  KindPostLink,
	"package":      KindPackaging,
}

// InferKind returns the kind for a stage id known to the built-in
// templates, or KindGeneric otherwise.
func InferKind(stageID string) Kind {
	if k, ok := kindByStageID[stageID]; ok {
		return k
	}
	return KindGeneric
}
