package importer

import "github.com/managed-module/mmimport/internal/metadata"

// ImportedType is the sum-type decision recorded for one source top-level
// (or nested) type during planning: either a fresh NewImportedType or a
// fused MergedImportedType.
type ImportedType interface {
	// TargetType returns the target-module handle this decision produced
	// or is fusing into.
	TargetType() *metadata.TypeDef
	// SourceType returns the compiled type this decision was made for.
	SourceType() *metadata.TypeDef
	isImportedType()
}

// NewImportedType is a freshly created target type, possibly renamed to
// avoid a top-level name collision, that owns all of its members.
type NewImportedType struct {
	Target *metadata.TypeDef
	Source *metadata.TypeDef
	// Renamed is non-empty when a top-level name collision forced a rename.
	Renamed string
}

func (t *NewImportedType) TargetType() *metadata.TypeDef { return t.Target }
func (t *NewImportedType) SourceType() *metadata.TypeDef { return t.Source }
func (*NewImportedType) isImportedType()                 {}

// MergedImportedType is a target type fused with a compiled type: existing
// members are treated as stubs, new compiled members are added (renamed on
// collision when RenameDuplicates is set), and at most one EditedMethodBody
// is attached per merged method.
type MergedImportedType struct {
	Target *metadata.TypeDef
	Source *metadata.TypeDef

	// RenameDuplicates selects "merge-and-rename" mode (the global module
	// type) versus "update in place" mode (the edited method's declaring
	// type chain).
	RenameDuplicates bool

	NewNestedTypes []ImportedType
	NewFields      []*metadata.FieldDef
	NewMethods     []*metadata.MethodDef
	NewProperties  []*metadata.PropertyDef
	NewEvents      []*metadata.EventDef

	EditedMethodBodies []*EditedMethodBody
}

func (t *MergedImportedType) TargetType() *metadata.TypeDef { return t.Target }
func (t *MergedImportedType) SourceType() *metadata.TypeDef { return t.Source }
func (*MergedImportedType) isImportedType()                 {}

// IsEmpty reports whether this merge contributed nothing to the target:
// ImportResult.MergedNonNestedTypes is filtered to drop these.
func (t *MergedImportedType) IsEmpty() bool {
	return len(t.NewNestedTypes) == 0 &&
		len(t.NewFields) == 0 &&
		len(t.NewMethods) == 0 &&
		len(t.NewProperties) == 0 &&
		len(t.NewEvents) == 0 &&
		len(t.EditedMethodBodies) == 0
}

// EditedMethodBody is a target method whose body is being replaced.
type EditedMethodBody struct {
	TargetMethod   *metadata.MethodDef
	Body           *metadata.CilBody
	ImplAttributes metadata.MethodImplAttributes
}

// ImportResult is the Orchestrator's public output.
type ImportResult struct {
	Diagnostics          []Diagnostic
	NewNonNestedTypes    []*NewImportedType
	MergedNonNestedTypes []*MergedImportedType
}

// Failed reports whether the import aborted with a fatal error: partial
// success is distinguished from outright failure only by whether a fatal
// diagnostic was raised, since both can carry non-empty
// NewNonNestedTypes/MergedNonNestedTypes. Fatality comes from the
// Diagnostic.Fatal tag set by fatal/errInvariant, not from its Code, so
// this never needs to be kept in sync with the set of codes that can
// abort a call.
func (r *ImportResult) Failed() bool {
	for _, d := range r.Diagnostics {
		if d.Fatal {
			return true
		}
	}
	return false
}

// identityMaps holds every per-call lookup table the Orchestrator needs.
// It is single-use: constructed fresh in New, populated over the life of
// one Import call, and discarded when Import returns.
type identityMaps struct {
	typeDefs map[*metadata.TypeDef]ImportedType          // source TypeDef -> decision
	typeRefs map[*metadata.TypeRef]metadata.TypeDefOrRef // source TypeRef -> resolved target entity (non-global types)

	methods    map[*metadata.MethodDef]*metadata.MethodDef
	fields     map[*metadata.FieldDef]*metadata.FieldDef
	properties map[*metadata.PropertyDef]*metadata.PropertyDef
	events     map[*metadata.EventDef]*metadata.EventDef

	// stubs marks source members treated as identical to a pre-existing
	// target original: no body import happens for them (except the edited
	// method) and lookups redirect to the target original.
	stubMethods    map[*metadata.MethodDef]struct{}
	stubFields     map[*metadata.FieldDef]struct{}
	stubProperties map[*metadata.PropertyDef]struct{}
	stubEvents     map[*metadata.EventDef]struct{}

	// editedMethods maps the source method being replaced to its target
	// counterpart.
	editedMethods map[*metadata.MethodDef]*metadata.MethodDef

	// bodyDict is scratch state for a single body import, cleared at the
	// start of every body and of the edited-method parameter remap.
	bodyDict map[interface{}]interface{}
}

func newIdentityMaps() *identityMaps {
	return &identityMaps{
		typeDefs:       map[*metadata.TypeDef]ImportedType{},
		typeRefs:       map[*metadata.TypeRef]metadata.TypeDefOrRef{},
		methods:        map[*metadata.MethodDef]*metadata.MethodDef{},
		fields:         map[*metadata.FieldDef]*metadata.FieldDef{},
		properties:     map[*metadata.PropertyDef]*metadata.PropertyDef{},
		events:         map[*metadata.EventDef]*metadata.EventDef{},
		stubMethods:    map[*metadata.MethodDef]struct{}{},
		stubFields:     map[*metadata.FieldDef]struct{}{},
		stubProperties: map[*metadata.PropertyDef]struct{}{},
		stubEvents:     map[*metadata.EventDef]struct{}{},
		editedMethods:  map[*metadata.MethodDef]*metadata.MethodDef{},
		bodyDict:       map[interface{}]interface{}{},
	}
}
