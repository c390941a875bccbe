package importer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/managed-module/mmimport/internal/metadata"
)

func TestNextFreeName(t *testing.T) {
	testCases := []struct {
		name     string
		collides func(string) bool
		expected string
	}{
		{
			name:     "Foo",
			collides: func(string) bool { return false },
			expected: "Foo_0",
		},
		{
			name: "Bar",
			collides: func(n string) bool {
				return n == "Bar_0" || n == "Bar_1"
			},
			expected: "Bar_2",
		},
	}

	for _, testCase := range testCases {
		if actual := nextFreeName(testCase.name, testCase.collides); actual != testCase.expected {
			t.Errorf("unexpected free name for %q. want=%q have=%q", testCase.name, testCase.expected, actual)
		}
	}
}

// TestNextFreeNameExhaustion exercises the maxRenameAttempts Fatal
// fallback: a collides function that never returns false must cause
// nextFreeName to abort rather than loop forever.
func TestNextFreeNameExhaustion(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected nextFreeName to panic on exhaustion")
		}
		ae, ok := r.(*abortError)
		if !ok {
			t.Fatalf("expected *abortError, got %T", r)
		}
		if ae.diagnostic.Code != IM0012 {
			t.Errorf("unexpected diagnostic code. want=%q have=%q", IM0012, ae.diagnostic.Code)
		}
		if !ae.diagnostic.Fatal {
			t.Error("expected the exhaustion diagnostic to be tagged Fatal")
		}
	}()

	nextFreeName("Dup", func(string) bool { return true })
}

func TestCollectExistingNames(t *testing.T) {
	target := &metadata.TypeDef{
		Fields:     []*metadata.FieldDef{{Name: "count"}},
		Methods:    []*metadata.MethodDef{{Name: "Run", Sig: &metadata.MethodSig{Params: []metadata.TypeSig{metadata.CorlibSig{}}}}},
		Properties: []*metadata.PropertyDef{{Name: "Value", Sig: &metadata.PropertySig{}}},
		Events:     []*metadata.EventDef{{Name: "Changed"}},
	}

	names := collectExistingNames(target)

	if !names.eventsAndFields["count"] {
		t.Error("expected field name to be tracked")
	}
	if !names.eventsAndFields["Changed"] {
		t.Error("expected event name to be tracked")
	}
	if !names.methods[methodSignatureKey("Run", target.Methods[0].Sig)] {
		t.Error("expected method signature key to be tracked")
	}
	if !names.properties[propertySignatureKey("Value", target.Properties[0].Sig)] {
		t.Error("expected property signature key to be tracked")
	}
}

// TestDedupRenamesPlainCollisionButFlagsVirtual checks that a
// non-virtual colliding method gets renamed, a virtual one is left colliding
// and reported instead.
func TestDedupRenamesPlainCollisionButFlagsVirtual(t *testing.T) {
	existingSig := &metadata.MethodSig{}
	target := &metadata.TypeDef{
		Methods: []*metadata.MethodDef{
			{Name: "Helper", Sig: existingSig},
			{Name: "OnChanged", Sig: existingSig, Attributes: metadata.MethodAttrVirtual},
		},
	}

	plain := &metadata.MethodDef{Name: "Helper", Sig: existingSig}
	virtual := &metadata.MethodDef{Name: "OnChanged", Sig: existingSig, Attributes: metadata.MethodAttrVirtual}

	existing := collectExistingNames(target)

	merged := &MergedImportedType{
		Target:           target,
		RenameDuplicates: true,
		NewMethods:       []*metadata.MethodDef{plain, virtual},
	}

	imp := New(metadata.NewModuleDef("Target", &metadata.AssemblyDef{Name: "Target"}))
	imp.dedup(merged, existing)

	if plain.Name == "Helper" {
		t.Errorf("expected colliding non-virtual method to be renamed, still named %q", plain.Name)
	}
	if virtual.Name != "OnChanged" {
		t.Errorf("expected colliding virtual method to keep its name, got %q", virtual.Name)
	}

	gotCodes := make([]Code, len(imp.result.Diagnostics))
	for i, d := range imp.result.Diagnostics {
		gotCodes[i] = d.Code
	}
	if diff := cmp.Diff([]Code{IM0008}, gotCodes); diff != "" {
		t.Errorf("unexpected diagnostics (-want +have):\n%s", diff)
	}
}

// TestDedupLeavesUniquelyNamedMembersAlone guards against treating a new
// member's own just-appended target-list entry as a collision with itself:
// existing must reflect the target's pre-merge name set.
func TestDedupLeavesUniquelyNamedMembersAlone(t *testing.T) {
	target := &metadata.TypeDef{
		Fields: []*metadata.FieldDef{{Name: "A"}},
	}

	existing := collectExistingNames(target)

	unique := &metadata.FieldDef{Name: "C"}
	target.Fields = append(target.Fields, unique) // simulates populateMergedType's unconditional append

	merged := &MergedImportedType{
		Target:           target,
		RenameDuplicates: true,
		NewFields:        []*metadata.FieldDef{unique},
	}

	imp := New(metadata.NewModuleDef("Target", &metadata.AssemblyDef{Name: "Target"}))
	imp.dedup(merged, existing)

	if unique.Name != "C" {
		t.Errorf("expected uniquely-named field to keep its name, got %q", unique.Name)
	}
}
