package importer

import (
	"strings"
	"testing"

	"github.com/managed-module/mmimport/internal/fixture"
	"github.com/managed-module/mmimport/internal/metadata"
)

const endToEndTargetFixture = `{
	"name": "Target",
	"assembly": "TargetAsm",
	"types": [
		{
			"namespace": "App",
			"name": "Widget",
			"fields": [{"name": "count", "type": "int"}],
			"methods": [{"name": "DoWork", "params": []}]
		}
	]
}`

const endToEndSourceFixture = `{
	"name": "Source",
	"assembly": "SourceAsm",
	"types": [
		{
			"namespace": "App",
			"name": "Widget",
			"fields": [{"name": "count", "type": "int"}, {"name": "extra", "type": "string"}],
			"methods": [{"name": "DoWork", "params": []}, {"name": "Helper", "params": []}]
		},
		{
			"namespace": "App",
			"name": "Gadget",
			"methods": [{"name": "Go", "params": []}]
		}
	]
}`

func findMethodByName(t *testing.T, mod *metadata.ModuleDef, typeName, methodName string) *metadata.MethodDef {
	t.Helper()
	for _, ty := range mod.Types {
		if ty.Name != typeName {
			continue
		}
		for _, m := range ty.Methods {
			if m.Name == methodName {
				return m
			}
		}
	}
	t.Fatalf("method %s.%s not found", typeName, methodName)
	return nil
}

// TestImportMergesExistingTypeAndAddsTopLevelType is an end-to-end scenario
// covering the core merge/new decision split: a pre-existing
// target type gains a new field, a new method, and the edited method's body
// replacement, while a type absent from the target arrives as new.
func TestImportMergesExistingTypeAndAddsTopLevelType(t *testing.T) {
	target, err := fixture.Load(strings.NewReader(endToEndTargetFixture))
	if err != nil {
		t.Fatalf("load target: %v", err)
	}
	source, err := fixture.Load(strings.NewReader(endToEndSourceFixture))
	if err != nil {
		t.Fatalf("load source: %v", err)
	}

	targetMethod := findMethodByName(t, target, "Widget", "DoWork")

	result := New(target).Import(source, metadata.DebugFile{Format: metadata.DebugFormatNone}, targetMethod)

	if result.Failed() {
		t.Fatalf("unexpected failure, diagnostics: %+v", result.Diagnostics)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %+v", result.Diagnostics)
	}

	if len(result.NewNonNestedTypes) != 1 {
		t.Fatalf("expected 1 new type, got %d", len(result.NewNonNestedTypes))
	}
	if result.NewNonNestedTypes[0].Target.Name != "Gadget" {
		t.Errorf("expected the new type to be Gadget, got %q", result.NewNonNestedTypes[0].Target.Name)
	}

	if len(result.MergedNonNestedTypes) != 1 {
		t.Fatalf("expected 1 merged type, got %d", len(result.MergedNonNestedTypes))
	}
	merged := result.MergedNonNestedTypes[0]
	if merged.Target.Name != "Widget" {
		t.Fatalf("expected the merged type to be Widget, got %q", merged.Target.Name)
	}

	if len(merged.NewFields) != 1 || merged.NewFields[0].Name != "extra" {
		t.Errorf("expected exactly the new 'extra' field, got %+v", merged.NewFields)
	}
	if len(merged.NewMethods) != 1 || merged.NewMethods[0].Name != "Helper" {
		t.Errorf("expected exactly the new 'Helper' method, got %+v", merged.NewMethods)
	}
	if len(merged.EditedMethodBodies) != 1 {
		t.Fatalf("expected exactly 1 edited method body, got %d", len(merged.EditedMethodBodies))
	}
	if merged.EditedMethodBodies[0].TargetMethod != targetMethod {
		t.Errorf("expected the edited method body to target the original target method")
	}

	// The pre-existing field/method must be untouched (stubbed, not
	// duplicated): Widget keeps exactly its original field and method plus
	// the one genuinely new one of each.
	if len(merged.Target.Fields) != 2 {
		t.Errorf("expected target Widget to carry 2 fields after merge, got %d", len(merged.Target.Fields))
	}
	if len(merged.Target.Methods) != 2 {
		t.Errorf("expected target Widget to carry 2 methods after merge, got %d", len(merged.Target.Methods))
	}
}

// TestImportUnsupportedDebugFormatAbortsFast covers the unsupported
// debug-format fast-abort path: a portable-PDB or
// embedded debug file aborts the whole call before any type is touched.
func TestImportUnsupportedDebugFormatAbortsFast(t *testing.T) {
	target, err := fixture.Load(strings.NewReader(endToEndTargetFixture))
	if err != nil {
		t.Fatalf("load target: %v", err)
	}
	source, err := fixture.Load(strings.NewReader(endToEndSourceFixture))
	if err != nil {
		t.Fatalf("load source: %v", err)
	}

	targetMethod := findMethodByName(t, target, "Widget", "DoWork")

	result := New(target).Import(source, metadata.DebugFile{Format: metadata.DebugFormatPortablePdb}, targetMethod)

	if !result.Failed() {
		t.Fatalf("expected the import to fail for an unsupported debug format")
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != IM0010 {
		t.Fatalf("expected exactly one IM0010 diagnostic, got %+v", result.Diagnostics)
	}
	if len(result.NewNonNestedTypes) != 0 || len(result.MergedNonNestedTypes) != 0 {
		t.Errorf("expected no types to be touched on a fast abort")
	}
}

// TestImportEditedMethodNotFoundIsFatal covers the IM0002 fatal path: the
// target method supplied by the caller has no matching signature anywhere
// in source.
func TestImportEditedMethodNotFoundIsFatal(t *testing.T) {
	target, err := fixture.Load(strings.NewReader(endToEndTargetFixture))
	if err != nil {
		t.Fatalf("load target: %v", err)
	}
	source, err := fixture.Load(strings.NewReader(`{"name":"Source","assembly":"SourceAsm","types":[]}`))
	if err != nil {
		t.Fatalf("load empty source: %v", err)
	}

	targetMethod := findMethodByName(t, target, "Widget", "DoWork")

	result := New(target).Import(source, metadata.DebugFile{Format: metadata.DebugFormatNone}, targetMethod)

	if !result.Failed() {
		t.Fatalf("expected the import to fail when the edited method has no source counterpart")
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != IM0002 {
		t.Fatalf("expected exactly one IM0002 diagnostic, got %+v", result.Diagnostics)
	}
}
