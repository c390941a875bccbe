package report

import (
	"strings"
	"testing"

	"github.com/managed-module/mmimport/internal/importer"
	"github.com/managed-module/mmimport/internal/metadata"
)

func TestRenderSucceeded(t *testing.T) {
	newType := &importer.NewImportedType{
		Target: &metadata.TypeDef{Namespace: "App", Name: "Gadget"},
	}

	result := &importer.ImportResult{
		NewNonNestedTypes: []*importer.NewImportedType{newType},
	}

	out := Render(result)

	if !strings.Contains(out, "# Import succeeded") {
		t.Errorf("expected a succeeded header, got:\n%s", out)
	}
	if !strings.Contains(out, "`App.Gadget`") {
		t.Errorf("expected the new type to be listed qualified, got:\n%s", out)
	}
}

func TestRenderFailedWithDiagnostics(t *testing.T) {
	result := &importer.ImportResult{
		Diagnostics: []importer.Diagnostic{
			{Severity: importer.SeverityError, Code: importer.IM0002, Message: "could not find the edited method", Fatal: true},
		},
	}

	out := Render(result)

	if !strings.Contains(out, "# Import failed") {
		t.Errorf("expected a failed header, got:\n%s", out)
	}
	if !strings.Contains(out, "**error** [IM0002]") {
		t.Errorf("expected the diagnostic to be rendered with its severity and code, got:\n%s", out)
	}
}

func TestRenderMergedTypeListsNewMembers(t *testing.T) {
	merged := &importer.MergedImportedType{
		Target:     &metadata.TypeDef{Name: "Widget"},
		NewFields:  []*metadata.FieldDef{{Name: "extra"}},
		NewMethods: []*metadata.MethodDef{{Name: "Helper"}},
	}

	result := &importer.ImportResult{
		MergedNonNestedTypes: []*importer.MergedImportedType{merged},
	}

	out := Render(result)

	if !strings.Contains(out, "### `Widget`") {
		t.Errorf("expected a Widget heading, got:\n%s", out)
	}
	if !strings.Contains(out, "new field `extra`") {
		t.Errorf("expected the new field to be listed, got:\n%s", out)
	}
	if !strings.Contains(out, "new method `Helper`") {
		t.Errorf("expected the new method to be listed, got:\n%s", out)
	}
}

func TestQualifiedName(t *testing.T) {
	testCases := []struct {
		typeDef  *metadata.TypeDef
		expected string
	}{
		{&metadata.TypeDef{Namespace: "App", Name: "Widget"}, "App.Widget"},
		{&metadata.TypeDef{Name: "Widget"}, "Widget"},
	}

	for _, testCase := range testCases {
		if actual := qualifiedName(testCase.typeDef); actual != testCase.expected {
			t.Errorf("unexpected qualified name. want=%q have=%q", testCase.expected, actual)
		}
	}
}
