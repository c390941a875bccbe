package fixture

import (
	"strings"
	"testing"

	"github.com/managed-module/mmimport/internal/metadata"
)

const sampleModule = `{
	"name": "Sample",
	"assembly": "SampleAsm",
	"types": [
		{
			"namespace": "App",
			"name": "Widget",
			"baseType": "Object",
			"fields": [{"name": "count", "type": "int"}],
			"methods": [{"name": "DoWork", "static": false, "virtual": true, "params": ["string"]}],
			"properties": [{"name": "Count", "type": "int"}],
			"events": [{"name": "Changed", "type": "EventHandler"}],
			"nested": [
				{"namespace": "", "name": "Inner", "fields": [{"name": "x", "type": "double"}]}
			]
		}
	]
}`

func TestLoadBuildsTypeTree(t *testing.T) {
	mod, err := Load(strings.NewReader(sampleModule))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if mod.Name != "Sample" {
		t.Errorf("unexpected module name: %q", mod.Name)
	}
	if mod.Assembly.Name != "SampleAsm" {
		t.Errorf("unexpected assembly name: %q", mod.Assembly.Name)
	}

	if len(mod.Types) != 1 {
		t.Fatalf("expected 1 top-level type, got %d", len(mod.Types))
	}
	widget := mod.Types[0]
	if widget.Namespace != "App" || widget.Name != "Widget" {
		t.Errorf("unexpected type identity: %s.%s", widget.Namespace, widget.Name)
	}

	if len(widget.Fields) != 1 || widget.Fields[0].Name != "count" {
		t.Fatalf("unexpected fields: %+v", widget.Fields)
	}
	if widget.Fields[0].DeclaringType != widget {
		t.Errorf("expected field's declaring type to be set")
	}
	if _, ok := widget.Fields[0].Sig.Type.(metadata.CorlibSig); !ok {
		t.Errorf("expected the field's type to resolve to a value CorlibSig, got %T", widget.Fields[0].Sig.Type)
	}

	if len(widget.Methods) != 1 {
		t.Fatalf("unexpected methods: %+v", widget.Methods)
	}
	method := widget.Methods[0]
	if method.DeclaringType != widget {
		t.Errorf("expected method's declaring type to be set")
	}
	if !method.Attributes.IsVirtual() {
		t.Errorf("expected the method to carry the virtual attribute")
	}
	if method.Attributes.IsStatic() {
		t.Errorf("expected the method to not carry the static attribute")
	}
	if !method.Sig.HasThis {
		t.Errorf("expected a non-static method's signature to have HasThis set")
	}
	if len(method.Sig.Params) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(method.Sig.Params))
	}
	if _, ok := method.Sig.Params[0].(metadata.CorlibSig); !ok {
		t.Errorf("expected the string param to resolve to a value CorlibSig, got %T", method.Sig.Params[0])
	}

	if len(widget.Properties) != 1 || widget.Properties[0].DeclaringType != widget {
		t.Fatalf("unexpected properties: %+v", widget.Properties)
	}

	if len(widget.Events) != 1 {
		t.Fatalf("unexpected events: %+v", widget.Events)
	}
	if widget.Events[0].DeclaringType != widget {
		t.Errorf("expected event's declaring type to be set")
	}
	if _, ok := widget.Events[0].EventType.(*metadata.TypeRef); !ok {
		t.Errorf("expected the event's type to resolve to a TypeRef, got %T", widget.Events[0].EventType)
	}

	if len(widget.NestedTypes) != 1 || widget.NestedTypes[0].Name != "Inner" {
		t.Fatalf("unexpected nested types: %+v", widget.NestedTypes)
	}
	if widget.NestedTypes[0].EnclosingType != widget {
		t.Errorf("expected the nested type's enclosing type to be set")
	}

	if _, ok := widget.BaseType.(*metadata.TypeRef); !ok {
		t.Errorf("expected the base type to resolve to a TypeRef, got %T", widget.BaseType)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	if _, err := Load(strings.NewReader("not json")); err == nil {
		t.Fatal("expected an error decoding invalid JSON")
	}
}

func TestLoadGlobalType(t *testing.T) {
	const withGlobal = `{
		"name": "Sample",
		"assembly": "SampleAsm",
		"types": [
			{"name": "<Module>", "isGlobal": true, "fields": [{"name": "g", "type": "int"}]}
		]
	}`

	mod, err := Load(strings.NewReader(withGlobal))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(mod.Types) != 0 {
		t.Errorf("expected the global type to not appear in Types, got %d entries", len(mod.Types))
	}
	if mod.GlobalType == nil || len(mod.GlobalType.Fields) != 1 {
		t.Fatalf("expected the global type to carry the fixture's field")
	}
}
