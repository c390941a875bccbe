// Package fixture loads a JSON-encoded ModuleDef for cmd/mmimport. It is a
// development/test harness format, not a binary metadata reader: parsing an
// actual managed module image is out of scope here. Only the subset of
// internal/metadata a hand-written test fixture plausibly needs is
// modeled: bodies, signature trees, and custom attributes are
// intentionally left for the caller to populate on the decoded graph when
// exercising those paths directly from Go.
package fixture

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/managed-module/mmimport/internal/metadata"
)

type moduleJSON struct {
	Name     string     `json:"name"`
	Assembly string     `json:"assembly"`
	Types    []typeJSON `json:"types"`
}

type typeJSON struct {
	Namespace  string       `json:"namespace"`
	Name       string       `json:"name"`
	IsGlobal   bool         `json:"isGlobal"`
	BaseType   string       `json:"baseType"`
	Fields     []fieldJSON  `json:"fields"`
	Methods    []methodJSON `json:"methods"`
	Properties []propJSON   `json:"properties"`
	Events     []eventJSON  `json:"events"`
	Nested     []typeJSON   `json:"nested"`
}

type fieldJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type methodJSON struct {
	Name     string   `json:"name"`
	Static   bool     `json:"static"`
	Virtual  bool     `json:"virtual"`
	Params   []string `json:"params"`
	HasBody  bool     `json:"hasBody"`
}

type propJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type eventJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Load decodes a JSON ModuleDef fixture from r.
func Load(r io.Reader) (*metadata.ModuleDef, error) {
	var m moduleJSON
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode module fixture")
	}

	mod := metadata.NewModuleDef(m.Name, &metadata.AssemblyDef{Name: m.Assembly})

	for _, t := range m.Types {
		td := buildType(mod, t, nil)
		if t.IsGlobal {
			mod.GlobalType = td
		} else {
			mod.Types = append(mod.Types, td)
		}
	}

	return mod, nil
}

func buildType(mod *metadata.ModuleDef, t typeJSON, enclosing *metadata.TypeDef) *metadata.TypeDef {
	td := &metadata.TypeDef{
		Token:         mod.NextToken(),
		Module:        mod,
		Namespace:     t.Namespace,
		Name:          t.Name,
		IsGlobal:      t.IsGlobal,
		EnclosingType: enclosing,
	}

	if t.BaseType != "" {
		td.BaseType = &metadata.TypeRef{
			Token:     mod.NextToken(),
			Module:    mod,
			Namespace: "",
			Name:      t.BaseType,
		}
	}

	for _, f := range t.Fields {
		td.Fields = append(td.Fields, &metadata.FieldDef{
			Token:         mod.NextToken(),
			Module:        mod,
			DeclaringType: td,
			Name:          f.Name,
			Sig:           &metadata.FieldSig{Type: resolveTypeName(mod, f.Type)},
		})
	}

	for _, m := range t.Methods {
		sig := &metadata.MethodSig{HasThis: !m.Static}
		for _, p := range m.Params {
			sig.Params = append(sig.Params, resolveTypeName(mod, p))
		}
		td.Methods = append(td.Methods, &metadata.MethodDef{
			Token:         mod.NextToken(),
			Module:        mod,
			DeclaringType: td,
			Name:          m.Name,
			Sig:           sig,
			Attributes:    methodAttributes(m),
		})
	}

	for _, p := range t.Properties {
		td.Properties = append(td.Properties, &metadata.PropertyDef{
			Token:         mod.NextToken(),
			Module:        mod,
			DeclaringType: td,
			Name:          p.Name,
			Sig:           &metadata.PropertySig{Type: resolveTypeName(mod, p.Type)},
		})
	}

	for _, e := range t.Events {
		td.Events = append(td.Events, &metadata.EventDef{
			Token:         mod.NextToken(),
			Module:        mod,
			DeclaringType: td,
			Name:          e.Name,
			EventType:     resolveTypeRefName(mod, e.Type),
		})
	}

	for _, n := range t.Nested {
		td.NestedTypes = append(td.NestedTypes, buildType(mod, n, td))
	}

	return td
}

func methodAttributes(m methodJSON) metadata.MethodAttributes {
	var a metadata.MethodAttributes
	if m.Static {
		a |= metadata.MethodAttrStatic
	}
	if m.Virtual {
		a |= metadata.MethodAttrVirtual
	}
	return a
}

// resolveTypeName maps a fixture's bare type name to the module's corlib
// signature when it names a primitive, otherwise to a same-module TypeRef
// placeholder. The placeholder carries no resolution scope, so Import does
// not resolve it against the target: it resolves to nil with a diagnostic.
func resolveTypeName(mod *metadata.ModuleDef, name string) metadata.TypeSig {
	if el, ok := corlibElementByName[name]; ok {
		return *mod.Corlib.ByElement(el)
	}
	return &metadata.ClassSig{Type: resolveTypeRefName(mod, name)}
}

// resolveTypeRefName builds a same-module TypeRef placeholder for a bare
// type name, used wherever a TypeDefOrRef (not a full TypeSig) is required,
// e.g. EventDef.EventType.
func resolveTypeRefName(mod *metadata.ModuleDef, name string) *metadata.TypeRef {
	return &metadata.TypeRef{
		Token:  mod.NextToken(),
		Module: mod,
		Name:   name,
	}
}

var corlibElementByName = map[string]metadata.ElementType{
	"void":    metadata.ElementVoid,
	"bool":    metadata.ElementBoolean,
	"char":    metadata.ElementChar,
	"sbyte":   metadata.ElementSByte,
	"byte":    metadata.ElementByte,
	"short":   metadata.ElementInt16,
	"ushort":  metadata.ElementUInt16,
	"int":     metadata.ElementInt32,
	"uint":    metadata.ElementUInt32,
	"long":    metadata.ElementInt64,
	"ulong":   metadata.ElementUInt64,
	"float":   metadata.ElementSingle,
	"double":  metadata.ElementDouble,
	"string":  metadata.ElementString,
	"object":  metadata.ElementObject,
	"intptr":  metadata.ElementIntPtr,
	"uintptr": metadata.ElementUIntPtr,
}
