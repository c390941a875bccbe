package importer

import (
	"github.com/agnivade/levenshtein"
	"github.com/managed-module/mmimport/internal/metadata"
)

// maxTypeRefRecursion bounds the walk over nested TypeRef scopes.
const maxTypeRefRecursion = 500

// resolveTypeDefOrRef is the Type Resolver's entry point:
// given a type-def-or-ref from source, it returns the corresponding target
// type-def-or-ref (for a TypeDef, the target type of the ImportedType
// decision that was planned for it).
func (imp *Importer) resolveTypeDefOrRef(t metadata.TypeDefOrRef) metadata.TypeDefOrRef {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case *metadata.TypeDef:
		decision, ok := imp.maps.typeDefs[v]
		if !ok {
			panic(errInvariant("type %q was never planned", v.Name))
		}
		return decision.TargetType()

	case *metadata.TypeRef:
		return imp.resolveTypeRef(v)

	case *metadata.TypeSpec:
		return imp.importTypeSpec(v)

	default:
		panic(errInvariant("unknown TypeDefOrRef kind %T", t))
	}
}

// resolveTypeRef resolves a TypeRef into the target module, reusing any
// previously resolved handle for the same source TypeRef.
func (imp *Importer) resolveTypeRef(ref *metadata.TypeRef) metadata.TypeDefOrRef {
	if resolved, ok := imp.maps.typeRefs[ref]; ok {
		return resolved
	}

	outermost, chain := outermostTypeRefScope(ref)
	if outermost == nil {
		// The recursion cap was hit walking ref's scope chain: resolve this
		// one TypeRef to null rather than aborting the whole import, the
		// same shape as the "type not found" path below.
		imp.addDiagnostic(errorDiagnostic(IM0013, ref.Namespace, ref.Name))
		return nil
	}
	kind, err := imp.classifyTypeRefScope(outermost)
	if err != nil {
		panic(err)
	}

	switch kind {
	case scopeTarget:
		namespace, name := resolveNamespaceName(ref, chain)
		target := imp.findTargetType(namespace, name)
		if target == nil {
			imp.addDiagnostic(errorDiagnostic(IM0003, namespace, name))
			imp.suggestClosestTypeName(namespace, name)
			return nil
		}
		imp.maps.typeRefs[ref] = target
		return target

	case scopeSource:
		panic(errInvariant("TypeRef resolved to source scope: %s.%s", ref.Namespace, ref.Name))

	default: // scopeForeign
		return imp.importForeignTypeRef(ref, chain)
	}
}

// outermostTypeRefScope walks a TypeRef's scope chain (nested TypeRefs
// referring to enclosing types) up to the outermost ResolutionScope,
// capped at maxTypeRefRecursion hops. chain is the list of TypeRefs walked, innermost first, with ref
// itself as chain[0].
func outermostTypeRefScope(ref *metadata.TypeRef) (metadata.TypeRefScope, []*metadata.TypeRef) {
	chain := []*metadata.TypeRef{ref}
	scope := ref.Scope

	for depth := 0; depth < maxTypeRefRecursion; depth++ {
		parent, ok := scope.(*metadata.TypeRef)
		if !ok {
			return scope, chain
		}
		chain = append(chain, parent)
		scope = parent.Scope
	}

	// Recursion cap reached: return null resolution without overflowing
	// the stack.
	return nil, chain
}

// resolveNamespaceName returns the (namespace, name) pair the chain
// identifies, using the outermost TypeRef's namespace and every TypeRef's
// name from outermost to innermost (original), joined via '+' the way
// nested type names are conventionally qualified.
func resolveNamespaceName(ref *metadata.TypeRef, chain []*metadata.TypeRef) (string, string) {
	outer := chain[len(chain)-1]
	if len(chain) == 1 {
		return outer.Namespace, outer.Name
	}

	name := chain[0].Name
	for i := 1; i < len(chain); i++ {
		name = chain[i].Name + "+" + name
	}
	return outer.Namespace, name
}

// findTargetType resolves a (namespace, name) pair against the target
// module's declared top-level types.
func (imp *Importer) findTargetType(namespace, name string) *metadata.TypeDef {
	for _, t := range imp.target.Types {
		if t.Namespace == namespace && t.Name == name {
			return t
		}
	}
	return nil
}

// suggestClosestTypeName appends a "did you mean" clause to the last
// diagnostic when a target top-level type name is a close edit-distance
// match.
func (imp *Importer) suggestClosestTypeName(namespace, name string) {
	best := ""
	bestDistance := -1

	for _, t := range imp.target.Types {
		if t.Namespace != namespace {
			continue
		}
		d := levenshtein.ComputeDistance(name, t.Name)
		if bestDistance == -1 || d < bestDistance {
			bestDistance = d
			best = t.Name
		}
	}

	if best == "" || bestDistance < 0 {
		return
	}

	threshold := len(name) / 3
	if threshold < 1 {
		threshold = 1
	}
	if bestDistance > threshold {
		return
	}

	last := len(imp.result.Diagnostics) - 1
	imp.result.Diagnostics[last].Message += " (did you mean " + best + "?)"
}

// importForeignTypeRef synthesizes a new target TypeRef for a foreign
// scope, recursing on nested TypeRef scopes and importing custom
// attributes.
func (imp *Importer) importForeignTypeRef(ref *metadata.TypeRef, chain []*metadata.TypeRef) *metadata.TypeRef {
	if resolved, ok := imp.maps.typeRefs[ref]; ok {
		return resolved.(*metadata.TypeRef)
	}

	var targetScope metadata.TypeRefScope
	if parent, ok := ref.Scope.(*metadata.TypeRef); ok {
		parentChain := chain[1:]
		targetScope = imp.importForeignTypeRef(parent, parentChain)
	} else {
		targetScope = imp.importForeignResolutionScope(ref.Scope)
	}

	newRef := &metadata.TypeRef{
		Token:     imp.target.NextToken(),
		Module:    imp.target,
		Scope:     targetScope,
		Namespace: ref.Namespace,
		Name:      ref.Name,
	}

	imp.maps.typeRefs[ref] = newRef
	newRef.CustomAttributes = imp.importCustomAttributes(ref.CustomAttributes)

	return newRef
}

// importForeignResolutionScope translates a foreign AssemblyRef/ModuleRef
// to an equal value owned by the target module.
func (imp *Importer) importForeignResolutionScope(scope metadata.TypeRefScope) metadata.TypeRefScope {
	switch s := scope.(type) {
	case *metadata.AssemblyRef:
		return &metadata.AssemblyRef{Name: s.Name, Version: s.Version, Culture: s.Culture, PublicKeyToken: s.PublicKeyToken}
	case *metadata.ModuleRef:
		return &metadata.ModuleRef{Name: s.Name}
	default:
		panic(errInvariant("unexpected foreign resolution scope kind %T", scope))
	}
}

// importTypeSpec imports the signature and creates a new TypeSpec in the
// target.
func (imp *Importer) importTypeSpec(spec *metadata.TypeSpec) *metadata.TypeSpec {
	return &metadata.TypeSpec{
		Token:  imp.target.NextToken(),
		Module: imp.target,
		Sig:    imp.importTypeSig(spec.Sig),
	}
}
