package importer

import (
	"strconv"
	"strings"

	"github.com/managed-module/mmimport/internal/metadata"
)

// plan is the Type Planner: it executes the planning pass,
// deciding Merge vs New for every source top-level type and recursing
// through nested types, then records the edited method into
// editedMethodsToFix.
func (imp *Importer) plan() {
	editedSourceMethod := imp.findEditedSourceMethod()
	if editedSourceMethod == nil {
		fatal(IM0002, imp.editedTargetMethod.Name)
	}

	sourceOutermost, targetOutermost := outermostDeclaringTypes(editedSourceMethod.DeclaringType, imp.editedTargetMethod.DeclaringType)
	if sourceOutermost == nil || targetOutermost == nil {
		fatal(IM0001, imp.editedTargetMethod.Name)
	}

	edited := imp.planMergedType(sourceOutermost, targetOutermost, false)
	imp.planNestedTypes(edited, sourceOutermost, targetOutermost)

	imp.maps.editedMethods[editedSourceMethod] = imp.editedTargetMethod

	imp.planGlobalType()
	imp.planRemainingTopLevelTypes(sourceOutermost)

	imp.editedAnchor = edited
	imp.editedSourceMethod = editedSourceMethod
}

// findEditedSourceMethod finds the source method whose signature matches
// the target edited method, ignoring scope comparison (so nested-type
// edits resolve). On ambiguity, fall back to matching on Overrides[0]
// equality.
func (imp *Importer) findEditedSourceMethod() *metadata.MethodDef {
	var candidates []*metadata.MethodDef

	walkTypes(imp.source.Types, func(t *metadata.TypeDef) {
		for _, m := range t.Methods {
			if methodSignaturesEqualIgnoringScope(m, imp.editedTargetMethod) {
				candidates = append(candidates, m)
			}
		}
	})

	if len(candidates) == 1 {
		return candidates[0]
	}
	if len(candidates) == 0 {
		return nil
	}

	// Ambiguous: fall back to matching on Overrides[0].
	if len(imp.editedTargetMethod.Overrides) > 0 {
		for _, c := range candidates {
			if len(c.Overrides) > 0 && overridesEqual(c.Overrides[0], imp.editedTargetMethod.Overrides[0]) {
				return c
			}
		}
	}

	return candidates[0]
}

// methodSignaturesEqualIgnoringScope compares name and param count only
// (static-ness is not compared), deliberately ignoring declaring-type scope so an edit inside a renamed or differently-scoped nested type
// still resolves.
func methodSignaturesEqualIgnoringScope(a, b *metadata.MethodDef) bool {
	if a.Name != b.Name {
		return false
	}
	if a.Sig == nil || b.Sig == nil {
		return a.Sig == b.Sig
	}
	if len(a.Sig.Params) != len(b.Sig.Params) {
		return false
	}
	return true
}

func overridesEqual(a, b metadata.IMethod) bool {
	am, aok := a.(*metadata.MethodDef)
	bm, bok := b.(*metadata.MethodDef)
	if aok && bok {
		return am.Name == bm.Name
	}
	ar, arok := a.(*metadata.MemberRef)
	br, brok := b.(*metadata.MemberRef)
	return arok && brok && ar.Name == br.Name
}

// outermostDeclaringTypes walks up both declaring-type chains in lockstep
// to find the outermost declaring type on each side.
func outermostDeclaringTypes(source, target *metadata.TypeDef) (*metadata.TypeDef, *metadata.TypeDef) {
	for source != nil && source.EnclosingType != nil {
		source = source.EnclosingType
	}
	for target != nil && target.EnclosingType != nil {
		target = target.EnclosingType
	}
	return source, target
}

// planMergedType registers a Merged decision for a (source, target) type
// pair without attempting a rename (the "update in place" mode used for
// the edited method's chain) unless renameDuplicates is requested by the
// caller.
func (imp *Importer) planMergedType(source, target *metadata.TypeDef, renameDuplicates bool) *MergedImportedType {
	merged := &MergedImportedType{Target: target, Source: source, RenameDuplicates: renameDuplicates}
	imp.maps.typeDefs[source] = merged
	return merged
}

// planNestedTypes recursively merges nested-type pairs whose names match
// (ignoring scope); otherwise the target-side loss is silent and the
// source-side extra becomes a NewImportedType under the target nesting.
func (imp *Importer) planNestedTypes(parent *MergedImportedType, sourceType, targetType *metadata.TypeDef) {
	matchedTargets := map[*metadata.TypeDef]bool{}

	for _, sourceNested := range sourceType.NestedTypes {
		var matchedTarget *metadata.TypeDef
		for _, targetNested := range targetType.NestedTypes {
			if matchedTargets[targetNested] {
				continue
			}
			if sourceNested.Name == targetNested.Name {
				matchedTarget = targetNested
				break
			}
		}

		if matchedTarget != nil {
			matchedTargets[matchedTarget] = true
			nestedMerge := imp.planMergedType(sourceNested, matchedTarget, false)
			parent.NewNestedTypes = append(parent.NewNestedTypes, nestedMerge)
			imp.planNestedTypes(nestedMerge, sourceNested, matchedTarget)
			continue
		}

		newType := imp.planNewType(sourceNested, targetType)
		parent.NewNestedTypes = append(parent.NewNestedTypes, newType)
		imp.planNestedTypesUnderNew(newType, sourceNested)
	}
}

// planNestedTypesUnderNew plans every descendant of a type that itself
// became a NewImportedType: since the enclosing type has no target
// counterpart, every nested type below it is new as well.
func (imp *Importer) planNestedTypesUnderNew(parent *NewImportedType, sourceType *metadata.TypeDef) {
	for _, nested := range sourceType.NestedTypes {
		newNested := imp.planNewType(nested, parent.Target)
		imp.planNestedTypesUnderNew(newNested, nested)
	}
}

// planGlobalType merges the source global type ("<Module>") with the
// target's global type, with rename, adding every global member as new.
func (imp *Importer) planGlobalType() {
	if imp.source.GlobalType == nil || imp.target.GlobalType == nil {
		return
	}
	merged := imp.planMergedType(imp.source.GlobalType, imp.target.GlobalType, true)
	imp.globalMerge = merged
}

// planRemainingTopLevelTypes turns every other top-level source type into
// a NewImportedType with a unique name in the target's top-level
// namespace, prefixing "__N__" on collision while preserving any
// backtick-arity suffix.
func (imp *Importer) planRemainingTopLevelTypes(editedSourceOutermost *metadata.TypeDef) {
	existingNames := map[string]bool{}
	for _, t := range imp.target.Types {
		existingNames[t.Namespace+"\x00"+t.Name] = true
	}

	for _, t := range imp.source.Types {
		if t == editedSourceOutermost || t.IsGlobal {
			continue
		}
		if _, planned := imp.maps.typeDefs[t]; planned {
			continue
		}

		newType := imp.planNewTopLevelType(t, existingNames)
		imp.planNestedTypesUnderNew(newType, t)
	}
}

// planNewTopLevelType creates a NewImportedType for a top-level source
// type, renaming on collision with the target's existing top-level names.
func (imp *Importer) planNewTopLevelType(source *metadata.TypeDef, existingNames map[string]bool) *NewImportedType {
	name := uniqueTopLevelName(source.Namespace, source.Name, existingNames)
	existingNames[source.Namespace+"\x00"+name] = true

	target := &metadata.TypeDef{
		Token:      imp.target.NextToken(),
		Module:     imp.target,
		Namespace:  source.Namespace,
		Name:       name,
		Attributes: source.Attributes,
		ClassLayout: source.ClassLayout,
	}
	imp.target.Types = append(imp.target.Types, target)

	newType := &NewImportedType{Target: target, Source: source}
	if name != source.Name {
		newType.Renamed = name
	}
	imp.maps.typeDefs[source] = newType

	target.BaseType = imp.resolveTypeDefOrRef(source.BaseType)
	for _, iface := range source.Interfaces {
		target.Interfaces = append(target.Interfaces, metadata.InterfaceImpl{
			Interface:        imp.resolveTypeDefOrRef(iface.Interface),
			CustomAttributes: imp.importCustomAttributes(iface.CustomAttributes),
		})
	}
	target.GenericParameters = imp.importGenericParams(source.GenericParameters)
	target.CustomAttributes = imp.importCustomAttributes(source.CustomAttributes)

	return newType
}

// planNewType creates a NewImportedType for a nested source type under a
// known target enclosing type (used both when the enclosing pair merged
// and the nested pair didn't match, and when recursing under an already-
// new enclosing type).
func (imp *Importer) planNewType(source *metadata.TypeDef, enclosingTarget *metadata.TypeDef) *NewImportedType {
	target := &metadata.TypeDef{
		Token:         imp.target.NextToken(),
		Module:        imp.target,
		Namespace:     source.Namespace,
		Name:          source.Name,
		Attributes:    source.Attributes,
		EnclosingType: enclosingTarget,
		ClassLayout:   source.ClassLayout,
	}
	enclosingTarget.NestedTypes = append(enclosingTarget.NestedTypes, target)

	newType := &NewImportedType{Target: target, Source: source}
	imp.maps.typeDefs[source] = newType

	target.BaseType = imp.resolveTypeDefOrRef(source.BaseType)
	for _, iface := range source.Interfaces {
		target.Interfaces = append(target.Interfaces, metadata.InterfaceImpl{
			Interface:        imp.resolveTypeDefOrRef(iface.Interface),
			CustomAttributes: imp.importCustomAttributes(iface.CustomAttributes),
		})
	}
	target.GenericParameters = imp.importGenericParams(source.GenericParameters)
	target.CustomAttributes = imp.importCustomAttributes(source.CustomAttributes)

	return newType
}

// uniqueTopLevelName disambiguates a top-level type name against the
// target's existing (namespace, name) set by prefixing "__N__", trying
// increasing N, and preserving any backtick-arity suffix (e.g.
// "List`1") on the original name.
func uniqueTopLevelName(namespace, name string, existingNames map[string]bool) string {
	key := func(n string) string { return namespace + "\x00" + n }
	if !existingNames[key(name)] {
		return name
	}

	base, arity := splitArity(name)
	for n := 0; ; n++ {
		candidate := "__" + strconv.Itoa(n) + "__" + base + arity
		if !existingNames[key(candidate)] {
			return candidate
		}
	}
}

// splitArity splits a generic type name's backtick-arity suffix (e.g.
// "Dictionary`2" -> "Dictionary", "`2") from its base name.
func splitArity(name string) (base string, arity string) {
	if i := strings.LastIndexByte(name, '`'); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

// walkTypes visits every type in a top-level type list and its nested
// types, depth-first.
func walkTypes(types []*metadata.TypeDef, visit func(*metadata.TypeDef)) {
	for _, t := range types {
		visit(t)
		walkTypes(t.NestedTypes, visit)
	}
}
