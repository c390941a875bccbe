package importer

import (
	"fmt"

	"github.com/managed-module/mmimport/internal/metadata"
)

// maxRenameAttempts bounds the "name_0, name_1, ..." rename scheme's
// search for a free name.
const maxRenameAttempts = 10000

// existingNames collects the target's existing property/method/event/
// field names for a merged type, used by the Name Deduplicator. Methods are keyed by name and parameter count;
// properties the same way; parameter types and return types are not part
// of the key, so overloads of equal arity share one. Events and fields are
// keyed by name (fields share the
// event/field name space, since both occupy the type's field table).
type existingNames struct {
	properties map[string]bool
	methods    map[string]bool
	eventsAndFields map[string]bool
}

func collectExistingNames(target *metadata.TypeDef) *existingNames {
	n := &existingNames{
		properties:      map[string]bool{},
		methods:         map[string]bool{},
		eventsAndFields: map[string]bool{},
	}
	for _, p := range target.Properties {
		n.properties[propertySignatureKey(p.Name, p.Sig)] = true
	}
	for _, m := range target.Methods {
		n.methods[methodSignatureKey(m.Name, m.Sig)] = true
	}
	for _, e := range target.Events {
		n.eventsAndFields[e.Name] = true
	}
	for _, f := range target.Fields {
		n.eventsAndFields[f.Name] = true
	}
	return n
}

func methodSignatureKey(name string, sig *metadata.MethodSig) string {
	key := name
	if sig != nil {
		key += fmt.Sprintf("/%d", len(sig.Params))
	}
	return key
}

func propertySignatureKey(name string, sig *metadata.PropertySig) string {
	key := name
	if sig != nil {
		key += fmt.Sprintf("/%d", len(sig.Params))
	}
	return key
}

// dedup runs the Name Deduplicator over a merged-with-rename type's newly
// imported members: a member whose imported name collides with an
// existing target name is renamed `origName_counter`, unless it is
// virtual, in which case a diagnostic is emitted and the original
// (colliding) name is kept. Method renaming prefers a previously
// suggested name over its current one (property/event accessor renames
// seed a suggestion before the method rename runs). existing is the
// target's name set from before any of merged's new members were
// appended, so a uniquely-named new member is never mistaken for its own
// collision.
func (imp *Importer) dedup(merged *MergedImportedType, existing *existingNames) {
	if !merged.RenameDuplicates {
		return
	}

	suggested := map[*metadata.MethodDef]string{}

	for _, p := range merged.NewProperties {
		if !existing.properties[propertySignatureKey(p.Name, p.Sig)] {
			existing.properties[propertySignatureKey(p.Name, p.Sig)] = true
			continue
		}
		if isVirtualAccessor(p.GetMethod) || isVirtualAccessor(p.SetMethod) {
			imp.addDiagnostic(errorDiagnostic(IM0006, p.Name))
			continue
		}

		newName := nextFreeName(p.Name, func(n string) bool { return existing.properties[propertySignatureKey(n, p.Sig)] })
		if p.GetMethod != nil {
			suggested[p.GetMethod] = "get_" + newName
		}
		if p.SetMethod != nil {
			suggested[p.SetMethod] = "set_" + newName
		}
		p.Name = newName
		existing.properties[propertySignatureKey(newName, p.Sig)] = true
	}

	for _, e := range merged.NewEvents {
		if !existing.eventsAndFields[e.Name] {
			existing.eventsAndFields[e.Name] = true
			continue
		}
		if isVirtualAccessor(e.AddMethod) || isVirtualAccessor(e.RemoveMethod) {
			imp.addDiagnostic(errorDiagnostic(IM0007, e.Name))
			continue
		}

		newName := nextFreeName(e.Name, func(n string) bool { return existing.eventsAndFields[n] })
		if e.AddMethod != nil {
			suggested[e.AddMethod] = "add_" + newName
		}
		if e.RemoveMethod != nil {
			suggested[e.RemoveMethod] = "remove_" + newName
		}
		if e.RaiseMethod != nil {
			suggested[e.RaiseMethod] = "raise_" + newName
		}
		e.Name = newName
		existing.eventsAndFields[newName] = true
	}

	for _, m := range merged.NewMethods {
		candidate := m.Name
		if s, ok := suggested[m]; ok {
			candidate = s
		}

		if !existing.methods[methodSignatureKey(candidate, m.Sig)] {
			if candidate != m.Name {
				m.Name = candidate
			}
			existing.methods[methodSignatureKey(m.Name, m.Sig)] = true
			continue
		}

		if m.Attributes.IsVirtual() {
			imp.addDiagnostic(errorDiagnostic(IM0008, m.Name))
			continue
		}

		newName := nextFreeName(candidate, func(n string) bool { return existing.methods[methodSignatureKey(n, m.Sig)] })
		m.Name = newName
		existing.methods[methodSignatureKey(newName, m.Sig)] = true
	}

	for _, f := range merged.NewFields {
		if !existing.eventsAndFields[f.Name] {
			existing.eventsAndFields[f.Name] = true
			continue
		}
		newName := nextFreeName(f.Name, func(n string) bool { return existing.eventsAndFields[n] })
		f.Name = newName
		existing.eventsAndFields[newName] = true
	}
}

func isVirtualAccessor(m *metadata.MethodDef) bool {
	return m != nil && m.Attributes.IsVirtual()
}

// nextFreeName implements the rename scheme `origName + "_" + counter`,
// incrementing until no collision, bounded by
// maxRenameAttempts to guarantee termination even if the compiler itself
// emitted names in this scheme. Exhaustion is IM0012, distinct from
// IM0008 (the recoverable virtual-member-collision diagnostic raised by
// dedup above): one means "nothing plausible exists", the other "this
// member, specifically, can't be renamed".
func nextFreeName(origName string, collides func(string) bool) string {
	for n := 0; n < maxRenameAttempts; n++ {
		candidate := fmt.Sprintf("%s_%d", origName, n)
		if !collides(candidate) {
			return candidate
		}
	}
	fatal(IM0012, origName)
	return ""
}
