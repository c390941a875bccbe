package importer

import "github.com/managed-module/mmimport/internal/metadata"

// populate is the second pass of the plan/populate/wire data flow: fill
// fields/methods/properties/events for every planned type, importing
// signatures and attributes as it goes. Properties and events are
// populated after methods so their accessors can be rebound through the
// method identity map.
func (imp *Importer) populate() {
	for source, decision := range imp.maps.typeDefs {
		switch d := decision.(type) {
		case *NewImportedType:
			imp.populateNewType(source, d)
		case *MergedImportedType:
			imp.populateMergedType(source, d)
		}
	}
}

// populateNewType imports every member of a type that has no target
// counterpart: it owns all of its members outright, none are stubs.
func (imp *Importer) populateNewType(source *metadata.TypeDef, decision *NewImportedType) {
	target := decision.Target

	for _, f := range source.Fields {
		target.Fields = append(target.Fields, imp.importField(f, target))
	}
	for _, m := range source.Methods {
		target.Methods = append(target.Methods, imp.importMethod(m, target))
	}
	for _, p := range source.Properties {
		target.Properties = append(target.Properties, imp.importProperty(p, target))
	}
	for _, e := range source.Events {
		target.Events = append(target.Events, imp.importEvent(e, target))
	}
}

// populateMergedType fuses a compiled type onto its pre-existing target
// counterpart: members that already exist in the target are treated as
// stubs (redirected, never re-created); members that are genuinely new in
// the compiled type are imported and recorded on the MergedImportedType so
// the Name Deduplicator can later resolve collisions when
// RenameDuplicates is set.
func (imp *Importer) populateMergedType(source *metadata.TypeDef, decision *MergedImportedType) {
	target := decision.Target

	// In rename-with-duplicates mode, every compiled member is added as new; collisions are resolved
	// afterward by the Name Deduplicator instead of being treated as
	// stubs (GLOSSARY: "Rename duplicates"). The pre-existing name set is
	// snapshotted here, before any new member is appended below, so the
	// Name Deduplicator compares against what the target actually had
	// rather than against its own just-appended entries.
	stubsEligible := !decision.RenameDuplicates
	var preExisting *existingNames
	if decision.RenameDuplicates {
		preExisting = collectExistingNames(target)
	}

	for _, f := range source.Fields {
		if stubsEligible {
			if stub := imp.findStubField(target, f); stub != nil {
				imp.maps.fields[f] = stub
				imp.maps.stubFields[f] = struct{}{}
				continue
			}
		}
		newField := imp.importField(f, target)
		target.Fields = append(target.Fields, newField)
		decision.NewFields = append(decision.NewFields, newField)
	}

	for _, m := range source.Methods {
		if stubsEligible {
			if stub := imp.findStubMethod(target, m); stub != nil {
				imp.maps.methods[m] = stub
				imp.maps.stubMethods[m] = struct{}{}
				continue
			}
		}
		newMethod := imp.importMethod(m, target)
		target.Methods = append(target.Methods, newMethod)
		decision.NewMethods = append(decision.NewMethods, newMethod)
	}

	for _, p := range source.Properties {
		if stubsEligible {
			if stub := imp.findStubProperty(target, p); stub != nil {
				imp.maps.properties[p] = stub
				imp.maps.stubProperties[p] = struct{}{}
				continue
			}
		}
		newProperty := imp.importProperty(p, target)
		target.Properties = append(target.Properties, newProperty)
		decision.NewProperties = append(decision.NewProperties, newProperty)
	}

	for _, e := range source.Events {
		if stubsEligible {
			if stub := imp.findStubEvent(target, e); stub != nil {
				imp.maps.events[e] = stub
				imp.maps.stubEvents[e] = struct{}{}
				continue
			}
		}
		newEvent := imp.importEvent(e, target)
		target.Events = append(target.Events, newEvent)
		decision.NewEvents = append(decision.NewEvents, newEvent)
	}

	if decision.RenameDuplicates {
		imp.dedup(decision, preExisting)
	}
}

// findStubField returns the pre-existing target field identical to the
// compiled field, if any (name and field-table name space equality).
func (imp *Importer) findStubField(target *metadata.TypeDef, src *metadata.FieldDef) *metadata.FieldDef {
	for _, f := range target.Fields {
		if f.Name == src.Name {
			return f
		}
	}
	return nil
}

// findStubMethod returns the pre-existing target method identical to the
// compiled method, matched by name and parameter count (the same
// signature-ignoring-return-type comparison the Name Deduplicator uses).
func (imp *Importer) findStubMethod(target *metadata.TypeDef, src *metadata.MethodDef) *metadata.MethodDef {
	for _, m := range target.Methods {
		if methodSignatureKey(m.Name, m.Sig) == methodSignatureKey(src.Name, src.Sig) {
			return m
		}
	}
	return nil
}

func (imp *Importer) findStubProperty(target *metadata.TypeDef, src *metadata.PropertyDef) *metadata.PropertyDef {
	for _, p := range target.Properties {
		if propertySignatureKey(p.Name, p.Sig) == propertySignatureKey(src.Name, src.Sig) {
			return p
		}
	}
	return nil
}

func (imp *Importer) findStubEvent(target *metadata.TypeDef, src *metadata.EventDef) *metadata.EventDef {
	for _, e := range target.Events {
		if e.Name == src.Name {
			return e
		}
	}
	return nil
}
