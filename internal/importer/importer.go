package importer

import (
	"github.com/managed-module/mmimport/internal/metadata"
)

// Importer is the Orchestrator: it owns one call's identity
// maps and drives the plan/populate/wire passes in a fixed order. An
// Importer is single-use: construct one with New for each Import call.
type Importer struct {
	source *metadata.ModuleDef
	target *metadata.ModuleDef

	maps   *identityMaps
	result *ImportResult

	// editedTargetMethod is the pre-existing target method being replaced,
	// supplied by the caller.
	editedTargetMethod *metadata.MethodDef
	// editedSourceMethod is its counterpart found in source during plan.
	editedSourceMethod *metadata.MethodDef
	// editedAnchor is the MergedImportedType for the edited method's
	// outermost declaring type, the home for its EditedMethodBody.
	editedAnchor *MergedImportedType
	// globalMerge is the MergedImportedType for the "<Module>" global type,
	// if both modules have one.
	globalMerge *MergedImportedType

	// keepImportedRVA controls whether importField copies a field's RVA
	// from source as-is; when false the imported field's RVA stays zero.
	keepImportedRVA bool
}

// New constructs an Importer bound to a pre-existing target module. The
// same Importer must not be reused across calls to Import.
func New(target *metadata.ModuleDef) *Importer {
	return &Importer{
		target: target,
		maps:   newIdentityMaps(),
		result: &ImportResult{},
	}
}

// Import merges source into the Importer's target module in place of
// targetMethod, returning the accumulated diagnostics and the set of
// non-nested types the merge created or touched. debugFile
// describes the debug-information format the source module carries; only
// None and Pdb are supported -- anything else is reported as IM0010 and
// the call aborts before any types are touched.
func (imp *Importer) Import(source *metadata.ModuleDef, debugFile metadata.DebugFile, targetMethod *metadata.MethodDef) (result *ImportResult) {
	imp.source = source
	imp.editedTargetMethod = targetMethod

	defer func() {
		// Release the source module reference on every exit path.
		imp.source = nil

		if r := recover(); r != nil {
			ae, ok := r.(*abortError)
			if !ok {
				panic(r)
			}
			imp.addDiagnostic(ae.diagnostic)
			result = imp.result
		}
	}()

	if debugFile.Format == metadata.DebugFormatPortablePdb || debugFile.Format == metadata.DebugFormatEmbedded {
		fatal(IM0010, debugFile.Format)
	}

	imp.plan()
	imp.populate()
	imp.wire()

	imp.result.NewNonNestedTypes, imp.result.MergedNonNestedTypes = imp.collectNonNestedTypes()

	return imp.result
}

// collectNonNestedTypes partitions every planned type decision into the
// top-level New/Merged slices the public result reports, dropping merges
// that contributed nothing to the target.
func (imp *Importer) collectNonNestedTypes() ([]*NewImportedType, []*MergedImportedType) {
	var newTypes []*NewImportedType
	var mergedTypes []*MergedImportedType

	for source, decision := range imp.maps.typeDefs {
		if source.EnclosingType != nil {
			continue
		}
		switch d := decision.(type) {
		case *NewImportedType:
			newTypes = append(newTypes, d)
		case *MergedImportedType:
			if !d.IsEmpty() {
				mergedTypes = append(mergedTypes, d)
			}
		}
	}

	return newTypes, mergedTypes
}

// addDiagnostic records a diagnostic on the in-flight result.
func (imp *Importer) addDiagnostic(d Diagnostic) {
	imp.result.Diagnostics = append(imp.result.Diagnostics, d)
}
