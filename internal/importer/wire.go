package importer

import "github.com/managed-module/mmimport/internal/metadata"

// wire is the third pass of the plan/populate/wire data flow: import method bodies, overrides, and operand references once all
// member identities are known, so forward references are satisfied by
// the identity maps built in the planning and populate passes.
func (imp *Importer) wire() {
	for src, target := range imp.maps.methods {
		if _, isStub := imp.maps.stubMethods[src]; isStub {
			continue
		}
		if src == imp.editedSourceMethod {
			// The edited method's body is handled specially by
			// finalizeEditedMethod, not here.
			continue
		}
		imp.wireOverrides(src, target)
		imp.importBody(src, target, false)
	}

	imp.finalizeEditedMethod()
}

// wireOverrides translates a method's explicit interface/virtual override
// list, which may reference members imported in the populate pass.
func (imp *Importer) wireOverrides(src, target *metadata.MethodDef) {
	if len(src.Overrides) == 0 {
		return
	}
	target.Overrides = make([]metadata.IMethod, len(src.Overrides))
	for i, o := range src.Overrides {
		target.Overrides[i] = imp.resolveIMethod(o)
	}
}

// finalizeEditedMethod attaches an
// EditedMethodBody to the anchor MergedImportedType and rewrite the
// source body's parameter operands to point at the target method's
// parameter handles, so the re-embedded instructions reference the real
// target parameters.
func (imp *Importer) finalizeEditedMethod() {
	for src, target := range imp.maps.editedMethods {
		imp.importBody(src, target, true)

		imp.editedAnchor.EditedMethodBodies = append(imp.editedAnchor.EditedMethodBodies, &EditedMethodBody{
			TargetMethod:   target,
			Body:           target.Body,
			ImplAttributes: src.ImplAttributes,
		})
	}
}
