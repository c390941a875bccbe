package importer

import "github.com/managed-module/mmimport/internal/metadata"

// importTypeSig recursively translates a signature tree from source to
// target. Each primitive maps to the target's corlib;
// composite kinds are rebuilt structurally with their components
// translated. Translating the same source signature twice must yield
// equivalent target signatures — this function has no hidden state, so that invariant holds
// by construction.
func (imp *Importer) importTypeSig(sig metadata.TypeSig) metadata.TypeSig {
	if sig == nil {
		return nil
	}

	switch v := sig.(type) {
	case metadata.CorlibSig:
		return imp.importCorlibSig(v)

	case *metadata.ClassSig:
		return &metadata.ClassSig{
			Type:      imp.resolveTypeDefOrRef(v.Type),
			ValueType: v.ValueType,
		}

	case *metadata.PtrSig:
		return &metadata.PtrSig{Next: imp.importTypeSig(v.Next)}

	case *metadata.ByRefSig:
		return &metadata.ByRefSig{Next: imp.importTypeSig(v.Next)}

	case *metadata.SZArraySig:
		return &metadata.SZArraySig{Next: imp.importTypeSig(v.Next)}

	case *metadata.ArraySig:
		return &metadata.ArraySig{
			Next:        imp.importTypeSig(v.Next),
			Rank:        v.Rank,
			Sizes:       append([]uint32(nil), v.Sizes...),
			LowerBounds: append([]int32(nil), v.LowerBounds...),
		}

	case *metadata.PinnedSig:
		return &metadata.PinnedSig{Next: imp.importTypeSig(v.Next)}

	case *metadata.ValueArraySig:
		return &metadata.ValueArraySig{Next: imp.importTypeSig(v.Next), Size: v.Size}

	case *metadata.CModReqdSig:
		return &metadata.CModReqdSig{Modifier: imp.resolveTypeDefOrRef(v.Modifier), Next: imp.importTypeSig(v.Next)}

	case *metadata.CModOptSig:
		return &metadata.CModOptSig{Modifier: imp.resolveTypeDefOrRef(v.Modifier), Next: imp.importTypeSig(v.Next)}

	case *metadata.ModuleSig:
		return &metadata.ModuleSig{Index: v.Index, Next: imp.importTypeSig(v.Next)}

	case *metadata.FnPtrSig:
		return &metadata.FnPtrSig{Sig: imp.importMethodSig(v.Sig)}

	case *metadata.GenericInstSig:
		args := make([]metadata.TypeSig, len(v.Args))
		for i, a := range v.Args {
			args[i] = imp.importTypeSig(a)
		}
		genType, _ := imp.importTypeSig(v.GenericType).(*metadata.ClassSig)
		return &metadata.GenericInstSig{GenericType: genType, Args: args}

	case *metadata.GenericVar:
		owner := imp.resolveTypeDefOrRef(v.OwnerType)
		return &metadata.GenericVar{Index: v.Index, OwnerType: owner}

	case *metadata.GenericMVar:
		owner, ok := imp.maps.methods[v.OwnerMethod]
		if !ok {
			panic(errInvariant("generic method variable refers to an unimported owner method"))
		}
		return &metadata.GenericMVar{Index: v.Index, OwnerMethod: owner}

	default:
		// Unknown/end/internal element kinds yield null.
		return nil
	}
}

// importCorlibSig canonicalizes a primitive element kind to the target
// module's corlib table rather than re-importing it as a reference.
func (imp *Importer) importCorlibSig(sig metadata.CorlibSig) metadata.TypeSig {
	canon := imp.target.Corlib.ByElement(sig.Element)
	if canon == nil {
		panic(errInvariant("unknown corlib element kind %d", sig.Element))
	}
	return *canon
}

// importMethodSig translates a method-like signature: return type,
// parameters, generic parameter count, and sentinel-trailing parameters
// are all copied with their components translated.
func (imp *Importer) importMethodSig(sig *metadata.MethodSig) *metadata.MethodSig {
	if sig == nil {
		return nil
	}

	params := make([]metadata.TypeSig, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = imp.importTypeSig(p)
	}

	var trailing []metadata.TypeSig
	if sig.ParamsAfterSentinel != nil {
		trailing = make([]metadata.TypeSig, len(sig.ParamsAfterSentinel))
		for i, p := range sig.ParamsAfterSentinel {
			trailing[i] = imp.importTypeSig(p)
		}
	}

	return &metadata.MethodSig{
		CallConv:          sig.CallConv,
		HasThis:           sig.HasThis,
		ExplicitThis:      sig.ExplicitThis,
		GenericParamCount: sig.GenericParamCount,
		RetType:           imp.importTypeSig(sig.RetType),
		Params:            params,
		ParamsAfterSentinel: trailing,
	}
}

// importFieldSig translates a field signature.
func (imp *Importer) importFieldSig(sig *metadata.FieldSig) *metadata.FieldSig {
	if sig == nil {
		return nil
	}
	return &metadata.FieldSig{Type: imp.importTypeSig(sig.Type)}
}

// importPropertySig translates a property signature.
func (imp *Importer) importPropertySig(sig *metadata.PropertySig) *metadata.PropertySig {
	if sig == nil {
		return nil
	}
	params := make([]metadata.TypeSig, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = imp.importTypeSig(p)
	}
	return &metadata.PropertySig{HasThis: sig.HasThis, Type: imp.importTypeSig(sig.Type), Params: params}
}

// importLocalSig translates a local-variable-block signature.
func (imp *Importer) importLocalSig(sig *metadata.LocalSig) *metadata.LocalSig {
	if sig == nil {
		return nil
	}
	locals := make([]metadata.TypeSig, len(sig.Locals))
	for i, l := range sig.Locals {
		locals[i] = imp.importTypeSig(l)
	}
	return &metadata.LocalSig{Locals: locals}
}

// importGenericInstMethodSig translates a MethodSpec's closing argument
// list.
func (imp *Importer) importGenericInstMethodSig(sig *metadata.GenericInstMethodSig) *metadata.GenericInstMethodSig {
	if sig == nil {
		return nil
	}
	args := make([]metadata.TypeSig, len(sig.GenericArguments))
	for i, a := range sig.GenericArguments {
		args[i] = imp.importTypeSig(a)
	}
	return &metadata.GenericInstMethodSig{GenericArguments: args}
}

// importCallingConventionSig dispatches a CallingConventionSig to its
// method/field/property/generic-inst-method/local variant importer.
func (imp *Importer) importCallingConventionSig(sig metadata.CallingConventionSig) metadata.CallingConventionSig {
	if sig == nil {
		return nil
	}

	switch v := sig.(type) {
	case *metadata.MethodSig:
		return imp.importMethodSig(v)
	case *metadata.FieldSig:
		return imp.importFieldSig(v)
	case *metadata.PropertySig:
		return imp.importPropertySig(v)
	case *metadata.GenericInstMethodSig:
		return imp.importGenericInstMethodSig(v)
	case *metadata.LocalSig:
		return imp.importLocalSig(v)
	default:
		return nil
	}
}
