package importer

import "github.com/managed-module/mmimport/internal/metadata"

// importField allocates a fresh target field, registers it in the
// identity map before translating its signature, then copies
// flags, constant, marshal info, and custom attributes.
func (imp *Importer) importField(src *metadata.FieldDef, declaringType *metadata.TypeDef) *metadata.FieldDef {
	if target, ok := imp.maps.fields[src]; ok {
		return target
	}

	target := &metadata.FieldDef{
		Token:         imp.target.NextToken(),
		Module:        imp.target,
		DeclaringType: declaringType,
		Name:          src.Name,
		Attributes:    src.Attributes,
	}
	imp.maps.fields[src] = target

	target.Sig = imp.importFieldSig(src.Sig)

	// RVA defaults to zero unless keep_imported_rva is set.
	if imp.keepImportedRVA {
		target.RVA = src.RVA
	}
	if len(src.InitialValue) > 0 {
		target.InitialValue = append([]byte(nil), src.InitialValue...)
	}

	target.Constant = importConstant(src.Constant)
	target.MarshalType = imp.importMarshalType(src.MarshalType)
	target.CustomAttributes = imp.importCustomAttributes(src.CustomAttributes)

	return target
}

// importMethod allocates a fresh target method, registers it before
// translating sub-signatures, then copies signature, impl/semantics
// attributes, impl map, param defs, generic parameters, and custom
// attributes. Body import is deferred to the wire pass.
func (imp *Importer) importMethod(src *metadata.MethodDef, declaringType *metadata.TypeDef) *metadata.MethodDef {
	if target, ok := imp.maps.methods[src]; ok {
		return target
	}

	target := &metadata.MethodDef{
		Token:               imp.target.NextToken(),
		Module:              imp.target,
		DeclaringType:        declaringType,
		Name:                 src.Name,
		Attributes:           src.Attributes,
		ImplAttributes:       src.ImplAttributes,
		SemanticsAttributes:  src.SemanticsAttributes,
	}
	imp.maps.methods[src] = target

	target.Sig = imp.importMethodSig(src.Sig)
	target.ImplMap = importImplMap(src.ImplMap)
	target.Params = imp.importParamDefs(src.Params)
	target.GenericParameters = imp.importGenericParams(src.GenericParameters)
	target.CustomAttributes = imp.importCustomAttributes(src.CustomAttributes)
	target.DeclSecurities = imp.importDeclSecurities(src.DeclSecurities)

	imp.updateParameterTypes(target)

	return target
}

// updateParameterTypes is a no-op
// placeholder point at which a reimplementation following a real metadata
// library would refresh cached parameter-type views after the signature
// has been (re)written. Kept as a named step so future signature-mutation
// code has an obvious hook.
func (imp *Importer) updateParameterTypes(*metadata.MethodDef) {}

// importParamDefs translates a method's formal parameter list.
func (imp *Importer) importParamDefs(src []*metadata.ParamDef) []*metadata.ParamDef {
	if src == nil {
		return nil
	}
	out := make([]*metadata.ParamDef, len(src))
	for i, p := range src {
		out[i] = &metadata.ParamDef{
			Token:            imp.target.NextToken(),
			Sequence:         p.Sequence,
			Name:             p.Name,
			Attributes:       p.Attributes,
			Constant:         importConstant(p.Constant),
			MarshalType:      imp.importMarshalType(p.MarshalType),
			CustomAttributes: imp.importCustomAttributes(p.CustomAttributes),
		}
	}
	return out
}

// importGenericParams translates a type's or method's generic parameter
// list, including constraints.
func (imp *Importer) importGenericParams(src []*metadata.GenericParam) []*metadata.GenericParam {
	if src == nil {
		return nil
	}
	out := make([]*metadata.GenericParam, len(src))
	for i, p := range src {
		constraints := make([]metadata.TypeDefOrRef, len(p.Constraints))
		for j, c := range p.Constraints {
			constraints[j] = imp.resolveTypeDefOrRef(c)
		}
		out[i] = &metadata.GenericParam{
			Token:            imp.target.NextToken(),
			Number:           p.Number,
			Name:             p.Name,
			Constraints:      constraints,
			CustomAttributes: imp.importCustomAttributes(p.CustomAttributes),
		}
	}
	return out
}

// importDeclSecurities translates a declarative security list. Permission
// set blobs are opaque and copied verbatim.
func (imp *Importer) importDeclSecurities(src []*metadata.DeclSecurity) []*metadata.DeclSecurity {
	if src == nil {
		return nil
	}
	out := make([]*metadata.DeclSecurity, len(src))
	for i, s := range src {
		out[i] = &metadata.DeclSecurity{Action: s.Action, PermissionSet: append([]byte(nil), s.PermissionSet...)}
	}
	return out
}

// importProperty imports a property after its accessor methods have
// already been imported, so get_/set_/other_ methods can be rebound
// through the method identity map.
func (imp *Importer) importProperty(src *metadata.PropertyDef, declaringType *metadata.TypeDef) *metadata.PropertyDef {
	if target, ok := imp.maps.properties[src]; ok {
		return target
	}

	target := &metadata.PropertyDef{
		Token:         imp.target.NextToken(),
		Module:        imp.target,
		DeclaringType: declaringType,
		Name:          src.Name,
		Attributes:    src.Attributes,
	}
	imp.maps.properties[src] = target

	target.Sig = imp.importPropertySig(src.Sig)
	target.GetMethod = imp.rebindMethod(src.GetMethod)
	target.SetMethod = imp.rebindMethod(src.SetMethod)
	for _, m := range src.OtherMethods {
		target.OtherMethods = append(target.OtherMethods, imp.rebindMethod(m))
	}
	target.Constant = importConstant(src.Constant)
	target.CustomAttributes = imp.importCustomAttributes(src.CustomAttributes)

	return target
}

// importEvent imports an event after its accessor methods.
func (imp *Importer) importEvent(src *metadata.EventDef, declaringType *metadata.TypeDef) *metadata.EventDef {
	if target, ok := imp.maps.events[src]; ok {
		return target
	}

	target := &metadata.EventDef{
		Token:         imp.target.NextToken(),
		Module:        imp.target,
		DeclaringType: declaringType,
		Name:          src.Name,
		Attributes:    src.Attributes,
	}
	imp.maps.events[src] = target

	target.EventType = imp.resolveTypeDefOrRef(src.EventType)
	target.AddMethod = imp.rebindMethod(src.AddMethod)
	target.RemoveMethod = imp.rebindMethod(src.RemoveMethod)
	target.RaiseMethod = imp.rebindMethod(src.RaiseMethod)
	for _, m := range src.OtherMethods {
		target.OtherMethods = append(target.OtherMethods, imp.rebindMethod(m))
	}
	target.CustomAttributes = imp.importCustomAttributes(src.CustomAttributes)

	return target
}

// rebindMethod resolves a source accessor method through the method
// identity map. It must already have been imported by the time
// importProperty/importEvent run.
func (imp *Importer) rebindMethod(src *metadata.MethodDef) *metadata.MethodDef {
	if src == nil {
		return nil
	}
	target, ok := imp.maps.methods[src]
	if !ok {
		imp.addDiagnostic(errorDiagnostic(IM0004, src.Name))
		return nil
	}
	return target
}

// importConstant copies a compile-time constant value verbatim.
func importConstant(c *metadata.Constant) *metadata.Constant {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// importImplMap copies a P/Invoke declaration verbatim.
func importImplMap(m *metadata.ImplMap) *metadata.ImplMap {
	if m == nil {
		return nil
	}
	cp := *m
	return &cp
}

// importMarshalType reconstructs a marshal-type descriptor field-wise
// across the closed variant set.
func (imp *Importer) importMarshalType(m metadata.MarshalType) metadata.MarshalType {
	switch v := m.(type) {
	case nil:
		return nil
	case *metadata.RawMarshalType:
		return &metadata.RawMarshalType{Data: append([]byte(nil), v.Data...)}
	case *metadata.FixedSysStringMarshalType:
		return &metadata.FixedSysStringMarshalType{Size: v.Size}
	case *metadata.SafeArrayMarshalType:
		return &metadata.SafeArrayMarshalType{ElementType: v.ElementType, UserDefinedSubType: imp.resolveTypeDefOrRef(v.UserDefinedSubType)}
	case *metadata.FixedArrayMarshalType:
		return &metadata.FixedArrayMarshalType{Size: v.Size, ElementType: v.ElementType}
	case *metadata.ArrayMarshalType:
		return &metadata.ArrayMarshalType{ElementType: v.ElementType, ParamNumber: v.ParamNumber, NumElements: v.NumElements, HasExtraInfo: v.HasExtraInfo}
	case *metadata.CustomMarshalType:
		return &metadata.CustomMarshalType{Guid: v.Guid, NativeTypeName: v.NativeTypeName, CustomMarshaler: imp.resolveTypeDefOrRef(v.CustomMarshaler), Cookie: v.Cookie}
	case *metadata.InterfaceMarshalType:
		return &metadata.InterfaceMarshalType{IidParamIndex: v.IidParamIndex}
	case *metadata.PlainMarshalType:
		return &metadata.PlainMarshalType{NativeType: v.NativeType}
	default:
		panic(errInvariant("unknown marshal type %T", m))
	}
}

// importCustomAttributes recursively imports a custom attribute list. Raw
// blob attributes are copied verbatim; structured attributes recursively
// import their constructor and named arguments.
func (imp *Importer) importCustomAttributes(src []*metadata.CustomAttribute) []*metadata.CustomAttribute {
	if src == nil {
		return nil
	}
	out := make([]*metadata.CustomAttribute, len(src))
	for i, ca := range src {
		out[i] = imp.importCustomAttribute(ca)
	}
	return out
}

func (imp *Importer) importCustomAttribute(src *metadata.CustomAttribute) *metadata.CustomAttribute {
	if src.RawData != nil {
		return &metadata.CustomAttribute{
			Constructor: imp.resolveIMethod(src.Constructor),
			RawData:     append([]byte(nil), src.RawData...),
		}
	}

	target := &metadata.CustomAttribute{Constructor: imp.resolveIMethod(src.Constructor)}

	target.ConstructorArgs = make([]metadata.CAArgument, len(src.ConstructorArgs))
	for i, a := range src.ConstructorArgs {
		target.ConstructorArgs[i] = imp.importCAArgument(a)
	}

	target.NamedArgs = make([]metadata.CANamedArgument, len(src.NamedArgs))
	for i, a := range src.NamedArgs {
		target.NamedArgs[i] = metadata.CANamedArgument{
			IsField: a.IsField,
			Name:    a.Name,
			Type:    imp.importTypeSig(a.Type),
			Value:   imp.importCAArgument(a.Value),
		}
	}

	return target
}

// importCAArgument imports a single custom-attribute argument. The value
// may itself be a TypeSig (typeof(T) arguments), a single nested
// CAArgument (boxed value), a list of CAArgument (array argument), or a
// primitive left intact.
func (imp *Importer) importCAArgument(src metadata.CAArgument) metadata.CAArgument {
	out := metadata.CAArgument{Type: imp.importTypeSig(src.Type)}

	switch v := src.Value.(type) {
	case metadata.TypeSig:
		out.Value = imp.importTypeSig(v)
	case metadata.CAArgument:
		out.Value = imp.importCAArgument(v)
	case []metadata.CAArgument:
		values := make([]metadata.CAArgument, len(v))
		for i, item := range v {
			values[i] = imp.importCAArgument(item)
		}
		out.Value = values
	default:
		out.Value = src.Value
	}

	return out
}

// resolveIMethod resolves a method reference used as a custom-attribute
// constructor, operand, or override target.
func (imp *Importer) resolveIMethod(m metadata.IMethod) metadata.IMethod {
	switch v := m.(type) {
	case nil:
		return nil
	case *metadata.MethodDef:
		if target, ok := imp.maps.methods[v]; ok {
			return target
		}
		imp.addDiagnostic(errorDiagnostic(IM0004, v.Name))
		return nil
	case *metadata.MemberRef:
		return &metadata.MemberRef{
			Token:  imp.target.NextToken(),
			Module: imp.target,
			Class:  imp.resolveTypeDefOrRef(v.Class),
			Name:   v.Name,
			Sig:    imp.importCallingConventionSig(v.Sig),
		}
	default:
		panic(errInvariant("unknown IMethod kind %T", m))
	}
}

// resolveIField resolves a field reference used as an instruction operand.
func (imp *Importer) resolveIField(f metadata.IField) metadata.IField {
	switch v := f.(type) {
	case nil:
		return nil
	case *metadata.FieldDef:
		if target, ok := imp.maps.fields[v]; ok {
			return target
		}
		imp.addDiagnostic(errorDiagnostic(IM0005, v.Name))
		return nil
	case *metadata.MemberRef:
		return &metadata.MemberRef{
			Token:  imp.target.NextToken(),
			Module: imp.target,
			Class:  imp.resolveTypeDefOrRef(v.Class),
			Name:   v.Name,
			Sig:    imp.importCallingConventionSig(v.Sig),
		}
	default:
		panic(errInvariant("unknown IField kind %T", f))
	}
}
