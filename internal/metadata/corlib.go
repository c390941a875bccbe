package metadata

// CorlibTypes is the set of canonical primitive signatures owned by a
// module. Every ModuleDef carries exactly one; primitive
// element kinds are rewritten to the *target* module's CorlibTypes rather
// than re-imported as references.
type CorlibTypes struct {
	Void           *CorlibSig
	Boolean        *CorlibSig
	Char           *CorlibSig
	SByte          *CorlibSig
	Byte           *CorlibSig
	Int16          *CorlibSig
	UInt16         *CorlibSig
	Int32          *CorlibSig
	UInt32         *CorlibSig
	Int64          *CorlibSig
	UInt64         *CorlibSig
	Single         *CorlibSig
	Double         *CorlibSig
	String         *CorlibSig
	Object         *CorlibSig
	IntPtr         *CorlibSig
	UIntPtr        *CorlibSig
	TypedReference *CorlibSig
}

// NewCorlibTypes builds the canonical set of primitive signature values for
// a module. Two modules never share CorlibSig pointers, which is exactly
// why the Signature Importer must canonicalize to the *target's* table
// instead of copying the source's.
func NewCorlibTypes() *CorlibTypes {
	return &CorlibTypes{
		Void:           &CorlibSig{Element: ElementVoid},
		Boolean:        &CorlibSig{Element: ElementBoolean},
		Char:           &CorlibSig{Element: ElementChar},
		SByte:          &CorlibSig{Element: ElementSByte},
		Byte:           &CorlibSig{Element: ElementByte},
		Int16:          &CorlibSig{Element: ElementInt16},
		UInt16:         &CorlibSig{Element: ElementUInt16},
		Int32:          &CorlibSig{Element: ElementInt32},
		UInt32:         &CorlibSig{Element: ElementUInt32},
		Int64:          &CorlibSig{Element: ElementInt64},
		UInt64:         &CorlibSig{Element: ElementUInt64},
		Single:         &CorlibSig{Element: ElementSingle},
		Double:         &CorlibSig{Element: ElementDouble},
		String:         &CorlibSig{Element: ElementString},
		Object:         &CorlibSig{Element: ElementObject},
		IntPtr:         &CorlibSig{Element: ElementIntPtr},
		UIntPtr:        &CorlibSig{Element: ElementUIntPtr},
		TypedReference: &CorlibSig{Element: ElementTypedReference},
	}
}

// ByElement returns the canonical signature for a primitive element kind,
// or nil if the kind is not a corlib primitive.
func (c *CorlibTypes) ByElement(e ElementType) *CorlibSig {
	switch e {
	case ElementVoid:
		return c.Void
	case ElementBoolean:
		return c.Boolean
	case ElementChar:
		return c.Char
	case ElementSByte:
		return c.SByte
	case ElementByte:
		return c.Byte
	case ElementInt16:
		return c.Int16
	case ElementUInt16:
		return c.UInt16
	case ElementInt32:
		return c.Int32
	case ElementUInt32:
		return c.UInt32
	case ElementInt64:
		return c.Int64
	case ElementUInt64:
		return c.UInt64
	case ElementSingle:
		return c.Single
	case ElementDouble:
		return c.Double
	case ElementString:
		return c.String
	case ElementObject:
		return c.Object
	case ElementIntPtr:
		return c.IntPtr
	case ElementUIntPtr:
		return c.UIntPtr
	case ElementTypedReference:
		return c.TypedReference
	default:
		return nil
	}
}

// NewModuleDef creates an empty module with a fresh corlib table and global
// type ready to receive types.
func NewModuleDef(name string, assembly *AssemblyDef) *ModuleDef {
	m := &ModuleDef{
		Name:     name,
		Assembly: assembly,
		Corlib:   NewCorlibTypes(),
	}
	m.GlobalType = &TypeDef{
		Token:    m.NextToken(),
		Module:   m,
		Name:     "<Module>",
		IsGlobal: true,
	}
	return m
}
