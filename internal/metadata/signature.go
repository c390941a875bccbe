package metadata

// TypeSig is the sum type of signature element kinds. Each
// variant is a distinct Go type implementing the marker method so dispatch
// in the Signature Importer can use an exhaustive type switch.
type TypeSig interface {
	isTypeSig()
}

// ElementType identifies one of the primitive corlib element kinds.
type ElementType int

const (
	ElementVoid ElementType = iota
	ElementBoolean
	ElementChar
	ElementSByte
	ElementByte
	ElementInt16
	ElementUInt16
	ElementInt32
	ElementUInt32
	ElementInt64
	ElementUInt64
	ElementSingle
	ElementDouble
	ElementString
	ElementObject
	ElementIntPtr
	ElementUIntPtr
	ElementTypedReference
)

// CorlibSig is a canonical primitive signature. Primitive element kinds are
// always canonicalized to the target module's CorlibSig values rather than
// re-imported as references.
type CorlibSig struct {
	Element ElementType
}

func (CorlibSig) isTypeSig() {}

// ClassSig names a non-primitive named type (class or value type).
type ClassSig struct {
	Type      TypeDefOrRef
	ValueType bool
}

func (*ClassSig) isTypeSig() {}

// PtrSig is an unmanaged pointer: T*.
type PtrSig struct{ Next TypeSig }

func (*PtrSig) isTypeSig() {}

// ByRefSig is a managed reference: T&.
type ByRefSig struct{ Next TypeSig }

func (*ByRefSig) isTypeSig() {}

// SZArraySig is a single-dimension zero-based array: T[].
type SZArraySig struct{ Next TypeSig }

func (*SZArraySig) isTypeSig() {}

// ArraySig is a multi-dimensional array with explicit rank/bounds.
type ArraySig struct {
	Next        TypeSig
	Rank        uint32
	Sizes       []uint32
	LowerBounds []int32
}

func (*ArraySig) isTypeSig() {}

// PinnedSig marks a pinned local.
type PinnedSig struct{ Next TypeSig }

func (*PinnedSig) isTypeSig() {}

// ValueArraySig is a fixed-size inline array embedded in a value type.
type ValueArraySig struct {
	Next TypeSig
	Size uint32
}

func (*ValueArraySig) isTypeSig() {}

// CModReqdSig is a required custom modifier.
type CModReqdSig struct {
	Modifier TypeDefOrRef
	Next     TypeSig
}

func (*CModReqdSig) isTypeSig() {}

// CModOptSig is an optional custom modifier.
type CModOptSig struct {
	Modifier TypeDefOrRef
	Next     TypeSig
}

func (*CModOptSig) isTypeSig() {}

// ModuleSig names a type defined in a specific module of a multi-module
// assembly.
type ModuleSig struct {
	Index uint32
	Next  TypeSig
}

func (*ModuleSig) isTypeSig() {}

// FnPtrSig is a function-pointer signature: method ptr.
type FnPtrSig struct{ Sig *MethodSig }

func (*FnPtrSig) isTypeSig() {}

// GenericInstSig is a closed generic instantiation, e.g. List<int>.
type GenericInstSig struct {
	GenericType *ClassSig
	Args        []TypeSig
}

func (*GenericInstSig) isTypeSig() {}

// GenericVar is a reference to a generic type parameter of the owning type.
type GenericVar struct {
	Index     uint32
	OwnerType TypeDefOrRef
}

func (*GenericVar) isTypeSig() {}

// GenericMVar is a reference to a generic parameter of the owning method.
type GenericMVar struct {
	Index       uint32
	OwnerMethod *MethodDef
}

func (*GenericMVar) isTypeSig() {}

// CallingConvention distinguishes the signature variants dispatched by the
// Signature Importer.
type CallingConvention int

const (
	ConvDefault CallingConvention = iota
	ConvVarArg
	ConvField
	ConvLocalSig
	ConvProperty
	ConvGenericInst
)

// MethodSig describes a method's calling convention, return type,
// parameters, generic parameter count, and sentinel split for vararg
// trailing parameters.
type MethodSig struct {
	CallConv        CallingConvention
	HasThis         bool
	ExplicitThis    bool
	GenericParamCount uint32
	RetType         TypeSig
	Params          []TypeSig
	ParamsAfterSentinel []TypeSig // vararg trailing args, nil unless ConvVarArg
}

// FieldSig wraps a field's type.
type FieldSig struct {
	Type TypeSig
}

// PropertySig describes a property's type and index parameters.
type PropertySig struct {
	HasThis bool
	Type    TypeSig
	Params  []TypeSig
}

// GenericInstMethodSig is the signature attached to a MethodSpec: the
// argument list closing over a generic method's type parameters.
type GenericInstMethodSig struct {
	GenericArguments []TypeSig
}

// LocalSig is the signature of a method's local variable block.
type LocalSig struct {
	Locals []TypeSig
}

// CallingConventionSig is the sum type rooted by a signature tree's calling
// convention.
type CallingConventionSig interface {
	isCallingConventionSig()
}

func (*MethodSig) isCallingConventionSig()            {}
func (*FieldSig) isCallingConventionSig()              {}
func (*PropertySig) isCallingConventionSig()           {}
func (*GenericInstMethodSig) isCallingConventionSig()  {}
func (*LocalSig) isCallingConventionSig()              {}
