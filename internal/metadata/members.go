package metadata

// MemberRef is a reference to a field or method defined in another module.
type MemberRef struct {
	Token  Token
	Module *ModuleDef
	Class  TypeDefOrRef // the TypeDef/TypeRef/TypeSpec the member belongs to
	Name   string
	Sig    CallingConventionSig
}

// IField is the sum type of things that can be used where a field is
// expected in an operand: FieldDef or MemberRef.
type IField interface {
	isIField()
}

// IMethod is the sum type of things that can be used where a method is
// expected in an operand: MethodDef or MemberRef.
type IMethod interface {
	isIMethod()
}

func (*MemberRef) isIField()  {}
func (*MemberRef) isIMethod() {}

// FieldDef is a field defined within a module.
type FieldDef struct {
	Token            Token
	Module           *ModuleDef
	DeclaringType    *TypeDef
	Name             string
	Attributes       FieldAttributes
	Sig              *FieldSig
	RVA              uint32
	InitialValue     []byte
	Constant         *Constant
	MarshalType      MarshalType
	CustomAttributes []*CustomAttribute
}

func (*FieldDef) isIField() {}

// FieldAttributes mirrors the CLR FieldAttributes bits relevant to merging.
type FieldAttributes uint16

const (
	FieldAttrPublic FieldAttributes = 1 << iota
	FieldAttrStatic
	FieldAttrLiteral
	FieldAttrHasDefault
)

// Constant is a compile-time constant value attached to a field, param, or
// property.
type Constant struct {
	Type  ElementType
	Value interface{}
}

// MethodDef is a method defined within a module.
type MethodDef struct {
	Token             Token
	Module            *ModuleDef
	DeclaringType     *TypeDef
	Name              string
	Attributes        MethodAttributes
	ImplAttributes    MethodImplAttributes
	SemanticsAttributes MethodSemanticsAttributes
	Sig               *MethodSig
	Params            []*ParamDef
	GenericParameters []*GenericParam
	Overrides         []IMethod // explicit interface/virtual overrides
	ImplMap           *ImplMap
	CustomAttributes  []*CustomAttribute
	DeclSecurities    []*DeclSecurity
	Body              *CilBody // nil for extern/abstract methods
}

func (*MethodDef) isIMethod() {}

// MethodAttributes mirrors the CLR MethodAttributes bits relevant to merging.
type MethodAttributes uint16

const (
	MethodAttrPublic MethodAttributes = 1 << iota
	MethodAttrPrivate
	MethodAttrStatic
	MethodAttrVirtual
	MethodAttrFinal
	MethodAttrAbstract
	MethodAttrSpecialName
)

func (a MethodAttributes) IsStatic() bool  { return a&MethodAttrStatic != 0 }
func (a MethodAttributes) IsVirtual() bool { return a&MethodAttrVirtual != 0 }

// MethodImplAttributes mirrors the CLR MethodImplAttributes bits.
type MethodImplAttributes uint16

// MethodSemanticsAttributes records whether a method is a property/event
// accessor (getter/setter/adder/remover/raiser/other).
type MethodSemanticsAttributes uint16

const (
	SemanticsNone MethodSemanticsAttributes = iota
	SemanticsGetter
	SemanticsSetter
	SemanticsAdder
	SemanticsRemover
	SemanticsRaiser
	SemanticsOther
)

// ImplMap records a P/Invoke declaration for a method.
type ImplMap struct {
	Module     string
	EntryPoint string
	Attributes uint16
}

// ParamDef is a single formal parameter, including the implicit return
// parameter (sequence 0) when it carries custom attributes or marshal info.
type ParamDef struct {
	Token            Token
	Sequence         uint16
	Name             string
	Attributes       ParamAttributes
	Constant         *Constant
	MarshalType      MarshalType
	CustomAttributes []*CustomAttribute
}

// ParamAttributes mirrors the CLR ParamAttributes bits relevant to merging.
type ParamAttributes uint16

const (
	ParamAttrIn ParamAttributes = 1 << iota
	ParamAttrOut
	ParamAttrOptional
	ParamAttrHasDefault
)

// GenericParam is a single generic type or method parameter.
type GenericParam struct {
	Token            Token
	Number           uint16
	Name             string
	Constraints      []TypeDefOrRef
	CustomAttributes []*CustomAttribute
}

// PropertyDef is a property defined within a module.
type PropertyDef struct {
	Token            Token
	Module           *ModuleDef
	DeclaringType    *TypeDef
	Name             string
	Attributes       uint16
	Sig              *PropertySig
	GetMethod        *MethodDef
	SetMethod        *MethodDef
	OtherMethods     []*MethodDef
	Constant         *Constant
	CustomAttributes []*CustomAttribute
}

// EventDef is an event defined within a module.
type EventDef struct {
	Token            Token
	Module           *ModuleDef
	DeclaringType    *TypeDef
	Name             string
	Attributes       uint16
	EventType        TypeDefOrRef
	AddMethod        *MethodDef
	RemoveMethod     *MethodDef
	RaiseMethod      *MethodDef
	OtherMethods     []*MethodDef
	CustomAttributes []*CustomAttribute
}

// DeclSecurity is a declarative security permission set attached to a type
// or method.
type DeclSecurity struct {
	Action       uint16
	PermissionSet []byte
}

// CustomAttribute is either a raw blob (copied verbatim) or a structured
// constructor-call with arguments that must themselves be recursively
// imported.
type CustomAttribute struct {
	Constructor IMethod
	RawData     []byte // non-nil => copy verbatim, ignore ConstructorArgs/NamedArgs
	ConstructorArgs []CAArgument
	NamedArgs       []CANamedArgument
}

// CAArgument is a single positional custom-attribute argument. A value is
// either a primitive, a TypeSig (for `typeof(T)` arguments), a single nested
// CAArgument (boxed value), or a list of CAArgument (array argument).
type CAArgument struct {
	Type  TypeSig
	Value interface{}
}

// CANamedArgument is a named (field or property) custom-attribute argument.
type CANamedArgument struct {
	IsField bool
	Name    string
	Type    TypeSig
	Value   CAArgument
}

// MarshalType is the closed variant set for marshaling directives: Raw,
// FixedSysString, SafeArray, FixedArray, Array, Custom, Interface, Plain.
type MarshalType interface {
	isMarshalType()
}

// RawMarshalType carries an opaque native-type blob copied verbatim.
type RawMarshalType struct{ Data []byte }

func (*RawMarshalType) isMarshalType() {}

// FixedSysStringMarshalType marshals a fixed-size BSTR.
type FixedSysStringMarshalType struct{ Size int32 }

func (*FixedSysStringMarshalType) isMarshalType() {}

// SafeArrayMarshalType marshals a SAFEARRAY.
type SafeArrayMarshalType struct {
	ElementType int32
	UserDefinedSubType TypeDefOrRef
}

func (*SafeArrayMarshalType) isMarshalType() {}

// FixedArrayMarshalType marshals a fixed-size native array.
type FixedArrayMarshalType struct {
	Size        int32
	ElementType int32
}

func (*FixedArrayMarshalType) isMarshalType() {}

// ArrayMarshalType marshals a variable-size native array.
type ArrayMarshalType struct {
	ElementType      int32
	ParamNumber      int32
	NumElements      int32
	HasExtraInfo     bool
}

func (*ArrayMarshalType) isMarshalType() {}

// CustomMarshalType marshals via a user-provided ICustomMarshaler.
type CustomMarshalType struct {
	Guid          string
	NativeTypeName string
	CustomMarshaler TypeDefOrRef
	Cookie        string
}

func (*CustomMarshalType) isMarshalType() {}

// InterfaceMarshalType marshals a COM interface pointer.
type InterfaceMarshalType struct {
	IidParamIndex int32
}

func (*InterfaceMarshalType) isMarshalType() {}

// PlainMarshalType is a bare native type with no extra payload.
type PlainMarshalType struct{ NativeType int32 }

func (*PlainMarshalType) isMarshalType() {}
