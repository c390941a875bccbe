// Package metadata models the closed vocabulary of a .NET-style metadata
// reader/writer library: modules, type/member descriptors, signature trees,
// and CIL method bodies. It is a stand-in for a binary metadata
// reader/writer library: it does not parse or emit the binary module
// format, it only gives the importer something to operate on.
package metadata

import "fmt"

// Token is a row identity within a module, analogous to a metadata token.
// Tokens are allocated per module, so a token identifies a row only within
// the module that allocated it.
type Token uint32

// RowAllocator hands out fresh, monotonically increasing row identities for
// a module. Every ModuleDef owns exactly one.
type RowAllocator struct {
	next Token
}

// UpdateRowId allocates and returns the next free token for this module.
func (a *RowAllocator) UpdateRowId() Token {
	a.next++
	return a.next
}

// ModuleDef is a loaded module: either the source module produced by the
// compiler, or the target module receiving the import.
type ModuleDef struct {
	Name     string
	Assembly *AssemblyDef

	rows  RowAllocator
	Types []*TypeDef // top-level types only; nested types hang off TypeDef.NestedTypes

	GlobalType *TypeDef // the "<Module>" type holding compiler-global members

	Corlib *CorlibTypes
}

// AssemblyDef identifies an assembly by its four-part strong name.
type AssemblyDef struct {
	Name            string
	Version         string
	Culture         string
	PublicKeyToken  string
}

// FullName returns the strong name used for assembly-reference equality.
func (a *AssemblyDef) FullName() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", a.Name, a.Version, a.Culture, a.PublicKeyToken)
}

// NextToken allocates a new row identity in this module.
func (m *ModuleDef) NextToken() Token {
	return m.rows.UpdateRowId()
}

// ResolutionScope is the sum type of places a TypeRef can be scoped to:
// an AssemblyRef, a ModuleRef, or a ModuleDef.
type ResolutionScope interface {
	isResolutionScope()
}

// AssemblyRef is a reference to an external assembly by strong name.
type AssemblyRef struct {
	Name           string
	Version        string
	Culture        string
	PublicKeyToken string
}

func (*AssemblyRef) isResolutionScope() {}

// FullName returns the strong name used for assembly-reference equality.
func (r *AssemblyRef) FullName() string {
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", r.Name, r.Version, r.Culture, r.PublicKeyToken)
}

// ModuleRef is a reference to another module within the same assembly.
type ModuleRef struct {
	Name string
}

func (*ModuleRef) isResolutionScope() {}

func (*ModuleDef) isResolutionScope() {}

// TypeRefScope is the scope of a TypeRef: either a ResolutionScope (for an
// outermost TypeRef) or an enclosing TypeRef (for a nested TypeRef).
type TypeRefScope interface {
	isTypeRefScope()
}

func (*AssemblyRef) isTypeRefScope() {}
func (*ModuleRef) isTypeRefScope()   {}
func (*ModuleDef) isTypeRefScope()   {}
func (*TypeRef) isTypeRefScope()     {}

// TypeDefOrRef is the sum type of things a signature or instruction operand
// can name as a type: TypeDef, TypeRef, or TypeSpec.
type TypeDefOrRef interface {
	isTypeDefOrRef()
}

// TypeDef is a type defined within a module.
type TypeDef struct {
	Token       Token
	Module      *ModuleDef
	Namespace   string
	Name        string
	IsGlobal    bool // the "<Module>" pseudo-type holding compiler-global members
	Attributes  TypeAttributes

	EnclosingType *TypeDef // nil for top-level types
	NestedTypes   []*TypeDef

	Fields     []*FieldDef
	Methods    []*MethodDef
	Properties []*PropertyDef
	Events     []*EventDef

	Interfaces        []InterfaceImpl
	GenericParameters []*GenericParam
	CustomAttributes  []*CustomAttribute
	ClassLayout       *ClassLayout
	BaseType          TypeDefOrRef
}

func (*TypeDef) isTypeDefOrRef()   {}
func (*TypeDef) isTypeRefScope()   {}

// TypeAttributes mirrors a subset of CLR TypeAttributes relevant to merging.
type TypeAttributes uint32

const (
	TypeAttrPublic TypeAttributes = 1 << iota
	TypeAttrSealed
	TypeAttrAbstract
	TypeAttrInterface
)

// InterfaceImpl records that a type implements an interface.
type InterfaceImpl struct {
	Interface        TypeDefOrRef
	CustomAttributes []*CustomAttribute
}

// ClassLayout carries explicit layout packing/size information.
type ClassLayout struct {
	PackingSize uint16
	ClassSize   uint32
}

// TypeRef is a reference to a type defined in another module or assembly.
type TypeRef struct {
	Token     Token
	Module    *ModuleDef // the module that owns this reference row
	Scope     TypeRefScope
	Namespace string
	Name      string

	CustomAttributes []*CustomAttribute
}

func (*TypeRef) isTypeDefOrRef() {}

// TypeSpec is a type signature used where a TypeDefOrRef is required, e.g.
// generic instantiations and arrays.
type TypeSpec struct {
	Token  Token
	Module *ModuleDef
	Sig    TypeSig
}

func (*TypeSpec) isTypeDefOrRef() {}
