package metadata

// CilBody is a method's instruction stream, locals, and exception handlers.
type CilBody struct {
	KeepOldMaxStack bool
	InitLocals      bool
	HeaderSize      byte
	MaxStack        uint16
	LocalVarSigTok  Token

	Variables         []*Local
	Instructions      []*Instruction
	ExceptionHandlers []*ExceptionHandler
}

// Local is a single local variable slot.
type Local struct {
	Token Token
	Name  string
	Type  TypeSig
}

// OpCode is a CIL opcode. Only the fields the Body Importer needs to
// classify an instruction's operand kind are modeled.
type OpCode struct {
	Name        string
	OperandKind OperandKind
}

// OperandKind classifies what an Instruction.Operand holds, driving the
// second-pass operand translation dispatch.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandInt64
	OperandFloat
	OperandDouble
	OperandString
	OperandBranchTarget
	OperandBranchTargets // switch instruction: operand is []*Instruction
	OperandLocal
	OperandParam
	OperandType     // TypeDefOrRef
	OperandMethod   // IMethod
	OperandField    // IField
	OperandMethodSig // calli
)

// Instruction is a single CIL instruction: an opcode, a decoded operand, its
// byte offset, and an optional cloned sequence point.
type Instruction struct {
	OpCode       OpCode
	Operand      interface{}
	Offset       uint32
	SequencePoint *SequencePoint
}

// SequencePoint is a PDB-derived source mapping for one instruction.
type SequencePoint struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
	DocumentURL            string
}

// ExceptionHandler describes one try/handler/filter region.
type ExceptionHandler struct {
	Type         ExceptionHandlerType
	TryStart     *Instruction
	TryEnd       *Instruction
	FilterStart  *Instruction
	HandlerStart *Instruction
	HandlerEnd   *Instruction
	CatchType    TypeDefOrRef // only meaningful when Type == EHCatch
}

// ExceptionHandlerType distinguishes catch/filter/finally/fault regions.
type ExceptionHandlerType int

const (
	EHCatch ExceptionHandlerType = iota
	EHFilter
	EHFinally
	EHFault
)

// DebugFormat enumerates the debug-information container formats a source
// module may carry.
type DebugFormat int

const (
	DebugFormatNone DebugFormat = iota
	DebugFormatPdb
	DebugFormatPortablePdb
	DebugFormatEmbedded
)

// DebugFile is the symbol input accompanying a source module. Only None
// and Pdb are supported; PortablePdb and Embedded fail fast.
type DebugFile struct {
	Format  DebugFormat
	RawFile []byte
}
