package importer

import "github.com/managed-module/mmimport/internal/metadata"

// importBody rebuilds target's CIL body from src's. target
// may be the freshly allocated counterpart of src (the common case, for
// every newly imported method) or a pre-existing target method receiving
// the edited method's replacement body (isEditedMethod is true in that
// case, and a static-ness difference between source and target is then
// reported as IM0009).
func (imp *Importer) importBody(src, target *metadata.MethodDef, isEditedMethod bool) {
	if src.Body == nil {
		target.Body = nil
		return
	}

	body := &metadata.CilBody{
		KeepOldMaxStack: src.Body.KeepOldMaxStack,
		InitLocals:      src.Body.InitLocals,
		HeaderSize:      src.Body.HeaderSize,
		MaxStack:        src.Body.MaxStack,
		LocalVarSigTok:  src.Body.LocalVarSigTok,
	}

	// Clear the scratch map at the start of every body.
	for k := range imp.maps.bodyDict {
		delete(imp.maps.bodyDict, k)
	}

	body.Variables = make([]*metadata.Local, len(src.Body.Variables))
	for i, l := range src.Body.Variables {
		newLocal := &metadata.Local{
			Token: imp.target.NextToken(),
			Name:  l.Name,
			Type:  imp.importTypeSig(l.Type),
		}
		body.Variables[i] = newLocal
		imp.maps.bodyDict[l] = newLocal
	}

	if err := imp.mapParameters(src, target, isEditedMethod); err != nil {
		panic(err)
	}

	body.Instructions = make([]*metadata.Instruction, len(src.Body.Instructions))
	for i, instr := range src.Body.Instructions {
		newInstr := &metadata.Instruction{
			OpCode:        instr.OpCode,
			Operand:       instr.Operand,
			Offset:        instr.Offset,
			SequencePoint: cloneSequencePoint(instr.SequencePoint),
		}
		body.Instructions[i] = newInstr
		imp.maps.bodyDict[instr] = newInstr
	}

	body.ExceptionHandlers = make([]*metadata.ExceptionHandler, len(src.Body.ExceptionHandlers))
	for i, eh := range src.Body.ExceptionHandlers {
		body.ExceptionHandlers[i] = &metadata.ExceptionHandler{
			Type:         eh.Type,
			TryStart:     imp.mappedInstruction(eh.TryStart),
			TryEnd:       imp.mappedInstruction(eh.TryEnd),
			FilterStart:  imp.mappedInstruction(eh.FilterStart),
			HandlerStart: imp.mappedInstruction(eh.HandlerStart),
			HandlerEnd:   imp.mappedInstruction(eh.HandlerEnd),
			CatchType:    imp.resolveTypeDefOrRef(eh.CatchType),
		}
	}

	// Second pass: translate operands now that locals, params, and
	// instructions are all registered in bodyDict.
	for _, instr := range body.Instructions {
		instr.Operand = imp.translateOperand(instr.OpCode, instr.Operand)
	}

	target.Body = body
}

func (imp *Importer) mappedInstruction(i *metadata.Instruction) *metadata.Instruction {
	if i == nil {
		return nil
	}
	mapped, _ := imp.maps.bodyDict[i].(*metadata.Instruction)
	return mapped
}

func cloneSequencePoint(sp *metadata.SequencePoint) *metadata.SequencePoint {
	if sp == nil {
		return nil
	}
	cp := *sp
	return &cp
}

// mapParameters skips the implicit `this` on either side independently,
// requiring the parameter counts to match after skipping. Source and
// target may differ in static-ness without a diagnostic only when
// isEditedMethod is false; for the
// edited method itself a static-ness mismatch raises the recoverable
// IM0009 diagnostic, and body import still proceeds. A parameter-count
// mismatch that survives the this-skip is a distinct, Fatal condition
// (IM0011): the body cannot be remapped at all, unlike a mere
// static-ness toggle.
func (imp *Importer) mapParameters(src, target *metadata.MethodDef, isEditedMethod bool) error {
	srcHasThis := src.Sig != nil && src.Sig.HasThis
	targetHasThis := target.Sig != nil && target.Sig.HasThis

	if srcHasThis != targetHasThis && isEditedMethod {
		imp.addDiagnostic(errorDiagnostic(IM0009, src.Name))
	}

	srcParams := skipThisParam(src.Params, srcHasThis)
	targetParams := skipThisParam(target.Params, targetHasThis)

	if len(srcParams) != len(targetParams) {
		fatal(IM0011, src.Name)
	}

	for i, sp := range srcParams {
		imp.maps.bodyDict[sp] = targetParams[i]
	}

	return nil
}

// skipThisParam returns params without its leading implicit-this entry,
// when the signature declares HasThis. This repository's ParamDef list
// never carries a synthetic "this" entry itself (sequence 0 is the return
// parameter slot when present); hasThis only affects how callers count
// argument positions, so this is a direct passthrough kept as a named step
// to keep the "skip the implicit this" step visible as its own function.
func skipThisParam(params []*metadata.ParamDef, _ bool) []*metadata.ParamDef {
	return params
}

// translateOperand substitutes via
// bodyDict when possible, recurse over branch tables, otherwise dispatch
// on the opcode's declared operand kind, leaving primitive constants
// intact.
func (imp *Importer) translateOperand(op metadata.OpCode, operand interface{}) interface{} {
	if operand == nil {
		return nil
	}

	if mapped, ok := imp.maps.bodyDict[operand]; ok {
		return mapped
	}

	if targets, ok := operand.([]*metadata.Instruction); ok {
		translated := make([]*metadata.Instruction, len(targets))
		for i, t := range targets {
			translated[i] = imp.mappedInstruction(t)
		}
		return translated
	}

	switch op.OperandKind {
	case metadata.OperandType:
		if t, ok := operand.(metadata.TypeDefOrRef); ok {
			return imp.resolveTypeDefOrRef(t)
		}
	case metadata.OperandMethod:
		if m, ok := operand.(metadata.IMethod); ok {
			return imp.resolveIMethod(m)
		}
	case metadata.OperandField:
		if f, ok := operand.(metadata.IField); ok {
			return imp.resolveIField(f)
		}
	case metadata.OperandMethodSig:
		if sig, ok := operand.(*metadata.MethodSig); ok {
			return imp.importMethodSig(sig)
		}
	}

	// Primitive constant (byte, int, long, float, double, string) or an
	// operand kind we have nothing special to do for: left intact.
	return operand
}
