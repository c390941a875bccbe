package importer

import "fmt"

// Severity classifies a Diagnostic as an error or a warning.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Code is a stable diagnostic identifier, IM0001 through IM0013.
type Code string

const (
	IM0001 Code = "IM0001" // could not find declaring type of edited method in source
	IM0002 Code = "IM0002" // could not find the edited method in source
	IM0003 Code = "IM0003" // could not resolve a type reference targeting the target module
	IM0004 Code = "IM0004" // could not find a referenced method in either module
	IM0005 Code = "IM0005" // could not find a referenced field in either module
	IM0006 Code = "IM0006" // renaming a virtual property is not supported
	IM0007 Code = "IM0007" // renaming a virtual event is not supported
	IM0008 Code = "IM0008" // renaming a virtual method is not supported
	IM0009 Code = "IM0009" // toggling static on the edited method is not supported
	IM0010 Code = "IM0010" // unsupported debug-information format
	IM0011 Code = "IM0011" // parameter count mismatch remains after skipping the implicit this parameter
	IM0012 Code = "IM0012" // exhausted the rename-scheme search for a free name
	IM0013 Code = "IM0013" // a TypeRef's scope chain exceeded the recursion limit
)

// messages holds the unformatted template for each code. Formatting is
// applied by the caller.
var messages = map[Code]string{
	IM0001: "could not find the declaring type of the edited method %q in the source module",
	IM0002: "could not find the edited method %q in the source module",
	IM0003: "could not resolve type reference %s.%s against the target module",
	IM0004: "could not find referenced method %q in either module",
	IM0005: "could not find referenced field %q in either module",
	IM0006: "renaming virtual property %q is not supported",
	IM0007: "renaming virtual event %q is not supported",
	IM0008: "renaming virtual method %q is not supported",
	IM0009: "toggling static on edited method %q is not supported",
	IM0010: "unsupported debug-information format %v",
	IM0011: "method %q has a different parameter count than its target counterpart after skipping the implicit this parameter",
	IM0012: "could not find a free name for %q after exhausting the rename-scheme search",
	IM0013: "could not resolve type reference %s.%s: scope chain exceeded the recursion limit",
}

// Diagnostic is a single recoverable or fatal record produced during an
// import. It is never swallowed: every code path that
// detects a problem appends one before continuing or aborting. Fatal is
// set on the one diagnostic that aborted the call (see fatal and
// errInvariant in errors.go); ImportResult.Failed reports true iff such a
// diagnostic is present, regardless of its Code.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Line     int
	Fatal    bool
}

// newDiagnostic formats a Diagnostic from its code template and arguments.
func newDiagnostic(severity Severity, code Code, args ...interface{}) Diagnostic {
	template, ok := messages[code]
	if !ok {
		template = string(code)
	}
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  fmt.Sprintf(template, args...),
	}
}

func errorDiagnostic(code Code, args ...interface{}) Diagnostic {
	return newDiagnostic(SeverityError, code, args...)
}

func warningDiagnostic(code Code, args ...interface{}) Diagnostic {
	return newDiagnostic(SeverityWarning, code, args...)
}
