package importer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ImporterAborted is the sentinel raised for Fatal conditions. It is
// never returned directly to a caller of the public Import entry point;
// the Orchestrator catches it and converts it into a failed ImportResult
// carrying the accumulated diagnostics.
var ImporterAborted = errors.New("importer: aborted")

// abortError pairs the sentinel with the diagnostic that triggered it, so
// the Orchestrator's recover site can both satisfy errors.Is(err,
// ImporterAborted) and report the diagnostic the usual way.
type abortError struct {
	diagnostic Diagnostic
	cause      error
}

func (e *abortError) Error() string {
	return fmt.Sprintf("%s: %s", e.diagnostic.Code, e.diagnostic.Message)
}

func (e *abortError) Unwrap() error { return ImporterAborted }

func (e *abortError) Is(target error) bool { return target == ImporterAborted }

// fatal raises a Fatal condition: it records a
// diagnostic tagged Fatal and panics with an *abortError, caught by the
// Orchestrator's top-level recover. ImportResult.Failed derives solely
// from this tag, not from the diagnostic's Code, so every fatal path goes
// through here (or errInvariant) rather than addDiagnostic.
func fatal(code Code, args ...interface{}) {
	d := errorDiagnostic(code, args...)
	d.Fatal = true
	panic(&abortError{diagnostic: d})
}

// errInvariant signals an Invariant Violation:
// something that should never happen at runtime. Callers treat it as
// fatal, so it panics through the same abort path with an internal-error
// diagnostic carrying no public code.
func errInvariant(format string, args ...interface{}) error {
	err := errors.Errorf("internal error: "+format, args...)
	panic(&abortError{
		diagnostic: Diagnostic{Severity: SeverityError, Code: "", Message: err.Error(), Fatal: true},
		cause:      err,
	})
}
