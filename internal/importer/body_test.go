package importer

import (
	"testing"

	"github.com/managed-module/mmimport/internal/metadata"
)

// TestMapParametersStaticToggleIsRecoverable exercises the edited-method
// static-toggle path: a HasThis mismatch on the edited method raises the
// recoverable IM0009 diagnostic and mapParameters still succeeds, provided
// the post-skip parameter counts agree.
func TestMapParametersStaticToggleIsRecoverable(t *testing.T) {
	src := &metadata.MethodDef{
		Name:   "Run",
		Sig:    &metadata.MethodSig{HasThis: true},
		Params: []*metadata.ParamDef{{Sequence: 1, Name: "x"}},
	}
	target := &metadata.MethodDef{
		Name:   "Run",
		Sig:    &metadata.MethodSig{HasThis: false},
		Params: []*metadata.ParamDef{{Sequence: 1, Name: "x"}},
	}

	imp := New(metadata.NewModuleDef("Target", &metadata.AssemblyDef{Name: "Target"}))

	if err := imp.mapParameters(src, target, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(imp.result.Diagnostics) != 1 || imp.result.Diagnostics[0].Code != IM0009 {
		t.Fatalf("expected a single IM0009 diagnostic, got %+v", imp.result.Diagnostics)
	}
	if imp.result.Diagnostics[0].Fatal {
		t.Error("expected the static-toggle diagnostic to be recoverable, not Fatal")
	}
}

// TestMapParametersCountMismatchIsFatal drives a parameter-count mismatch
// that survives the this-skip: this must abort via IM0011, a distinct code
// and message from IM0009's static-toggle diagnostic above, not merely
// continue with a warning.
func TestMapParametersCountMismatchIsFatal(t *testing.T) {
	src := &metadata.MethodDef{
		Name: "Run",
		Sig:  &metadata.MethodSig{HasThis: true},
		Params: []*metadata.ParamDef{
			{Sequence: 1, Name: "x"},
			{Sequence: 2, Name: "y"},
		},
	}
	target := &metadata.MethodDef{
		Name:   "Run",
		Sig:    &metadata.MethodSig{HasThis: true},
		Params: []*metadata.ParamDef{{Sequence: 1, Name: "x"}},
	}

	imp := New(metadata.NewModuleDef("Target", &metadata.AssemblyDef{Name: "Target"}))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected mapParameters to panic on a surviving parameter-count mismatch")
		}
		ae, ok := r.(*abortError)
		if !ok {
			t.Fatalf("expected *abortError, got %T", r)
		}
		if ae.diagnostic.Code != IM0011 {
			t.Errorf("unexpected diagnostic code. want=%q have=%q", IM0011, ae.diagnostic.Code)
		}
		if !ae.diagnostic.Fatal {
			t.Error("expected the parameter-count-mismatch diagnostic to be tagged Fatal")
		}
	}()

	_ = imp.mapParameters(src, target, true)
}
