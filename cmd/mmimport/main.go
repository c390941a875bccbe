// The program mmimport drives internal/importer.Import from two
// JSON-encoded module fixtures. It is a development/test harness, not
// part of the core importer surface.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/hashicorp/go-multierror"

	"github.com/managed-module/mmimport/internal/fixture"
	"github.com/managed-module/mmimport/internal/importer"
	"github.com/managed-module/mmimport/internal/metadata"
	"github.com/managed-module/mmimport/internal/progress"
	"github.com/managed-module/mmimport/internal/report"
	"github.com/managed-module/mmimport/log"
)

const version = "0.1.0"

func init() {
	log.SetLevel(log.Info)
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func realMain() error {
	var (
		targetPath   string
		sourcePath   string
		editedMethod string
		debugFormat  string
		reportPath   string
		verbose      bool
	)

	app := kingpin.New("mmimport", "mmimport replaces one method's body in a target module with its recompiled source module.").Version(version)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')

	app.Flag("target", "Path to the target module JSON fixture.").Required().StringVar(&targetPath)
	app.Flag("source", "Path to the source (recompiled) module JSON fixture.").Required().StringVar(&sourcePath)
	app.Flag("edited-method", "The edited method, as Namespace.Type::Method.").Required().StringVar(&editedMethod)
	app.Flag("debug-file", "Debug-information format of the source module: none, pdb, portable-pdb, embedded.").Default("none").StringVar(&debugFormat)
	app.Flag("report", "Write a Markdown import report to this path.").StringVar(&reportPath)
	app.Flag("verbose", "Print elapsed-time detail for the import.").Short('V').BoolVar(&verbose)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	target, err := loadModule(targetPath)
	if err != nil {
		return err
	}
	source, err := loadModule(sourcePath)
	if err != nil {
		return err
	}

	targetMethod, err := findMethod(target, editedMethod)
	if err != nil {
		return err
	}

	format, err := parseDebugFormat(debugFormat)
	if err != nil {
		return err
	}

	var result *importer.ImportResult
	start := time.Now()
	progress.WithProgress("importing", func() {
		result = importer.New(target).Import(source, metadata.DebugFile{Format: format}, targetMethod)
	}, progress.Options{Verbosity: verboseOutput(verbose), ShowAnimations: true})

	if verbose {
		log.Infof("import finished in %s", time.Since(start))
	}

	reportDiagnostics(result)

	if reportPath != "" {
		if err := os.WriteFile(reportPath, []byte(report.Render(result)), 0644); err != nil {
			return fmt.Errorf("write report: %v", err)
		}
	}

	if result.Failed() {
		return fmt.Errorf("import failed")
	}

	fmt.Printf("%d new type(s), %d merged type(s)\n", len(result.NewNonNestedTypes), len(result.MergedNonNestedTypes))
	return nil
}

func loadModule(path string) (*metadata.ModuleDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", path, err)
	}
	defer f.Close()

	mod, err := fixture.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %v", path, err)
	}
	return mod, nil
}

// findMethod resolves "Namespace.Type::Method" (optionally
// "Namespace.Outer+Inner::Method" for nested types) against a module's
// top-level and nested types.
func findMethod(mod *metadata.ModuleDef, ref string) (*metadata.MethodDef, error) {
	typeName, methodName, ok := splitMethodRef(ref)
	if !ok {
		return nil, fmt.Errorf("invalid --edited-method %q, expected Type::Method", ref)
	}

	var found *metadata.MethodDef
	var visit func(t *metadata.TypeDef, qualified string)
	visit = func(t *metadata.TypeDef, qualified string) {
		name := qualified
		if name != "" {
			name += "+"
		}
		name += t.Name
		full := name
		if t.Namespace != "" {
			full = t.Namespace + "." + name
		}
		if full == typeName || name == typeName {
			for _, m := range t.Methods {
				if m.Name == methodName {
					found = m
				}
			}
		}
		for _, nested := range t.NestedTypes {
			visit(nested, name)
		}
	}

	for _, t := range mod.Types {
		visit(t, "")
	}

	if found == nil {
		return nil, fmt.Errorf("method %q not found in target module", ref)
	}
	return found, nil
}

func splitMethodRef(ref string) (typeName, methodName string, ok bool) {
	i := strings.LastIndex(ref, "::")
	if i < 0 {
		return "", "", false
	}
	return ref[:i], ref[i+2:], true
}

func parseDebugFormat(s string) (metadata.DebugFormat, error) {
	switch s {
	case "none":
		return metadata.DebugFormatNone, nil
	case "pdb":
		return metadata.DebugFormatPdb, nil
	case "portable-pdb":
		return metadata.DebugFormatPortablePdb, nil
	case "embedded":
		return metadata.DebugFormatEmbedded, nil
	default:
		return 0, fmt.Errorf("unknown --debug-file format %q", s)
	}
}

// reportDiagnostics prints every diagnostic through log and, when any are
// errors, folds them into one aggregate error via go-multierror purely to
// print a single combined summary line. Recoverable error diagnostics do
// not by themselves fail the CLI call; only result.Failed() does.
func reportDiagnostics(result *importer.ImportResult) {
	var errs *multierror.Error
	for _, d := range result.Diagnostics {
		if d.Severity == importer.SeverityError {
			log.Infof("error [%s]: %s", d.Code, d.Message)
			errs = multierror.Append(errs, fmt.Errorf("%s: %s", d.Code, d.Message))
		} else {
			log.Infof("warning [%s]: %s", d.Code, d.Message)
		}
	}
	if errs != nil {
		log.Infof("%d diagnostic(s) reported: %s", len(errs.Errors), errs)
	}
}

func verboseOutput(v bool) progress.Verbosity {
	if v {
		return progress.VerboseOutput
	}
	return progress.DefaultOutput
}
