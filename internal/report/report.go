// Package report renders a completed import result as Markdown for
// humans reviewing an import, independent of the import algorithm itself.
package report

import (
	"bytes"
	"fmt"
	"strings"

	doc "github.com/slimsag/godocmd"

	"github.com/managed-module/mmimport/internal/importer"
	"github.com/managed-module/mmimport/internal/metadata"
)

// Render writes a Markdown summary of result: new top-level types, merged
// types with their new/renamed members, and the diagnostic list.
func Render(result *importer.ImportResult) string {
	var buf bytes.Buffer

	status := "succeeded"
	if result.Failed() {
		status = "failed"
	}
	fmt.Fprintf(&buf, "# Import %s\n\n", status)

	if len(result.NewNonNestedTypes) > 0 {
		fmt.Fprintf(&buf, "## New types\n\n")
		for _, t := range result.NewNonNestedTypes {
			renderNewType(&buf, t, 0)
		}
		fmt.Fprintln(&buf)
	}

	if len(result.MergedNonNestedTypes) > 0 {
		fmt.Fprintf(&buf, "## Merged types\n\n")
		for _, t := range result.MergedNonNestedTypes {
			renderMergedType(&buf, t)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(&buf, "## Diagnostics\n\n")
		for _, d := range result.Diagnostics {
			renderDiagnostic(&buf, d)
		}
	}

	return buf.String()
}

func renderNewType(buf *bytes.Buffer, t *importer.NewImportedType, depth int) {
	name := qualifiedName(t.Target)
	if t.Renamed != "" {
		fmt.Fprintf(buf, "%s- `%s` (renamed from `%s`)\n", strings.Repeat("  ", depth), name, t.Source.Name)
	} else {
		fmt.Fprintf(buf, "%s- `%s`\n", strings.Repeat("  ", depth), name)
	}
}

func renderMergedType(buf *bytes.Buffer, t *importer.MergedImportedType) {
	fmt.Fprintf(buf, "### `%s`\n\n", qualifiedName(t.Target))

	for _, f := range t.NewFields {
		fmt.Fprintf(buf, "- new field `%s`\n", f.Name)
	}
	for _, m := range t.NewMethods {
		fmt.Fprintf(buf, "- new method `%s`\n", m.Name)
	}
	for _, p := range t.NewProperties {
		fmt.Fprintf(buf, "- new property `%s`\n", p.Name)
	}
	for _, e := range t.NewEvents {
		fmt.Fprintf(buf, "- new event `%s`\n", e.Name)
	}
	for _, eb := range t.EditedMethodBodies {
		fmt.Fprintf(buf, "- edited method body `%s`\n", eb.TargetMethod.Name)
	}
	for _, nested := range t.NewNestedTypes {
		switch n := nested.(type) {
		case *importer.NewImportedType:
			renderNewType(buf, n, 1)
		case *importer.MergedImportedType:
			renderMergedType(buf, n)
		}
	}
	fmt.Fprintln(buf)
}

func renderDiagnostic(buf *bytes.Buffer, d importer.Diagnostic) {
	severity := "warning"
	if d.Severity == importer.SeverityError {
		severity = "error"
	}
	fmt.Fprintf(buf, "- **%s** [%s] %s\n", severity, d.Code, godocToMarkdown(d.Message))
}

func qualifiedName(t *metadata.TypeDef) string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// godocToMarkdown passes free-text through a Go-doc-to-Markdown renderer
// so diagnostic prose gets consistent paragraph/link handling, even though
// these messages are plain sentences rather than Go doc comments.
func godocToMarkdown(text string) string {
	var out bytes.Buffer
	doc.ToMarkdown(&out, text, nil)
	return strings.TrimSpace(out.String())
}
