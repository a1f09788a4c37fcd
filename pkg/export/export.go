// Package export renders an evaluated Document as text, YAML or JSON.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/runtime"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name; the empty string selects text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("export: unsupported format %q", name)
}

// Write encodes doc to w.
func Write(w io.Writer, doc *interpreter.Document, format Format) error {
	if doc == nil {
		return fmt.Errorf("export: nil document")
	}
	switch format {
	case FormatYAML:
		return WriteYAML(w, doc)
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatText, "":
		return WriteText(w, doc)
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
}

// WriteText writes a human readable listing of doc.
func WriteText(w io.Writer, doc *interpreter.Document) error {
	var b strings.Builder
	if names := doc.TypeNames(); len(names) > 0 {
		b.WriteString("# typedefs\n")
		for _, name := range names {
			b.WriteString(TypeSignature(doc.Typedefs[name]))
			b.WriteByte('\n')
		}
	}
	writeBindings(&b, "# globals", "#", doc.GlobalNames(), doc.Globals)
	writeBindings(&b, "# locals", "@", doc.LocalNames(), doc.Locals)
	if len(doc.Results) > 0 {
		b.WriteString("# results\n")
		for idx, res := range doc.Results {
			fmt.Fprintf(&b, "%d: %s\n", idx+1, runtime.Format(res))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBindings(b *strings.Builder, header, leader string, names []string, values map[string]runtime.Value) {
	if len(names) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteByte('\n')
	for _, name := range names {
		fmt.Fprintf(b, "%s%s = %s\n", leader, name, runtime.Format(values[name]))
	}
}

// TypeSignature renders a TypeDef as %Name(param: Kind, ...).
func TypeSignature(td *runtime.TypeDef) string {
	parts := make([]string, 0, len(td.Params))
	for idx, param := range td.Params {
		parts = append(parts, param+": "+kindLabel(td, idx))
	}
	sig := "%" + td.Name + "(" + strings.Join(parts, ", ") + ")"
	if td.Reserved != nil && !runtime.IsEmpty(td.Reserved) {
		sig += " __ = " + runtime.Format(td.Reserved)
	}
	return sig
}

func kindLabel(td *runtime.TypeDef, idx int) string {
	if nested := td.NestedType(td.Params[idx]); nested != "" {
		return nested
	}
	return td.KindOf(idx).String()
}
