package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders v on a single line.
func Format(v Value) string {
	var b strings.Builder
	writeCompact(&b, v)
	return b.String()
}

func writeCompact(b *strings.Builder, v Value) {
	if v == nil {
		v = Empty
	}
	switch val := v.(type) {
	case TextValue:
		b.WriteString(val.Val)
	case NumberValue:
		b.WriteString(FormatNumber(val.Val))
	case DateValue:
		b.WriteString(val.Val)
	case EnumValue:
		b.WriteString(val.Val)
	case *ListValue:
		b.WriteByte('[')
		for idx, item := range val.Items {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeCompact(b, item)
		}
		b.WriteByte(']')
	case *DictValue:
		writeCompactRecord(b, val.Entries)
	case RefValue:
		b.WriteString(refString(val))
	case *EntityValue:
		b.WriteString(entityLabel(val))
		writeCompactRecord(b, val.Fields)
		if val.Props.Len() > 0 {
			b.WriteString(" +")
			writeCompactRecord(b, val.Props)
		}
		if val.Reserved != nil && !IsEmpty(val.Reserved) {
			b.WriteString(" __ ")
			writeCompact(b, val.Reserved)
		}
	case EmptyValue:
		b.WriteString("Empty")
	default:
		fmt.Fprintf(b, "<%s>", v.Kind())
	}
}

func writeCompactRecord(b *strings.Builder, r *Record) {
	b.WriteByte('{')
	for idx := 0; idx < r.Len(); idx++ {
		key, val, _ := r.At(idx)
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		writeCompact(b, val)
	}
	b.WriteByte('}')
}

// Inspect renders v across multiple lines with one entry per line.
func Inspect(v Value) string {
	var b strings.Builder
	writeInspect(&b, v, 0)
	return b.String()
}

func writeInspect(b *strings.Builder, v Value, depth int) {
	switch val := v.(type) {
	case *ListValue:
		if len(val.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for idx, item := range val.Items {
			indent(b, depth+1)
			b.WriteString(strconv.Itoa(idx + 1))
			b.WriteString(": ")
			writeInspect(b, item, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	case *DictValue:
		writeInspectRecord(b, val.Entries, "", depth, true)
	case *EntityValue:
		b.WriteString(entityLabel(val))
		b.WriteByte(' ')
		if val.Fields.Len() == 0 && val.Props.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		writeInspectRecord(b, val.Fields, "", depth+1, false)
		writeInspectRecord(b, val.Props, "+", depth+1, false)
		indent(b, depth)
		b.WriteByte('}')
	default:
		writeCompact(b, v)
	}
}

func writeInspectRecord(b *strings.Builder, r *Record, prefix string, depth int, braces bool) {
	if braces {
		if r.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		depth++
	}
	width := 0
	for _, key := range r.Keys() {
		if len(key) > width {
			width = len(key)
		}
	}
	for idx := 0; idx < r.Len(); idx++ {
		key, val, _ := r.At(idx)
		indent(b, depth)
		b.WriteString(prefix)
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(strings.Repeat(" ", width-len(key)+1))
		writeInspect(b, val, depth)
		b.WriteByte('\n')
	}
	if braces {
		indent(b, depth-1)
		b.WriteByte('}')
	}
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func entityLabel(e *EntityValue) string {
	return "%" + e.TypeName
}

func refString(r RefValue) string {
	var b strings.Builder
	b.WriteByte(r.Scope.Leader())
	b.WriteString(r.Name)
	for _, key := range r.Path {
		b.WriteByte('.')
		b.WriteString(key)
	}
	return b.String()
}

func (v RefValue) String() string { return refString(v) }
