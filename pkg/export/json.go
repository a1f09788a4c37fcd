package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mtaka/STN-Core/pkg/interpreter"
	"github.com/mtaka/STN-Core/pkg/runtime"
)

// WriteJSON writes doc as indented JSON. Object keys keep evaluation order,
// so the document is assembled by hand rather than through maps.
func WriteJSON(w io.Writer, doc *interpreter.Document) error {
	var buf bytes.Buffer
	buf.WriteString(`{"typedefs":{`)
	for idx, name := range doc.TypeNames() {
		if idx > 0 {
			buf.WriteByte(',')
		}
		td := doc.Typedefs[name]
		writeString(&buf, name)
		buf.WriteString(`:{"params":{`)
		for pidx, param := range td.Params {
			if pidx > 0 {
				buf.WriteByte(',')
			}
			writeString(&buf, param)
			buf.WriteByte(':')
			writeString(&buf, kindLabel(td, pidx))
		}
		buf.WriteByte('}')
		if td.Reserved != nil && !runtime.IsEmpty(td.Reserved) {
			buf.WriteString(`,"reserved":`)
			writeValue(&buf, td.Reserved)
		}
		buf.WriteByte('}')
	}
	buf.WriteString(`},"globals":`)
	writeBindingsJSON(&buf, doc.GlobalNames(), doc.Globals)
	buf.WriteString(`,"locals":`)
	writeBindingsJSON(&buf, doc.LocalNames(), doc.Locals)
	buf.WriteString(`,"results":[`)
	for idx, res := range doc.Results {
		if idx > 0 {
			buf.WriteByte(',')
		}
		writeValue(&buf, res)
	}
	buf.WriteString("]}")

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return fmt.Errorf("export: indent json: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func writeBindingsJSON(buf *bytes.Buffer, names []string, values map[string]runtime.Value) {
	buf.WriteByte('{')
	for idx, name := range names {
		if idx > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, name)
		buf.WriteByte(':')
		writeValue(buf, values[name])
	}
	buf.WriteByte('}')
}

// writeValue emits one value. Entities are {"type", "fields", "props"}
// objects and references are {"ref": "#name"}.
func writeValue(buf *bytes.Buffer, v runtime.Value) {
	if v == nil {
		v = runtime.Empty
	}
	switch val := v.(type) {
	case runtime.TextValue:
		writeString(buf, val.Val)
	case runtime.NumberValue:
		data, err := json.Marshal(val.Val)
		if err != nil {
			buf.WriteString("null")
			return
		}
		buf.Write(data)
	case runtime.DateValue:
		writeString(buf, val.Val)
	case runtime.EnumValue:
		writeString(buf, val.Val)
	case *runtime.ListValue:
		buf.WriteByte('[')
		for idx, item := range val.Items {
			if idx > 0 {
				buf.WriteByte(',')
			}
			writeValue(buf, item)
		}
		buf.WriteByte(']')
	case *runtime.DictValue:
		writeRecord(buf, val.Entries)
	case runtime.RefValue:
		buf.WriteString(`{"ref":`)
		writeString(buf, val.String())
		buf.WriteByte('}')
	case *runtime.EntityValue:
		buf.WriteString(`{"type":`)
		writeString(buf, val.TypeName)
		buf.WriteString(`,"fields":`)
		writeRecord(buf, val.Fields)
		buf.WriteString(`,"props":`)
		writeRecord(buf, val.Props)
		if val.Reserved != nil && !runtime.IsEmpty(val.Reserved) {
			buf.WriteString(`,"reserved":`)
			writeValue(buf, val.Reserved)
		}
		buf.WriteByte('}')
	case runtime.EmptyValue:
		buf.WriteString("null")
	default:
		writeString(buf, fmt.Sprintf("<%s>", v.Kind()))
	}
}

func writeRecord(buf *bytes.Buffer, r *runtime.Record) {
	buf.WriteByte('{')
	for idx := 0; idx < r.Len(); idx++ {
		key, val, _ := r.At(idx)
		if idx > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, key)
		buf.WriteByte(':')
		writeValue(buf, val)
	}
	buf.WriteByte('}')
}

func writeString(buf *bytes.Buffer, s string) {
	data, _ := json.Marshal(s)
	buf.Write(data)
}
