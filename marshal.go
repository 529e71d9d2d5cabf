package jsonedit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalOption configures Marshal and MarshalYAML.
type MarshalOption func(*encodeOpts)

type encodeOpts struct {
	indent    int
	indentSeq bool
}

// Indent sets the number of spaces per nesting level. 0 produces compact
// JSON. The default is 2.
func Indent(n int) MarshalOption {
	return func(o *encodeOpts) {
		if n >= 0 {
			o.indent = n
		}
	}
}

// IndentSequence controls whether MarshalYAML indents sequences that are
// values of mapping keys. JSON output ignores it.
func IndentSequence(on bool) MarshalOption {
	return func(o *encodeOpts) {
		o.indentSeq = on
	}
}

func newEncodeOpts(opts []MarshalOption) *encodeOpts {
	o := &encodeOpts{indent: 2, indentSeq: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Marshal encodes v as JSON text. Object members keep their order, HTML
// characters are not escaped and there is no trailing newline.
func Marshal(v *Value, opts ...MarshalOption) ([]byte, error) {
	o := newEncodeOpts(opts)
	var buf bytes.Buffer
	if err := encodeValue(&buf, orNull(v), o.indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the compact JSON form of v.
func (v *Value) String() string {
	b, err := Marshal(v, Indent(0))
	if err != nil {
		return fmt.Sprintf("<invalid: %v>", err)
	}
	return string(b)
}

func encodeValue(buf *bytes.Buffer, v *Value, indent, level int) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberKind:
		if !validNumber(v.text) {
			return fmt.Errorf("jsonedit: invalid number literal %q", v.text)
		}
		buf.WriteString(v.text)
	case StringKind:
		writeString(buf, v.text)
	case ArrayKind:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			if err := encodeValue(buf, it, indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte(']')
	case ObjectKind:
		if len(v.members) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			writeString(buf, m.Key)
			buf.WriteByte(':')
			if indent > 0 {
				buf.WriteByte(' ')
			}
			if err := encodeValue(buf, m.Value, indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsonedit: unknown value kind %v", v.kind)
	}
	return nil
}

func newline(buf *bytes.Buffer, indent, level int) {
	if indent == 0 {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", indent*level))
}

type stringWriter interface {
	WriteString(string) (int, error)
}

// writeString writes s as a quoted JSON string.
func writeString(w stringWriter, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a Go string cannot fail.
	_ = enc.Encode(s)
	w.WriteString(strings.TrimSuffix(buf.String(), "\n"))
}

func validNumber(lit string) bool {
	if lit == "" || (lit[0] != '-' && (lit[0] < '0' || lit[0] > '9')) {
		return false
	}
	if last := lit[len(lit)-1]; last < '0' || last > '9' {
		return false
	}
	return json.Valid([]byte(lit))
}
