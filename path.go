package jsonedit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key   string
	index int
	isIdx bool
}

func Key(k string) Segment { return Segment{key: k} }

func Index(i int) Segment { return Segment{index: i, isIdx: true} }

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIdx }

func (s Segment) Key() string { return s.key }

func (s Segment) Index() int { return s.index }

// String renders s as one bracketed locator step.
func (s Segment) String() string {
	if s.isIdx {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return "[" + quoteKey(s.key) + "]"
}

// Path locates a value from the document root. The empty path is the root.
type Path []Segment

// P builds a Path from strings (keys) and ints (indices). Any other element
// type panics.
func P(elems ...any) Path {
	p := make(Path, 0, len(elems))
	for _, e := range elems {
		switch x := e.(type) {
		case string:
			p = append(p, Key(x))
		case int:
			p = append(p, Index(x))
		case Segment:
			p = append(p, x)
		default:
			panic(fmt.Sprintf("jsonedit: unsupported path element %T", e))
		}
	}
	return p
}

// Child returns a new path extending p by seg. p is not modified.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

func (p Path) String() string { return FormatPath(p) }

// FormatPath renders p as a locator: "$" followed by one bracketed step per
// segment, e.g. $["customer"][0].
func FormatPath(p Path) string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	b.WriteByte('$')
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

func quoteKey(k string) string {
	var b strings.Builder
	writeString(&b, k)
	return b.String()
}

var rfc6901Replacer = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders p as an RFC 6901 JSON Pointer. The root is "".
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.isIdx {
			b.WriteString(strconv.Itoa(s.index))
			continue
		}
		b.WriteString(rfc6901Replacer.Replace(s.key))
	}
	return b.String()
}

// ParsePath parses a locator as rendered by FormatPath. The leading "$" may
// be omitted.
func ParsePath(s string) (Path, error) {
	rest := strings.TrimSpace(s)
	rest = strings.TrimPrefix(rest, "$")
	p := Path{}
	for len(rest) > 0 {
		if rest[0] != '[' {
			return nil, fmt.Errorf("jsonedit: invalid locator %q: expected '[' at %q", s, rest)
		}
		rest = rest[1:]
		if len(rest) > 0 && rest[0] == '"' {
			end, err := quotedEnd(rest)
			if err != nil {
				return nil, fmt.Errorf("jsonedit: invalid locator %q: %w", s, err)
			}
			var k string
			if err := json.Unmarshal([]byte(rest[:end]), &k); err != nil {
				return nil, fmt.Errorf("jsonedit: invalid locator %q: %w", s, err)
			}
			p = append(p, Key(k))
			rest = rest[end:]
		} else {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("jsonedit: invalid locator %q: unterminated index", s)
			}
			i, err := strconv.Atoi(rest[:end])
			if err != nil || !isDigits(rest[:end]) {
				return nil, fmt.Errorf("jsonedit: invalid locator %q: bad index %q", s, rest[:end])
			}
			p = append(p, Index(i))
			rest = rest[end:]
		}
		if len(rest) == 0 || rest[0] != ']' {
			return nil, fmt.Errorf("jsonedit: invalid locator %q: missing ']'", s)
		}
		rest = rest[1:]
	}
	return p, nil
}

// quotedEnd returns the offset just past the closing quote of the JSON
// string at the start of s.
func quotedEnd(s string) (int, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated key")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
