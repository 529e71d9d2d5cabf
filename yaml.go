package jsonedit

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// ParseYAML reads a YAML document into a Value, keeping mapping order. Empty
// input yields an empty object. Mapping keys must be scalars.
func ParseYAML(data []byte) (*Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Object(), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonedit: failed to parse YAML: %w", err)
	}
	v, err := fromYAMLNode(&doc, 0)
	if err != nil {
		return nil, fmt.Errorf("jsonedit: failed to convert YAML: %w", err)
	}
	return v, nil
}

const maxYAMLDepth = 10000

func fromYAMLNode(n *yaml.Node, depth int) (*Value, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("nesting deeper than %d (alias cycle?)", maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Object(), nil
		}
		return fromYAMLNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for _, c := range n.Content {
			it, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		var members, merged []Member
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", k.Line)
			}
			v, err := fromYAMLNode(val, depth+1)
			if err != nil {
				return nil, err
			}
			if k.ShortTag() == "!!merge" {
				merged = append(merged, mergeMembers(v)...)
				continue
			}
			members = append(members, Member{Key: k.Value, Value: v})
		}
		if len(merged) == 0 {
			return Object(members...), nil
		}
		// explicit keys win over <<: merges
		seen := make(map[string]bool, len(members))
		for _, m := range members {
			seen[m.Key] = true
		}
		for _, m := range merged {
			if !seen[m.Key] {
				seen[m.Key] = true
				members = append(members, m)
			}
		}
		return Object(members...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
}

func mergeMembers(v *Value) []Member {
	switch v.Kind() {
	case ObjectKind:
		return v.Members()
	case ArrayKind:
		var out []Member
		seen := map[string]bool{}
		for _, it := range v.items {
			for _, m := range it.Members() {
				if !seen[m.Key] {
					seen[m.Key] = true
					out = append(out, m)
				}
			}
		}
		return out
	}
	return nil
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, err
		}
		return Number(strconv.FormatUint(u, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("line %d: %s has no JSON form", n.Line, n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// MarshalYAML encodes v as YAML, keeping object member order.
func MarshalYAML(v *Value, opts ...MarshalOption) ([]byte, error) {
	o := newEncodeOpts(opts)
	indent := o.indent
	if indent == 0 {
		indent = 2
	}
	doc, err := toYAML(orNull(v))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf, gyaml.Indent(indent), gyaml.IndentSequence(o.indentSeq))
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("jsonedit: failed to encode YAML: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), nil
}

func toYAML(v *Value) (any, error) {
	switch v.kind {
	case NullKind:
		return nil, nil
	case BoolKind:
		return v.b, nil
	case NumberKind:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(v.text, 10, 64); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return nil, fmt.Errorf("jsonedit: invalid number literal %q", v.text)
		}
		return f, nil
	case StringKind:
		return v.text, nil
	case ArrayKind:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			y, err := toYAML(it)
			if err != nil {
				return nil, err
			}
			out[i] = y
		}
		return out, nil
	case ObjectKind:
		ms := make(gyaml.MapSlice, 0, len(v.members))
		for _, m := range v.members {
			y, err := toYAML(m.Value)
			if err != nil {
				return nil, err
			}
			ms = append(ms, gyaml.MapItem{Key: m.Key, Value: y})
		}
		return ms, nil
	}
	return nil, fmt.Errorf("jsonedit: unknown value kind %v", v.kind)
}

// DetectYAMLStyle returns the base indent of a YAML text, and whether
// sequences that are values of mapping keys are indented one level (true) or
// "indentless" (false). Pass the results to MarshalYAML to write a document
// back in the style it was read in.
func DetectYAMLStyle(b []byte) (int, bool) {
	indent := detectIndent(b)
	lines := bytes.Split(b, []byte("\n"))
	votes := 0 // >0 prefer indented seq, <0 prefer indentless

	for i, ln := range lines {
		if isBlankOrComment(ln) || !endsWithMappingKey(ln) {
			continue
		}
		keyIndent := leadingSpaces(ln)
		for _, nxt := range lines[i+1:] {
			if isBlankOrComment(nxt) {
				continue
			}
			trimmed := bytes.TrimLeft(nxt, " ")
			if trimmed[0] == '-' {
				switch leadingSpaces(nxt) {
				case keyIndent + indent:
					votes++
				case keyIndent:
					votes--
				}
			}
			break
		}
	}
	return indent, votes >= 0
}

func isBlankOrComment(ln []byte) bool {
	t := bytes.TrimSpace(ln)
	return len(t) == 0 || t[0] == '#'
}

// endsWithMappingKey reports whether ln is a block mapping key "key:",
// possibly followed by a comment.
func endsWithMappingKey(ln []byte) bool {
	idx := bytes.IndexByte(ln, ':')
	if idx < 0 {
		return false
	}
	rest := bytes.TrimSpace(ln[idx+1:])
	return len(rest) == 0 || rest[0] == '#'
}

// detectIndent is the GCD of all non-zero line indents, 2 when there are none.
func detectIndent(b []byte) int {
	result := 0
	for _, ln := range bytes.Split(b, []byte("\n")) {
		if isBlankOrComment(ln) {
			continue
		}
		if n := leadingSpaces(ln); n > 0 {
			result = gcd(result, n)
		}
	}
	if result > 0 && result <= 8 {
		return result
	}
	return 2
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func leadingSpaces(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
