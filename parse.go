package jsonedit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Parse decodes strict JSON text into a Value. Object member order and number
// literals are kept as written. Invalid text yields a *ParseError.
func Parse(data []byte) (*Value, error) {
	// Validate the whole input first so syntax errors carry an offset and
	// trailing garbage is rejected.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newParseError(err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, newParseError(err)
	}
	return v, nil
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Err: err}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		pe.Offset = se.Offset
	}
	return pe
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t.String()), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []*Value{}
			for dec.More() {
				it, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, it)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return &Value{kind: ArrayKind, items: items}, nil
		case '{':
			members := []Member{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				members = append(members, Member{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return Object(members...), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
