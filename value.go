package jsonedit

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the runtime type of a Value.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON node. A nil *Value reads as null.
//
// Values are shared between trees produced by Update, so nothing may modify a
// Value once it has been constructed.
type Value struct {
	kind    Kind
	b       bool
	text    string // number literal or string contents
	items   []*Value
	members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

var (
	nullValue  = &Value{kind: NullKind}
	trueValue  = &Value{kind: BoolKind, b: true}
	falseValue = &Value{kind: BoolKind}
)

func Null() *Value { return nullValue }

func Bool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

// Number returns a number holding the given JSON literal. The literal is not
// validated; use Parse for untrusted text.
func Number(literal string) *Value {
	return &Value{kind: NumberKind, text: literal}
}

func Int(i int64) *Value {
	return Number(strconv.FormatInt(i, 10))
}

var expReplacer = strings.NewReplacer("e+0", "e+", "e-0", "e-")

// Float returns a number for f, formatted the shortest way that round trips.
// NaN and infinities have no JSON form and become null.
func Float(f float64) *Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nullValue
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		lit := strconv.FormatFloat(f, 'e', -1, 64)
		return Number(expReplacer.Replace(lit))
	}
	return Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func String(s string) *Value {
	return &Value{kind: StringKind, text: s}
}

// Array returns an array of the given elements. Nil elements are stored as
// null.
func Array(items ...*Value) *Value {
	cp := make([]*Value, len(items))
	for i, it := range items {
		cp[i] = orNull(it)
	}
	return &Value{kind: ArrayKind, items: cp}
}

// smallObject is the member count up to which key lookups scan linearly.
const smallObject = 16

// Object returns an object of the given members in order. A repeated key
// keeps its first position and takes the last value.
func Object(members ...Member) *Value {
	cp := make([]Member, 0, len(members))
	var pos map[string]int
	if len(members) > smallObject {
		pos = make(map[string]int, len(members))
	}
	for _, m := range members {
		i := -1
		if pos != nil {
			if j, ok := pos[m.Key]; ok {
				i = j
			}
		} else {
			i = indexOfKey(cp, m.Key)
		}
		if i >= 0 {
			cp[i].Value = orNull(m.Value)
			continue
		}
		if pos != nil {
			pos[m.Key] = len(cp)
		}
		cp = append(cp, Member{Key: m.Key, Value: orNull(m.Value)})
	}
	return &Value{kind: ObjectKind, members: cp}
}

func orNull(v *Value) *Value {
	if v == nil {
		return nullValue
	}
	return v
}

func (v *Value) Kind() Kind {
	if v == nil {
		return NullKind
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Kind() == NullKind }

// Bool reports the boolean held by v; ok is false when v is not a boolean.
func (v *Value) Bool() (b, ok bool) {
	if v.Kind() != BoolKind {
		return false, false
	}
	return v.b, true
}

// Number returns the JSON literal of a number.
func (v *Value) Number() (string, bool) {
	if v.Kind() != NumberKind {
		return "", false
	}
	return v.text, true
}

// Float64 parses the number literal held by v.
func (v *Value) Float64() (float64, bool) {
	lit, ok := v.Number()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Str returns the contents of a string value.
func (v *Value) Str() (string, bool) {
	if v.Kind() != StringKind {
		return "", false
	}
	return v.text, true
}

// Len is the number of elements of an array or members of an object, and 0
// for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case ArrayKind:
		return len(v.items)
	case ObjectKind:
		return len(v.members)
	}
	return 0
}

// Index returns the i'th element of an array.
func (v *Value) Index(i int) (*Value, bool) {
	if v.Kind() != ArrayKind || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Field returns the value of key in an object.
func (v *Value) Field(key string) (*Value, bool) {
	if v.Kind() != ObjectKind {
		return nil, false
	}
	i := indexOfKey(v.members, key)
	if i < 0 {
		return nil, false
	}
	return v.members[i].Value, true
}

// Items returns a copy of the elements of an array.
func (v *Value) Items() []*Value {
	if v.Kind() != ArrayKind {
		return nil
	}
	return append([]*Value(nil), v.items...)
}

// Members returns a copy of the members of an object, in order.
func (v *Value) Members() []Member {
	if v.Kind() != ObjectKind {
		return nil
	}
	return append([]Member(nil), v.members...)
}

// Keys returns the keys of an object, in order.
func (v *Value) Keys() []string {
	if v.Kind() != ObjectKind {
		return nil
	}
	keys := make([]string, len(v.members))
	for i := range v.members {
		keys[i] = v.members[i].Key
	}
	return keys
}

// Equal reports whether a and b hold the same JSON. Object member order is
// ignored and numbers compare by value.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case NullKind:
		return true
	case BoolKind:
		return a.b == b.b
	case NumberKind:
		if a.text == b.text {
			return true
		}
		fa, okA := a.Float64()
		fb, okB := b.Float64()
		return okA && okB && fa == fb
	case StringKind:
		return a.text == b.text
	case ArrayKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			bv, ok := b.Field(m.Key)
			if !ok || !Equal(m.Value, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func indexOfKey(ms []Member, key string) int {
	for i := range ms {
		if ms[i].Key == key {
			return i
		}
	}
	return -1
}
