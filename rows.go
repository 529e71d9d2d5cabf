package jsonedit

// RowKind classifies the value of an AttributeRow.
type RowKind string

const (
	RowArray     RowKind = "array"
	RowObject    RowKind = "object"
	RowPrimitive RowKind = "primitive"
)

// KindOf returns the row kind matching the runtime type of v.
func KindOf(v *Value) RowKind {
	switch v.Kind() {
	case ArrayKind:
		return RowArray
	case ObjectKind:
		return RowObject
	default:
		return RowPrimitive
	}
}

// AttributeRow is one direct child of a displayed node. A nil Key marks an
// unkeyed value: the node itself is a scalar, or the row is an array element.
type AttributeRow struct {
	Key   *string
	Value *Value
	Kind  RowKind
}

// Row builds a keyed row, deriving Kind from v.
func Row(key string, v *Value) AttributeRow {
	return AttributeRow{Key: &key, Value: orNull(v), Kind: KindOf(v)}
}

// UnkeyedRow builds a row without a key, deriving Kind from v.
func UnkeyedRow(v *Value) AttributeRow {
	return AttributeRow{Value: orNull(v), Kind: KindOf(v)}
}

// Rows returns the visible attribute rows of node: one keyed row per object
// member, one unkeyed row per array element, or a single unkeyed row for a
// scalar.
func Rows(node *Value) []AttributeRow {
	switch node.Kind() {
	case ObjectKind:
		rows := make([]AttributeRow, len(node.members))
		for i, m := range node.members {
			rows[i] = Row(m.Key, m.Value)
		}
		return rows
	case ArrayKind:
		rows := make([]AttributeRow, len(node.items))
		for i, it := range node.items {
			rows[i] = UnkeyedRow(it)
		}
		return rows
	default:
		return []AttributeRow{UnkeyedRow(node)}
	}
}

// Normalize renders rows as 2-space indented JSON.
//
// No rows render as {}. A single unkeyed row renders its value directly.
// Otherwise the keyed primitive rows are gathered into an object in row
// order; container rows and unkeyed rows are left out, since their content
// belongs to a child node.
func Normalize(rows []AttributeRow) string {
	if len(rows) == 0 {
		return "{}"
	}
	var v *Value
	if len(rows) == 1 && rows[0].Key == nil {
		v = orNull(rows[0].Value)
	} else {
		members := make([]Member, 0, len(rows))
		for _, r := range rows {
			if r.Key == nil || r.Kind == RowArray || r.Kind == RowObject {
				continue
			}
			members = append(members, Member{Key: *r.Key, Value: r.Value})
		}
		v = Object(members...)
	}
	b, err := Marshal(v)
	if err != nil {
		// Only a hand built number literal can fail to encode.
		return "{}"
	}
	return string(b)
}

// NormalizeForEdit renders the text that seeds an edit buffer. It is called
// with the full live row set when editing starts and again on cancel, so the
// buffer always matches the last rendered view. The output equals Normalize.
func NormalizeForEdit(rows []AttributeRow) string {
	return Normalize(rows)
}
