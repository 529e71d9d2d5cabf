package jsonedit

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// ReplacePatch returns the RFC 6902 patch that turns root into
// Update(root, path, v). Containers that Update would create are added
// explicitly, and array padding becomes appends of null, so the patch
// applies with a stock JSON Patch implementation.
func ReplacePatch(root *Value, path Path, v *Value) (jsonpatch.Patch, error) {
	v = orNull(v)
	var ops []patchOp
	if len(path) == 0 {
		val, err := Marshal(v, Indent(0))
		if err != nil {
			return nil, err
		}
		ops = append(ops, patchOp{Op: "replace", Path: "", Value: val})
		return encodePatch(ops)
	}

	cur := orNull(root)
	exists := true
	for depth, seg := range path {
		// cur is the container the segment applies to, created or not
		if err := checkSegment(cur, path, depth); err != nil {
			return nil, err
		}
		parent := path[:depth]
		last := depth == len(path)-1

		var target *Value
		if last {
			target = v
		} else {
			target = emptyFor(path[depth+1])
		}
		val, err := Marshal(target, Indent(0))
		if err != nil {
			return nil, err
		}

		if !exists {
			// parent was created by an earlier op and is empty
			ops = append(ops, padding(parent, seg, 0)...)
			ops = append(ops, patchOp{Op: "add", Path: parent.Child(seg).Pointer(), Value: val})
			cur = target
			continue
		}

		child, ok := lookup(cur, seg)
		switch {
		case ok && last:
			ops = append(ops, patchOp{Op: "replace", Path: parent.Child(seg).Pointer(), Value: val})
		case ok:
			cur = child
			continue
		default:
			ops = append(ops, padding(parent, seg, cur.Len())...)
			ops = append(ops, patchOp{Op: "add", Path: parent.Child(seg).Pointer(), Value: val})
			cur = target
			exists = false
		}
	}
	return encodePatch(ops)
}

// padding appends nulls to the array at parent until seg's index is the next
// free slot.
func padding(parent Path, seg Segment, have int) []patchOp {
	if !seg.isIdx {
		return nil
	}
	var ops []patchOp
	for i := have; i < seg.index; i++ {
		ops = append(ops, patchOp{Op: "add", Path: parent.Pointer() + "/-", Value: json.RawMessage("null")})
	}
	return ops
}

func encodePatch(ops []patchOp) (jsonpatch.Patch, error) {
	b, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("jsonedit: cannot encode patch: %w", err)
	}
	p, err := jsonpatch.DecodePatch(b)
	if err != nil {
		return nil, fmt.Errorf("jsonedit: cannot decode patch: %w", err)
	}
	return p, nil
}

// SameDocument reports whether two JSON texts hold equal documents, ignoring
// formatting and member order.
func SameDocument(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}
