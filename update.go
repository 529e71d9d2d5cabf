package jsonedit

// Update returns a copy of root with the value at path replaced by v.
//
// Only the containers from root down to the target are copied; every other
// subtree of the result is shared with root. Missing intermediate containers
// are created, as an array when the following segment is an index and as an
// object otherwise. Indices past the end of an array pad it with nulls.
//
// If a segment meets an existing value of the wrong kind, Update returns root
// unchanged together with a *PathTypeError. An empty path returns v.
func Update(root *Value, path Path, v *Value) (*Value, error) {
	v = orNull(v)
	if len(path) == 0 {
		return v, nil
	}
	out, err := update(root, path, 0, v)
	if err != nil {
		return root, err
	}
	return out, nil
}

func update(cur *Value, path Path, depth int, v *Value) (*Value, error) {
	seg := path[depth]
	if err := checkSegment(cur, path, depth); err != nil {
		return nil, err
	}

	child, ok := lookup(cur, seg)
	if depth == len(path)-1 {
		return with(cur, seg, v), nil
	}
	if !ok {
		child = emptyFor(path[depth+1])
	}
	repl, err := update(child, path, depth+1, v)
	if err != nil {
		return nil, err
	}
	return with(cur, seg, repl), nil
}

func checkSegment(cur *Value, path Path, depth int) error {
	seg := path[depth]
	want := ObjectKind
	if seg.isIdx {
		want = ArrayKind
	}
	switch {
	case seg.isIdx && seg.index < 0:
	case seg.isIdx && cur.Kind() == ArrayKind:
		return nil
	case !seg.isIdx && cur.Kind() == ObjectKind:
		return nil
	}
	return &PathTypeError{
		Path:    append(Path(nil), path[:depth+1]...),
		Segment: seg,
		Found:   cur.Kind(),
		Want:    want,
	}
}

func lookup(cur *Value, seg Segment) (*Value, bool) {
	if seg.isIdx {
		return cur.Index(seg.index)
	}
	return cur.Field(seg.key)
}

func emptyFor(next Segment) *Value {
	if next.isIdx {
		return &Value{kind: ArrayKind, items: []*Value{}}
	}
	return &Value{kind: ObjectKind, members: []Member{}}
}

// with returns a shallow copy of the container cur with seg set to v.
func with(cur *Value, seg Segment, v *Value) *Value {
	if seg.isIdx {
		n := len(cur.items)
		if seg.index >= n {
			n = seg.index + 1
		}
		items := make([]*Value, n)
		copy(items, cur.items)
		for i := len(cur.items); i < n; i++ {
			items[i] = nullValue
		}
		items[seg.index] = v
		return &Value{kind: ArrayKind, items: items}
	}

	members := make([]Member, len(cur.members), len(cur.members)+1)
	copy(members, cur.members)
	if i := indexOfKey(members, seg.key); i >= 0 {
		members[i].Value = v
	} else {
		members = append(members, Member{Key: seg.key, Value: v})
	}
	return &Value{kind: ObjectKind, members: members}
}

// Get returns the value at path in root.
func Get(root *Value, path Path) (*Value, bool) {
	cur := orNull(root)
	for _, seg := range path {
		next, ok := lookup(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
