package jsonedit

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when nothing exists at a requested path.
var ErrNotFound = errors.New("jsonedit: no value at path")

// ParseError reports text that is not valid JSON.
type ParseError struct {
	Offset int64 // byte offset of the error, when known
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("jsonedit: invalid JSON at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("jsonedit: invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PathTypeError reports a path segment applied to a value of the wrong kind,
// such as a key against an array.
type PathTypeError struct {
	Path    Path    // path up to and including the offending segment
	Segment Segment // the offending segment
	Found   Kind    // kind of the value the segment was applied to
	Want    Kind    // ArrayKind for an index, ObjectKind for a key
}

func (e *PathTypeError) Error() string {
	if e.Segment.isIdx && e.Segment.index < 0 {
		return fmt.Sprintf("jsonedit: %s: negative index %d", FormatPath(e.Path), e.Segment.index)
	}
	return fmt.Sprintf("jsonedit: %s: segment %s needs %s, found %s", FormatPath(e.Path), e.Segment, e.Want, e.Found)
}
