package jsonedit

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff from before to after, labelled with name. It
// is empty when the texts are equal.
func Diff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(ensureNewline(before)),
		B:        difflib.SplitLines(ensureNewline(after)),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	})
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
