package operation

import (
	"github.com/pmezard/go-difflib/difflib"
	"gitlab.com/tozd/go/errors"
)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// 📝 UnifiedDiff renders a git-style unified diff of before and after.
// Equal inputs give an empty string.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	})
	if err != nil {
		return "", errors.Errorf("building diff for %s: %w", path, err)
	}
	return diff, nil
}
