package text

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wozniakpl/obfuscator/pkg/ruleset"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidSelection is returned for a selection that does not fit the buffer.
var ErrInvalidSelection = errors.Base("invalid selection")

// Selection is a half-open byte range [Start, End) within a buffer.
type Selection struct {
	Start int
	End   int
}

// ParseSelection parses "start:end". Either side may be omitted to mean the
// beginning or the end of the buffer, which is passed as size.
func ParseSelection(s string, size int) (Selection, error) {
	startStr, endStr, found := strings.Cut(s, ":")
	if !found {
		return Selection{}, errors.Errorf("%w: %q: want start:end", ErrInvalidSelection, s)
	}

	sel := Selection{Start: 0, End: size}
	var err error
	if startStr = strings.TrimSpace(startStr); startStr != "" {
		if sel.Start, err = strconv.Atoi(startStr); err != nil {
			return Selection{}, errors.Errorf("%w: start %q: %s", ErrInvalidSelection, startStr, err)
		}
	}
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		if sel.End, err = strconv.Atoi(endStr); err != nil {
			return Selection{}, errors.Errorf("%w: end %q: %s", ErrInvalidSelection, endStr, err)
		}
	}
	return sel, nil
}

func (s Selection) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Validate checks the selection against buffer. Both ends must fall on rune
// boundaries.
func (s Selection) Validate(buffer string) error {
	if s.Start < 0 || s.End < s.Start || s.End > len(buffer) {
		return errors.Errorf("%w: %s out of range for %d bytes", ErrInvalidSelection, s, len(buffer))
	}
	if !boundary(buffer, s.Start) || !boundary(buffer, s.End) {
		return errors.Errorf("%w: %s splits a UTF-8 sequence", ErrInvalidSelection, s)
	}
	return nil
}

// Splice returns buffer with the selected range replaced by text.
func (s Selection) Splice(buffer, text string) string {
	return buffer[:s.Start] + text + buffer[s.End:]
}

// ApplySelection returns the replacement text for the selected range of
// buffer. The caller writes it back, usually with Selection.Splice.
func ApplySelection(rs *ruleset.RuleSet, buffer string, sel Selection) (string, error) {
	if err := sel.Validate(buffer); err != nil {
		return "", err
	}
	return Apply(rs, buffer[sel.Start:sel.End]), nil
}

func boundary(s string, i int) bool {
	return i == 0 || i == len(s) || utf8.RuneStart(s[i])
}
