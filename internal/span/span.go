// Package span converts located blocks into the positional range format used
// by range-based page editing, and slices documents by such ranges.
//
// A positional range "a-b" is 1-based. The slicer subtracts one from both
// bounds and treats the result as a half-open byte span, so a block whose
// content occupies [start, end) is addressed as "start+1-end+1".
package span

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ezerfernandes/codeblockedit/internal/block"
)

// Range is a positional range. A zero bound means "open": From == 0 starts at
// the beginning of the document and To == 0 runs to its end.
type Range struct {
	From int
	To   int
}

// ErrInvalidRange is returned by [Parse] for malformed input.
var ErrInvalidRange = errors.New("invalid range")

// Translate returns the positional range addressing the content of m.
func Translate(m *block.Match) Range {
	return Range{From: m.Start + 1, To: m.End + 1}
}

// IsZero reports whether r addresses the whole document.
func (r Range) IsZero() bool {
	return r.From == 0 && r.To == 0
}

func (r Range) String() string {
	if r.IsZero() {
		return ""
	}

	var sb strings.Builder

	if r.From > 0 {
		sb.WriteString(strconv.Itoa(r.From))
	}

	sb.WriteByte('-')

	if r.To > 0 {
		sb.WriteString(strconv.Itoa(r.To))
	}

	return sb.String()
}

// Parse reads a range in "a-b" form. Either bound may be omitted; an empty
// string is the whole document.
func Parse(s string) (Range, error) {
	if len(s) == 0 {
		return Range{}, nil
	}

	from, to, found := strings.Cut(s, "-")
	if !found {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	var (
		r   Range
		err error
	)

	if r.From, err = parseBound(from); err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	if r.To, err = parseBound(to); err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	if r.To > 0 && r.From > r.To {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	return r, nil
}

func parseBound(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, ErrInvalidRange
	}

	return n, nil
}
