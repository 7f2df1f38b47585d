// Package request drives block editing for one page request: it turns the
// block index of an edit request into a positional range, wraps preview text
// in the block's delimiters and forwards form and client state.
package request

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/ezerfernandes/codeblockedit/internal/block"
)

// Action is the requested page action.
type Action string

const (
	ActionShow    Action = "show"
	ActionEdit    Action = "edit"
	ActionPreview Action = "preview"
	ActionSave    Action = "save"
)

// Form and query field names.
const (
	FieldID     = "id"
	FieldAction = "do"
	FieldIndex  = "codeblockindex"
	FieldAnchor = "hid"
	FieldRange  = "range"
)

// Params are the inputs of one request.
type Params struct {
	Action     Action
	DocumentID string
	// Index is the raw block index; HasIndex tells an empty value from a
	// missing one.
	Index    string
	HasIndex bool
	AnchorID string
	// Range is a positional range set by some other mechanism, if any.
	Range string
}

// FromValues reads Params from query or form values.
func FromValues(values url.Values) Params {
	p := Params{
		Action:     Action(strings.ToLower(values.Get(FieldAction))),
		DocumentID: values.Get(FieldID),
		AnchorID:   values.Get(FieldAnchor),
		Range:      values.Get(FieldRange),
	}

	if len(p.Action) == 0 {
		p.Action = ActionShow
	}

	if _, ok := values[FieldIndex]; ok {
		p.Index = values.Get(FieldIndex)
		p.HasIndex = true
	}

	return p
}

// WithIndex returns a copy of p targeting the block with the given ordinal.
func (p Params) WithIndex(index int) Params {
	p.Index = strconv.Itoa(index)
	p.HasIndex = true

	return p
}

// ParseIndex reads a block ordinal. Anything that is not a non-negative
// decimal integer is rejected with [block.ErrInvalidIndex]. A non-negative
// ordinal too large for an int names no block and yields [block.ErrNotFound].
func ParseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)

	index, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
		return 0, block.ErrNotFound
	}

	if err != nil || index < 0 {
		return 0, block.ErrInvalidIndex
	}

	return index, nil
}
