// Package block locates fenced <code> and <file> regions in raw wiki text.
package block

import (
	"errors"
	"strings"

	"github.com/google/shlex"
)

// Kind is the delimiter family of a block.
type Kind string

const (
	KindCode Kind = "code"
	KindFile Kind = "file"
)

// Match describes one located block. Start and End delimit the inner content
// only, as a half-open byte range over the normalized text.
type Match struct {
	Index    int
	Start    int
	End      int
	Content  string
	OpenTag  string
	CloseTag string
}

type Matches []*Match

var (
	// ErrInvalidIndex is returned for a negative block index.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrNotFound is returned when the text holds no block at the index.
	ErrNotFound = errors.New("block not found")
)

// Kind returns the family of the opening delimiter.
func (m *Match) Kind() Kind {
	if strings.HasPrefix(m.OpenTag, "<"+string(KindFile)) {
		return KindFile
	}

	return KindCode
}

// Lang returns the language attribute of the opening delimiter, if any.
// A dash stands for "no highlighting" and is reported as empty.
func (m *Match) Lang() string {
	words := m.attrs()
	if len(words) == 0 || words[0] == "-" {
		return ""
	}

	return words[0]
}

// Filename returns the download name given after the language, if any.
func (m *Match) Filename() string {
	words := m.attrs()
	if len(words) < 2 { //nolint:gomnd
		return ""
	}

	return words[1]
}

// Tagged returns the literal block text including both delimiters.
func (m *Match) Tagged() string {
	return m.OpenTag + m.Content + m.CloseTag
}

func (m *Match) attrs() []string {
	inner := strings.TrimSuffix(m.OpenTag, ">")
	inner = strings.TrimPrefix(inner, "<"+string(m.Kind()))
	inner = strings.TrimSuffix(strings.TrimSpace(inner), "/")

	// options such as [enable_line_numbers=true] are not positional
	if idx := strings.IndexByte(inner, '['); idx >= 0 {
		inner = inner[:idx]
	}

	words, err := shlex.Split(inner)
	if err != nil {
		return strings.Fields(inner)
	}

	return words
}
