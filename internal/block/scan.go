package block

import "strings"

var (
	openNames = []string{string(KindCode), string(KindFile)}
	closeTags = []string{"</code>", "</file>"}
)

// Normalize converts CRLF and lone CR line endings to LF. All offsets reported
// by this package are relative to the normalized text.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.ReplaceAll(text, "\r", "\n")
}

// Locate returns the block with the given zero-based ordinal. Code and file
// blocks share one numbering in document order.
//
// A block ends at the nearest closing delimiter of either family, so content
// that itself contains a literal </code> or </file> is cut short there.
func Locate(text string, index int) (*Match, error) {
	if index < 0 {
		return nil, ErrInvalidIndex
	}

	text = Normalize(text)
	if len(text) == 0 {
		return nil, ErrNotFound
	}

	sc := scanner{text: text}

	for {
		match := sc.next()
		if match == nil {
			return nil, ErrNotFound
		}

		if match.Index == index {
			return match, nil
		}
	}
}

// Scan returns every block of the text in document order.
func Scan(text string) Matches {
	sc := scanner{text: Normalize(text)}

	var matches Matches

	for match := sc.next(); match != nil; match = sc.next() {
		matches = append(matches, match)
	}

	return matches
}

// Count returns the number of blocks in the text.
func Count(text string) int {
	return len(Scan(text))
}

// scanner walks normalized text left to right. It never looks behind pos, so
// a whole document is scanned in a single pass.
type scanner struct {
	text  string
	pos   int
	count int
}

func (s *scanner) next() *Match {
	for s.pos < len(s.text) {
		openStart, openEnd := s.findOpen()
		if openStart < 0 {
			s.pos = len(s.text)

			return nil
		}

		closeStart, closeEnd := findClose(s.text, openEnd)
		if closeStart < 0 {
			// no later opener can be closed either
			s.pos = len(s.text)

			return nil
		}

		match := &Match{
			Index:    s.count,
			Start:    openEnd,
			End:      closeStart,
			Content:  s.text[openEnd:closeStart],
			OpenTag:  s.text[openStart:openEnd],
			CloseTag: s.text[closeStart:closeEnd],
		}

		s.count++
		s.pos = closeEnd

		return match
	}

	return nil
}

// findOpen returns the bounds of the next opening delimiter at or after pos,
// or -1, -1 when there is none.
func (s *scanner) findOpen() (int, int) {
	for from := s.pos; from < len(s.text); {
		idx := strings.IndexByte(s.text[from:], '<')
		if idx < 0 {
			return -1, -1
		}

		start := from + idx
		from = start + 1

		nameEnd := openName(s.text, start)
		if nameEnd < 0 {
			continue
		}

		gt := strings.IndexByte(s.text[nameEnd:], '>')
		if gt < 0 {
			return -1, -1
		}

		return start, nameEnd + gt + 1
	}

	return -1, -1
}

// openName reports the offset just past "<code" or "<file" at start when the
// name is not followed by a word character, and -1 otherwise.
func openName(text string, start int) int {
	rest := text[start+1:]

	for _, name := range openNames {
		if !strings.HasPrefix(rest, name) {
			continue
		}

		end := start + 1 + len(name)
		if end < len(text) && isBoundary(text[end]) {
			return end
		}
	}

	return -1
}

// isBoundary reports whether c ends a tag name, so that "<code->" and
// "<code/>" open blocks while "<codeblock>" does not.
func isBoundary(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '_':
		return false
	}

	return true
}

// findClose returns the bounds of the nearest closing delimiter of either
// family at or after pos.
func findClose(text string, pos int) (int, int) {
	for from := pos; from < len(text); {
		idx := strings.Index(text[from:], "</")
		if idx < 0 {
			return -1, -1
		}

		at := from + idx

		for _, tag := range closeTags {
			if strings.HasPrefix(text[at:], tag) {
				return at, at + len(tag)
			}
		}

		from = at + 2 //nolint:gomnd
	}

	return -1, -1
}
