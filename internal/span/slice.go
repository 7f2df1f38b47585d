package span

// Slices splits text into the part before r, the part r addresses and the part
// after it. Bounds past the end of text are clamped.
func Slices(text string, r Range) (string, string, string) {
	from := 0
	if r.From > 0 {
		from = r.From - 1
	}

	to := len(text)
	if r.To > 0 {
		to = r.To - 1
	}

	from = min(from, len(text))
	to = max(min(to, len(text)), from)

	return text[:from], text[from:to], text[to:]
}

// Join reassembles a document from the slices returned by [Slices] with the
// middle part replaced.
func Join(prefix, section, suffix string) string {
	return prefix + section + suffix
}

// Replace returns text with the section addressed by r replaced by section.
func Replace(text string, r Range, section string) string {
	prefix, _, suffix := Slices(text, r)

	return Join(prefix, section, suffix)
}
