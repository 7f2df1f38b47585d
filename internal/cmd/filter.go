package cmd

import (
	"github.com/gobwas/glob"

	"github.com/ezerfernandes/codeblockedit/internal/block"
)

type filterFunc func(m *block.Match) bool

// filter selects blocks whose language matches any of the glob patterns.
// A block without a language matches the empty pattern and "*".
func filter(langs []string) (filterFunc, error) {
	if len(langs) == 0 {
		return func(*block.Match) bool { return true }, nil
	}

	globs := make([]glob.Glob, 0, len(langs))

	for _, lang := range langs {
		g, err := glob.Compile(lang)
		if err != nil {
			return nil, err
		}

		globs = append(globs, g)
	}

	return func(m *block.Match) bool {
		for _, g := range globs {
			if g.Match(m.Lang()) {
				return true
			}
		}

		return false
	}, nil
}
