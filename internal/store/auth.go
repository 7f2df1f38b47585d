package store

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Authorizer decides whether a page may be written.
type Authorizer interface {
	CanWrite(id string) bool
}

// GlobAuthorizer denies pages whose id matches any readonly pattern. Patterns
// use ':' as the namespace separator, so "wiki:*" matches "wiki:syntax" but
// not "wiki:ns:page"; use "wiki:**" for a whole subtree.
type GlobAuthorizer struct {
	readonly []glob.Glob
}

// NewGlobAuthorizer compiles the readonly patterns.
func NewGlobAuthorizer(patterns []string) (*GlobAuthorizer, error) {
	auth := &GlobAuthorizer{readonly: make([]glob.Glob, 0, len(patterns))}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, ':')
		if err != nil {
			return nil, fmt.Errorf("readonly pattern %q: %w", pattern, err)
		}

		auth.readonly = append(auth.readonly, g)
	}

	return auth, nil
}

func (a *GlobAuthorizer) CanWrite(id string) bool {
	for _, g := range a.readonly {
		if g.Match(id) {
			return false
		}
	}

	return true
}
