package block

import "errors"

// Loader reads a document and locates one of its blocks.
type Loader func() (*Match, error)

type cacheKey struct {
	documentID string
	index      int
}

// Cache remembers the result of a single (document, index) lookup. A lookup
// for any other key evicts it. The zero value is an empty cache.
//
// Cache is meant to live for one request and is not safe for concurrent use.
type Cache struct {
	key    cacheKey
	filled bool
	match  *Match
	err    error
}

// Get returns the cached result for documentID and index, calling load only
// when the key differs from the stored one. A not-found result is cached like
// a match; any other loader error is returned without being stored.
func (c *Cache) Get(documentID string, index int, load Loader) (*Match, error) {
	key := cacheKey{documentID: documentID, index: index}

	if c.filled && c.key == key {
		return c.match, c.err
	}

	match, err := load()
	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalidIndex) {
		return nil, err
	}

	c.key, c.filled, c.match, c.err = key, true, match, err

	return match, err
}

// Reset empties the cache.
func (c *Cache) Reset() {
	*c = Cache{}
}
