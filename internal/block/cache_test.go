package block_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/codeblockedit/internal/block"
)

func countingLoader(calls *int, text string, index int) block.Loader {
	return func() (*block.Match, error) {
		*calls++

		return block.Locate(text, index)
	}
}

func TestCacheHit(t *testing.T) {
	t.Parallel()

	var (
		cache block.Cache
		calls int
	)

	first, err := cache.Get("wiki:page", 1, countingLoader(&calls, sample, 1))
	require.NoError(t, err)

	second, err := cache.Get("wiki:page", 1, countingLoader(&calls, sample, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Same(t, first, second)
}

func TestCacheEvictsOnKeyMismatch(t *testing.T) {
	t.Parallel()

	var (
		cache block.Cache
		calls int
	)

	_, err := cache.Get("wiki:page", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)

	match, err := cache.Get("wiki:page", 2, countingLoader(&calls, sample, 2))
	require.NoError(t, err)
	assert.Equal(t, 2, match.Index)

	_, err = cache.Get("wiki:page", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)

	_, err = cache.Get("wiki:other", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)

	assert.Equal(t, 4, calls)
}

func TestCacheRemembersNotFound(t *testing.T) {
	t.Parallel()

	var (
		cache block.Cache
		calls int
	)

	for i := 0; i < 3; i++ {
		match, err := cache.Get("wiki:page", 9, countingLoader(&calls, sample, 9))
		require.ErrorIs(t, err, block.ErrNotFound)
		assert.Nil(t, match)
	}

	assert.Equal(t, 1, calls)
}

func TestCacheDoesNotStoreLoaderFailure(t *testing.T) {
	t.Parallel()

	var (
		cache block.Cache
		calls int
	)

	errRead := errors.New("read failed")

	_, err := cache.Get("wiki:page", 0, func() (*block.Match, error) {
		calls++

		return nil, errRead
	})
	require.ErrorIs(t, err, errRead)

	match, err := cache.Get("wiki:page", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, 2, calls)
}

func TestCacheReset(t *testing.T) {
	t.Parallel()

	var (
		cache block.Cache
		calls int
	)

	_, err := cache.Get("wiki:page", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)

	cache.Reset()

	_, err = cache.Get("wiki:page", 0, countingLoader(&calls, sample, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
