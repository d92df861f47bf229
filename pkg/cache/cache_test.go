package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	RDB = nil

	assert.False(t, Enabled())
	var out string
	assert.False(t, Get("k", &out))
	assert.NoError(t, Set("k", "v", time.Minute))
	assert.NoError(t, Forget("k"))
	assert.NoError(t, Close())
}

func TestRememberCallsLoaderOnMiss(t *testing.T) {
	RDB = nil

	calls := 0
	var out int
	err := Remember("n", time.Minute, &out, func() error {
		calls++
		out = 42
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 1, calls)
}

func TestRememberPropagatesLoaderError(t *testing.T) {
	RDB = nil

	boom := errors.New("boom")
	var out int
	err := Remember("n", time.Minute, &out, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}
