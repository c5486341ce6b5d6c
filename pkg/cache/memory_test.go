package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))

	require.NoError(t, m.Del(ctx, "k"))
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "short", []byte("x"), time.Second))
	require.NoError(t, m.Set(ctx, "forever", []byte("y"), 0))

	now = now.Add(2 * time.Second)

	_, ok, _ := m.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	type payload struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, SetJSON(ctx, m, "p", payload{ID: 3, Email: "a@b.c"}, time.Minute))

	var out payload
	hit, err := GetJSON(ctx, m, "p", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{ID: 3, Email: "a@b.c"}, out)

	hit, err = GetJSON(ctx, m, "missing", &out)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryExpiredReadKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// between runs once, after Get has dropped its read lock.
	var between func()
	m.now = func() time.Time {
		if f := between; f != nil {
			between = nil
			f()
		}
		return now
	}

	require.NoError(t, m.Set(ctx, "sess", []byte("old"), time.Second))
	now = now.Add(2 * time.Second)

	between = func() {
		require.NoError(t, m.Set(ctx, "sess", []byte("fresh"), time.Minute))
	}
	_, ok, _ := m.Get(ctx, "sess")
	assert.False(t, ok)

	got, ok, err := m.Get(ctx, "sess")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh", string(got))
}

func TestMemoryClose(t *testing.T) {
	var s Store = NewMemory()
	assert.NoError(t, s.Close())
}
