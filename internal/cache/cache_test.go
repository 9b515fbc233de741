package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		sameAs string
	}{
		{name: "lowercase", in: "Show My LEAVE Balance", want: "show my leave balance"},
		{name: "punctuation stripped", in: "what's my leave balance?!", want: "whats my leave balance"},
		{name: "whitespace collapsed", in: "  show   my\tleave\n balance ", want: "show my leave balance"},
		{name: "leading punctuation", in: "! hello", want: "hello"},
		{name: "equivalent surface forms", in: "Who is EMP002?", sameAs: "who is emp002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
			if tt.sameAs != "" {
				assert.Equal(t, Normalize(tt.sameAs), got)
			}
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("Who is EMP002?"), Fingerprint("who is emp002"))
	assert.NotEqual(t, Fingerprint("who is emp002"), Fingerprint("who is emp003"))
	assert.Len(t, Fingerprint("anything"), 64)
}

func TestMemoryQueryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryQueryCache(time.Minute)

	_, ok, err := c.Get(ctx, "who is emp002")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "Who is EMP002?", "Priya Sharma, Engineering.", "get_employee_details", nil))

	e, ok, err := c.Get(ctx, "who is emp002")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma, Engineering.", e.Reply)
	assert.Equal(t, "get_employee_details", e.ToolUsed)
	assert.Equal(t, "Who is EMP002?", e.Query)
}

func TestMemoryQueryCacheUpsert(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryQueryCache(time.Minute)

	require.NoError(t, c.Set(ctx, "Who is EMP002?", "first", "", nil))
	require.NoError(t, c.Set(ctx, "who is emp002", "second", "get_employee_details", nil))

	e, ok, err := c.Get(ctx, "WHO IS EMP002")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", e.Reply)
	// the surface form of the first insert is kept
	assert.Equal(t, "Who is EMP002?", e.Query)

	n, err := c.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "upsert must not duplicate entries")
}

func TestMemoryQueryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryQueryCache(15 * time.Millisecond)

	require.NoError(t, c.Set(ctx, "who is emp002", "reply", "", nil))

	_, ok, err := c.Get(ctx, "who is emp002")
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)

	_, ok, err = c.Get(ctx, "who is emp002")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must behave as a miss")
}

func TestMemoryQueryCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryQueryCache(time.Minute)

	require.NoError(t, c.Set(ctx, "query one", "r1", "", nil))
	require.NoError(t, c.Set(ctx, "query two", "r2", "", nil))
	require.NoError(t, c.Set(ctx, "query three", "r3", "", nil))

	n, err := c.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, q := range []string{"query one", "query two", "query three"} {
		_, ok, err := c.Get(ctx, q)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	n, err = c.InvalidateAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
