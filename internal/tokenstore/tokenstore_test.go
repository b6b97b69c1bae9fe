package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevoke(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "a", now.Add(time.Hour)))
	require.NoError(t, m.Revoke(ctx, "expired", now.Add(-time.Minute)))

	ok, err := m.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = m.IsRevoked(ctx, "expired")
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	ok, _ = m.IsRevoked(ctx, "a")
	assert.False(t, ok)
}

func TestNewWithoutURLIsMemory(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = New("://bad")
	assert.Error(t, err)
}
