package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, found, err := m.Read(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Write(ctx, "properties", []byte(`[{"id":"x"}]`)))

	value, found, err := m.Read(ctx, "properties")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[{"id":"x"}]`), value)

	// The returned slice is a copy; mutating it must not change the store.
	value[0] = '!'
	again, _, err := m.Read(ctx, "properties")
	require.NoError(t, err)
	assert.Equal(t, byte('['), again[0])
}

func TestFileReadWrite(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	_, found, err := f.Read(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, f.Write(ctx, "leases", []byte(`[]`)))

	value, found, err := f.Read(ctx, "leases")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), value)

	// Overwrite replaces the full value.
	require.NoError(t, f.Write(ctx, "leases", []byte(`[1]`)))
	value, _, err = f.Read(ctx, "leases")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), value)
}

func TestNewFileRejectsEmptyDir(t *testing.T) {
	_, err := NewFile("  ")
	assert.Error(t, err)
}
