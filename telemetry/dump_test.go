package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/wisp/trail"
)

func TestStoreDumpRoundTrip(t *testing.T) {
	st := trail.NewStore(8, false)

	a, err := st.Allocate(1.5, -2.5, 3, 7)
	require.NoError(t, err)
	st.Age[a] = 0.25

	_, err = st.Allocate(4, 5, 3, 9)
	require.NoError(t, err)

	// Dead slots stay out of the dump
	dead, err := st.Allocate(0, 0, 1, 7)
	require.NoError(t, err)
	require.NoError(t, st.Release(dead))

	path, err := WriteStoreDump(t.TempDir(), 42, st)
	require.NoError(t, err)
	assert.Contains(t, path, "particles_42.csv")

	records, err := LoadStoreDump(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 0, records[0].Slot)
	assert.Equal(t, float32(1.5), records[0].X)
	assert.Equal(t, float32(-2.5), records[0].Y)
	assert.Equal(t, float32(0.25), records[0].Age)
	assert.Equal(t, float32(3), records[0].Lifetime)
	assert.Equal(t, trail.RibbonID(7), records[0].Ribbon)
	assert.Equal(t, trail.RibbonID(9), records[1].Ribbon)
}

func TestOutputManagerWriteDump(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	require.NoError(t, err)
	defer om.Close()

	st := trail.NewStore(4, false)
	_, err = st.Allocate(1, 2, 3, 1)
	require.NoError(t, err)

	path, err := om.WriteDump(7, st)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(om.Dir(), "particles_7.csv"), path)

	records, err := LoadStoreDump(path)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
