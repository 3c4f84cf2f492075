//go:build unix

package mmarena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapAnonymousUnix(t *testing.T) {
	data, release, err := Map(1 << 16)
	require.NoError(t, err)
	require.Len(t, data, 1<<16)

	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, b)
		}
	}

	data[0], data[len(data)-1] = 0xde, 0xad
	require.Equal(t, byte(0xde), data[0])

	require.NoError(t, release())
	require.NoError(t, release(), "second release should be a no-op")
}

func TestMapZeroLength(t *testing.T) {
	data, release, err := Map(0)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, release)
	require.NoError(t, release())
}

func TestMapNegative(t *testing.T) {
	_, _, err := Map(-1)
	require.Error(t, err)
}

func TestHeap(t *testing.T) {
	data, release, err := Heap(64)
	require.NoError(t, err)
	require.Len(t, data, 64)
	require.NoError(t, release())
	require.True(t, Mapped())
}
