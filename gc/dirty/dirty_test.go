package dirty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_AddAndOffsets(t *testing.T) {
	tr := NewTracker()
	tr.Add(64)
	tr.Add(8)
	tr.Add(64)
	tr.Add(32)

	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, []int{8, 32, 64}, tr.Offsets())
	assert.Equal(t, 3, tr.Len(), "compacted after Offsets")
	assert.Equal(t, 4, tr.Adds())
}

func TestTracker_OffsetsReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Add(16)
	got := tr.Offsets()
	got[0] = 99
	assert.Equal(t, []int{16}, tr.Offsets())
}

func TestTracker_Retain(t *testing.T) {
	tr := NewTracker()
	for _, off := range []int{8, 16, 24, 32} {
		tr.Add(off)
	}
	tr.Retain(func(off int) bool { return off%16 == 0 })
	assert.Equal(t, []int{16, 32}, tr.Offsets())
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Add(8)
	tr.Reset()
	require.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Offsets())
}
