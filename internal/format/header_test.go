package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_PackUnpack(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		state State
	}{
		{"free minimal", MinChunkSize, Free},
		{"white", 24, White},
		{"black", 256, Black},
		{"gray large", 1 << 20, Gray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := MakeHeader(tt.size, tt.state)
			assert.Equal(t, tt.size, h.Size())
			assert.Equal(t, tt.state, h.State())
		})
	}
}

func TestHeader_SetStatePreservesSize(t *testing.T) {
	b := make([]byte, 64)
	PutHeader(b, 8, MakeHeader(48, White))

	for _, s := range []State{Gray, Black, Free, White} {
		SetState(b, 8, s)
		assert.Equal(t, 48, SizeOf(b, 8))
		assert.Equal(t, s, StateOf(b, 8))
	}
}

func TestHeader_MarkUnmark(t *testing.T) {
	b := make([]byte, 32)
	PutHeader(b, 0, MakeHeader(32, Free))
	require.False(t, Marked(b, 0))

	Mark(b, 0)
	assert.True(t, Marked(b, 0))
	assert.Equal(t, 32, SizeOf(b, 0))
	// A marked nursery header reads as White.
	assert.Equal(t, White, StateOf(b, 0))

	Unmark(b, 0)
	assert.False(t, Marked(b, 0))
	assert.Equal(t, 32, SizeOf(b, 0))
}

func TestCheckChunk(t *testing.T) {
	b := make([]byte, 64)

	PutHeader(b, 0, MakeHeader(64, Free))
	size, err := CheckChunk(b, 0)
	require.NoError(t, err)
	assert.Equal(t, 64, size)

	PutHeader(b, 0, MakeHeader(0, Free))
	_, err = CheckChunk(b, 0)
	require.ErrorIs(t, err, ErrBadSize)

	PutHeader(b, 0, MakeHeader(72, White))
	_, err = CheckChunk(b, 0)
	require.ErrorIs(t, err, ErrTruncated)

	_, err = CheckChunk(b, 60)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestWord_IsTagged(t *testing.T) {
	assert.False(t, Word(0x1000).IsTagged())
	assert.True(t, Word(0x1001).IsTagged())
	assert.False(t, Nil.IsTagged())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "free", Free.String())
	assert.Equal(t, "white", White.String())
	assert.Equal(t, "black", Black.String())
	assert.Equal(t, "gray", Gray.String())
	assert.Equal(t, "state(7)", State(7).String())
}
