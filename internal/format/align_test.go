package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign8(t *testing.T) {
	cases := map[int]int{0: 0, 1: 8, 7: 8, 8: 8, 9: 16, 16: 16, 17: 24}
	for in, want := range cases {
		assert.Equal(t, want, Align8(in), "Align8(%d)", in)
	}
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, 16, ChunkSize(1))
	assert.Equal(t, 24, ChunkSize(16))
	assert.Equal(t, 256, ChunkSize(248))
	assert.True(t, IsAligned(ChunkSize(13)))
}

func TestSpan(t *testing.T) {
	s := Span{Base: 0x1000, Len: 0x100}

	assert.True(t, s.Contains(0x1000))
	assert.True(t, s.Contains(0x10ff))
	assert.False(t, s.Contains(0x1100))
	assert.False(t, s.Contains(0xfff))

	assert.True(t, s.Points(0x1008))
	assert.False(t, s.Points(0x1009), "tagged scalar is never a pointer")
	assert.False(t, s.Points(0x2000))

	assert.Equal(t, 0x10, s.Offset(0x1010))
	assert.Equal(t, Word(0x1010), s.Addr(0x10))

	assert.True(t, s.Overlaps(Span{Base: 0x10f8, Len: 0x10}))
	assert.False(t, s.Overlaps(Span{Base: 0x1100, Len: 0x10}))
}
