package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/internal/format"
)

func TestCollectMinor_RoundTrip(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	p := mustAlloc(t, c, 16)
	require.Equal(t, GenNursery, c.Generation(p))
	payload, err := c.Payload(p)
	require.NoError(t, err)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	copy(payload, want)
	stack[0] = p

	require.NoError(t, c.CollectMinor())

	moved := stack[0]
	assert.NotEqual(t, p, moved)
	assert.Equal(t, GenOld, c.Generation(moved))
	got, err := c.Payload(moved)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 0, c.Nursery().Used())

	c.RemoveRootRange(stack)
	require.NoError(t, c.CollectMajor())
	assert.Equal(t, format.Free, oldChunk(t, c, moved).State)
}

func TestCollectMinor_EmptyIsNoop(t *testing.T) {
	c := newTestCollector(t)
	before := c.Stats()

	require.NoError(t, c.CollectMinor())
	require.NoError(t, c.CollectMinor())

	assert.Equal(t, before, c.Stats())
}

func TestCollectMinor_DropsUnreachable(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	mustAlloc(t, c, 16)
	stack[0] = mustAlloc(t, c, 16)
	mustAlloc(t, c, 40)

	require.NoError(t, c.CollectMinor())

	s := c.Stats()
	assert.Equal(t, 1, s.PromotedChunks)
	assert.EqualValues(t, format.ChunkSize(16), s.PromotedBytes)
	assert.Equal(t, format.ChunkSize(16), s.OldUsedBytes)
	assert.Equal(t, GenOld, c.Generation(stack[0]))
}

func TestCollectMinor_BackpatchesChains(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	a := mustAlloc(t, c, 16)
	b := mustAlloc(t, c, 16)
	d := mustAlloc(t, c, 16)
	mustStore(t, c, a, b)
	mustStore(t, c, b, d)
	mustStore(t, c, d+8, scalar(42))
	stack[0] = a

	require.NoError(t, c.CollectMinor())

	a2 := stack[0]
	b2 := mustLoad(t, c, a2)
	d2 := mustLoad(t, c, b2)
	for _, p := range []Word{a2, b2, d2} {
		assert.Equal(t, GenOld, c.Generation(p))
	}
	assert.Equal(t, scalar(42), mustLoad(t, c, d2+8))
	assert.Equal(t, 3, c.Stats().PromotedChunks)
}

func TestCollectMinor_Cycle(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	a := mustAlloc(t, c, 16)
	b := mustAlloc(t, c, 16)
	mustStore(t, c, a, b)
	mustStore(t, c, b, a)
	stack[0] = a

	require.NoError(t, c.CollectMinor())

	a2 := stack[0]
	b2 := mustLoad(t, c, a2)
	assert.Equal(t, GenOld, c.Generation(b2))
	assert.Equal(t, a2, mustLoad(t, c, b2))
	assert.Equal(t, 2, c.Stats().PromotedChunks)
}

func TestCollectMinor_InteriorPointer(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	p := mustAlloc(t, c, 16)
	mustStore(t, c, p+8, scalar(3))
	stack[0] = p + 8

	require.NoError(t, c.CollectMinor())

	assert.Equal(t, GenOld, c.Generation(stack[0]))
	assert.Equal(t, scalar(3), mustLoad(t, c, stack[0]))
	assert.Equal(t, oldChunk(t, c, stack[0]).PayloadOff()+8, c.OldGen().Span().Offset(stack[0]))
}

func TestCollectMinor_SlotTailPointerStaysInChunk(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 2)
	require.NoError(t, c.AddRootRange(stack))

	p := mustAlloc(t, c, 16) // chunk 24 in a 64-byte slot
	mustStore(t, c, p+8, scalar(11))
	q := mustAlloc(t, c, 16)
	mustStore(t, c, q, scalar(12))
	stack[0] = p + 40 // past the chunk, inside the slot
	stack[1] = q

	require.NoError(t, c.CollectMinor())

	assert.Equal(t, 2, c.Stats().PromotedChunks)
	pc := oldChunk(t, c, stack[0])
	qc := oldChunk(t, c, stack[1])
	assert.NotEqual(t, qc.Off, pc.Off, "tail pointer must not alias the next chunk")
	assert.Equal(t, pc.End()-format.WordSize, c.OldGen().Span().Offset(stack[0]))
	assert.Equal(t, scalar(11), mustLoad(t, c, stack[0]))
	assert.Equal(t, scalar(12), mustLoad(t, c, stack[1]))
}

func TestCollectMinor_TaggedWordsAreNotPointers(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	p := mustAlloc(t, c, 16)
	stack[0] = p | 1

	require.NoError(t, c.CollectMinor())

	assert.Equal(t, p|1, stack[0])
	assert.Equal(t, 0, c.Stats().PromotedChunks)
}

func TestCollectMinor_RememberedSet(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 1)
	require.NoError(t, c.AddRootRange(stack))

	o := mustAlloc(t, c, 100)
	require.Equal(t, GenOld, c.Generation(o))
	stack[0] = o

	y := mustAlloc(t, c, 16)
	mustStore(t, c, y, scalar(5))
	mustStore(t, c, o+16, y)
	assert.Equal(t, 1, c.Stats().RememberedWords)

	require.NoError(t, c.CollectMinor())

	y2 := mustLoad(t, c, o+16)
	assert.Equal(t, GenOld, c.Generation(y2))
	assert.Equal(t, scalar(5), mustLoad(t, c, y2))
	assert.Equal(t, 0, c.Stats().RememberedWords)
}

func TestCollectMinor_PromotionFailureRollsBack(t *testing.T) {
	c := newTestCollector(t, func(o *Options) { o.OldGenSize = 64 })
	stack := make([]Word, 3)
	require.NoError(t, c.AddRootRange(stack))

	for i := range stack {
		stack[i] = mustAlloc(t, c, 24)
		mustStore(t, c, stack[i], scalar(i))
	}
	saved := append([]Word(nil), stack...)

	err := c.CollectMinor()
	requireIs(t, err, ErrOldGenExhausted)

	assert.Equal(t, saved, stack, "roots are not rewritten")
	assert.Equal(t, 3, c.Nursery().Used())
	for i, p := range stack {
		assert.Equal(t, scalar(i), mustLoad(t, c, p))
	}
	s := c.Stats()
	assert.Equal(t, 0, s.OldUsedBytes, "reserved chunks are released")
	assert.Equal(t, 64, s.OldFreeBytes)
	assert.Equal(t, 0, s.MinorCollections)

	// Dropping a root lets the remaining survivors fit the released chunks.
	c.RemoveRootRange(stack)
	require.NoError(t, c.AddRootRange(stack[:2]))
	require.NoError(t, c.CollectMinor())
	for i, p := range stack[:2] {
		assert.Equal(t, GenOld, c.Generation(p))
		assert.Equal(t, scalar(i), mustLoad(t, c, p))
	}
	assert.Equal(t, 64, c.Stats().OldUsedBytes)
}

func TestCollectMinor_NoNurseryPointersSurvive(t *testing.T) {
	c := newTestCollector(t)
	stack := make([]Word, 4)
	require.NoError(t, c.AddRootRange(stack))

	o := mustAlloc(t, c, 80)
	stack[0] = o
	for i := 1; i < len(stack); i++ {
		stack[i] = mustAlloc(t, c, 8*i)
		mustStore(t, c, stack[i], stack[i-1])
	}
	mustStore(t, c, o, stack[3])

	require.NoError(t, c.CollectMinor())

	for _, w := range stack {
		assert.NotEqual(t, GenNursery, c.Generation(w))
	}
	require.NoError(t, c.OldGen().Walk(func(ch alloc.Chunk) bool {
		if ch.State == format.Free {
			return true
		}
		for k := range ch.Words() {
			assert.NotEqual(t, GenNursery, c.Generation(c.OldGen().Word(ch.WordOff(k))))
		}
		return true
	}))
}
