package gc

import (
	"testing"

	"github.com/brickingsoft/errors"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/internal/logger"
)

const (
	testNurserySize = 1024 // 16 slots of 64 bytes
	testSlotSize    = 64
	testOldGenSize  = 4096
)

// newTestCollector creates a small heap-backed collector closed at test end.
func newTestCollector(t testing.TB, mods ...func(*Options)) *Collector {
	t.Helper()
	opts := Options{
		NurserySize: testNurserySize,
		SlotSize:    testSlotSize,
		OldGenSize:  testOldGenSize,
		MaxRoots:    16,
		Backing:     BackingHeap,
		Logger:      logger.Discard,
	}
	for _, mod := range mods {
		mod(&opts)
	}
	c, err := New(&opts)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

// requireIs asserts err matches target.
func requireIs(t testing.TB, err, target error) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "expected %v, got %v", target, err)
}

// mustAlloc allocates or fails the test.
func mustAlloc(t testing.TB, c *Collector, size int) Word {
	t.Helper()
	p, err := c.Alloc(size)
	require.NoError(t, err)
	return p
}

// mustStore writes a word or fails the test.
func mustStore(t testing.TB, c *Collector, addr, w Word) {
	t.Helper()
	require.NoError(t, c.StoreWord(addr, w))
}

// mustLoad reads a word or fails the test.
func mustLoad(t testing.TB, c *Collector, addr Word) Word {
	t.Helper()
	w, err := c.LoadWord(addr)
	require.NoError(t, err)
	return w
}

// oldChunk returns the old-generation chunk holding payload address p.
func oldChunk(t testing.TB, c *Collector, p Word) alloc.Chunk {
	t.Helper()
	ch, ok := c.OldGen().Find(c.OldGen().Span().Offset(p))
	require.True(t, ok, "no chunk for %#x", uint64(p))
	return ch
}

// scalar tags v as a non-pointer word.
func scalar(v int) Word {
	return Word(v)<<1 | 1
}

