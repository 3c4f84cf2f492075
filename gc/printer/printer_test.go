package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/internal/logger"
)

// setupHeap builds a collector with one rooted nursery object, one rooted
// old object and one garbage old object.
func setupHeap(t *testing.T) (*gc.Collector, []gc.Word) {
	t.Helper()
	c, err := gc.New(&gc.Options{
		NurserySize: 1024,
		SlotSize:    64,
		OldGenSize:  32 << 10,
		MaxRoots:    4,
		Backing:     gc.BackingHeap,
		Logger:      logger.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	frame := make([]gc.Word, 3)
	require.NoError(t, c.AddRootRange(frame))
	frame[0], err = c.Alloc(16)
	require.NoError(t, err)
	frame[1], err = c.Alloc(100)
	require.NoError(t, err)
	frame[2] = 7 // scalar
	_, err = c.Alloc(200)
	require.NoError(t, err)
	return c, frame
}

func TestPrintNursery_Text(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer

	require.NoError(t, New(c, &buf, DefaultOptions()).PrintNursery())

	out := buf.String()
	assert.Contains(t, out, "1/16 slots of 64 bytes")
	assert.Contains(t, out, "[0] off=0x0 size=24")
	assert.NotContains(t, out, "marked")
}

func TestPrintOldGen_Text(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer

	require.NoError(t, New(c, &buf, DefaultOptions()).PrintOldGen())

	out := buf.String()
	assert.Contains(t, out, "32,768 bytes", "large counts are grouped")
	assert.Contains(t, out, "size=112 white")
	assert.Contains(t, out, "size=208 white")
	assert.Contains(t, out, "free")
}

func TestPrintOldGen_HideFree(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowFree = false

	require.NoError(t, New(c, &buf, opts).PrintOldGen())

	assert.NotContains(t, buf.String(), " free\n")
}

func TestPrintOldGen_ColorsAfterMajor(t *testing.T) {
	c, frame := setupHeap(t)
	require.NoError(t, c.CollectMajor())
	var buf bytes.Buffer

	require.NoError(t, New(c, &buf, DefaultOptions()).PrintOldGen())

	out := buf.String()
	assert.Contains(t, out, "size=112 black")
	assert.Contains(t, out, "size=208 free", "garbage chunk was swept")
	assert.Equal(t, gc.GenOld, c.Generation(frame[1]))
}

func TestPrintRoots_Text(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer

	require.NoError(t, New(c, &buf, DefaultOptions()).PrintRoots())

	out := buf.String()
	assert.Contains(t, out, "Roots: 1 entries in 1 slots")
	assert.Contains(t, out, "(3 words)")
	assert.Contains(t, out, "nursery")
	assert.Contains(t, out, "old")
	assert.Contains(t, out, "0x7 none")
}

func TestPrintRoots_HideWords(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.ShowRootWords = false

	require.NoError(t, New(c, &buf, opts).PrintRoots())

	assert.NotContains(t, buf.String(), "nursery")
}

func TestPrintHeap_JSON(t *testing.T) {
	c, _ := setupHeap(t)
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON

	require.NoError(t, New(c, &buf, opts).PrintHeap())

	var got heapDump
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Nursery.Used)
	require.Len(t, got.Nursery.Slots, 1)
	assert.Equal(t, 24, got.Nursery.Slots[0].Size)
	assert.Equal(t, 32<<10, got.OldGen.Size)
	assert.Equal(t, 112+208, got.OldGen.Used)
	require.Len(t, got.OldGen.Chunks, 3)
	assert.Equal(t, "free", got.OldGen.Chunks[2].Color)
	require.Len(t, got.Roots, 1)
	require.Len(t, got.Roots[0].Words, 3)
	assert.Equal(t, "nursery", got.Roots[0].Words[0].Generation)
	assert.Equal(t, "old", got.Roots[0].Words[1].Generation)
	assert.Equal(t, "none", got.Roots[0].Words[2].Generation)
	assert.Equal(t, 2, got.Stats.DirectOldAllocs)
}

func TestPrintHeap_Text(t *testing.T) {
	c, _ := setupHeap(t)
	require.NoError(t, c.CollectMinor())
	var buf bytes.Buffer

	require.NoError(t, New(c, &buf, Options{}).PrintHeap())

	out := buf.String()
	assert.Contains(t, out, "Nursery at 0x1000000: 0/16 slots")
	assert.Contains(t, out, "Collections: 1 minor, 0 major; promoted 1 chunks (24 bytes)")
}
