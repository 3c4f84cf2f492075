package gc

import (
	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/internal/format"
)

// CollectMajor reclaims every old-generation chunk unreachable from the
// roots and from allocated nursery slots. Liveness is re-proven from scratch
// on every call.
func (c *Collector) CollectMajor() error {
	if c.closed {
		return opError(errMetaOpMajor, ErrClosed, nil)
	}

	ix, err := c.old.Index()
	if err != nil {
		return opError(errMetaOpMajor, ErrCorrupt, err)
	}

	// Reset survivors of the previous cycle to white.
	for k := range ix.Len() {
		if ch := ix.At(k); ch.State != format.Free {
			c.old.SetState(ch.Off, format.White)
		}
	}

	// Darken roots. Allocated nursery slots count as roots: a live young
	// object may hold the only reference to an old one.
	c.work = c.work[:0]
	c.roots.Each(func(w *Word) { c.darken(ix, *w) })
	n := c.nursery
	for i := range n.Used() {
		ch := n.Chunk(i)
		for k := range ch.Words() {
			c.darken(ix, n.Word(ch.WordOff(k)))
		}
	}

	// Propagate.
	for len(c.work) > 0 {
		k := c.work[len(c.work)-1]
		c.work = c.work[:len(c.work)-1]
		ch := ix.At(k)
		c.old.SetState(ch.Off, format.Black)
		for j := range ch.Words() {
			c.darken(ix, c.old.Word(ch.WordOff(j)))
		}
	}

	// Sweep.
	live, swept, sweptBytes := 0, 0, 0
	for k := range ix.Len() {
		ch := ix.At(k)
		switch c.old.State(ch.Off) {
		case format.White:
			c.old.Release(ch.Off)
			swept++
			sweptBytes += ch.Size
		case format.Black:
			live++
		}
	}

	// Remembered words inside freed chunks no longer exist.
	c.remembered.Retain(func(off int) bool {
		k, ok := ix.Lookup(off)
		return ok && c.old.State(ix.At(k).Off) != format.Free
	})

	c.stats.MajorCollections++
	c.stats.SweptChunks += swept
	c.stats.SweptBytes += int64(sweptBytes)
	c.log.Debug("major collection",
		"chunks", ix.Len(),
		"live", live,
		"swept", swept,
		"swept_bytes", sweptBytes,
	)
	return nil
}

// darken grays the white chunk w points into and queues it for scanning.
func (c *Collector) darken(ix *alloc.ChunkIndex, w Word) {
	span := c.old.Span()
	if !span.Points(w) {
		return
	}
	k, ok := ix.Lookup(span.Offset(w))
	if !ok {
		return
	}
	off := ix.At(k).Off
	if c.old.State(off) == format.White {
		c.old.SetState(off, format.Gray)
		c.work = append(c.work, k)
	}
}
