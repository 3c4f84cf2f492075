package gc

import "github.com/joshuapare/gengc/internal/format"

// CollectMinor empties the nursery, promoting every slot reachable from the
// roots into the old generation. It is a no-op on an empty nursery.
func (c *Collector) CollectMinor() error {
	if c.closed {
		return opError(errMetaOpMinor, ErrClosed, nil)
	}
	return c.collectMinor()
}

func (c *Collector) collectMinor() error {
	n := c.nursery
	used := n.Used()
	if used == 0 {
		c.remembered.Reset()
		return nil
	}
	remembered := c.remembered.Offsets()

	for i := range used {
		n.Unmark(i)
	}

	// Mark.
	c.work = c.work[:0]
	c.roots.Each(func(w *Word) { c.markSlot(*w) })
	for _, off := range remembered {
		c.markSlot(c.old.Word(off))
	}
	for len(c.work) > 0 {
		i := c.work[len(c.work)-1]
		c.work = c.work[:len(c.work)-1]
		ch := n.Chunk(i)
		for k := range ch.Words() {
			c.markSlot(n.Word(ch.WordOff(k)))
		}
	}

	// Promote. Only marked slots get an old-generation chunk.
	clear(c.backpatch[:used])
	promoted, promotedBytes := 0, 0
	for i := range used {
		if !n.Marked(i) {
			continue
		}
		size := n.Chunk(i).Size
		off, err := c.old.AllocChunk(size)
		if err != nil {
			c.abortPromotion(i)
			c.log.Warn("minor collection aborted",
				"live_slots", promoted,
				"needed", size,
				"error", err,
			)
			return opError(errMetaOpMinor, ErrOldGenExhausted, err)
		}
		c.backpatch[i] = c.old.Span().Addr(off)
		promoted++
		promotedBytes += size
	}

	// Backpatch. Payload words are rewritten in the nursery, before the
	// copy moves them.
	c.roots.Each(func(w *Word) { *w = c.forward(*w) })
	for _, off := range remembered {
		c.old.SetWord(off, c.forward(c.old.Word(off)))
	}
	for i := range used {
		if c.backpatch[i] == Nil {
			continue
		}
		ch := n.Chunk(i)
		for k := range ch.Words() {
			off := ch.WordOff(k)
			n.SetWord(off, c.forward(n.Word(off)))
		}
	}

	// Copy. The destination header was written by AllocChunk with the same
	// size, so only the payload moves.
	src := n.Bytes()
	dst := c.old.Bytes()
	oldSpan := c.old.Span()
	for i := range used {
		if c.backpatch[i] == Nil {
			continue
		}
		ch := n.Chunk(i)
		to := oldSpan.Offset(c.backpatch[i])
		copy(dst[to+format.HeaderSize:to+ch.Size], src[ch.PayloadOff():ch.End()])
	}

	// Reset.
	n.Reset()
	c.remembered.Reset()
	clear(c.backpatch[:used])

	c.stats.MinorCollections++
	c.stats.PromotedChunks += promoted
	c.stats.PromotedBytes += int64(promotedBytes)
	c.log.Debug("minor collection",
		"slots", used,
		"promoted", promoted,
		"promoted_bytes", promotedBytes,
		"remembered", len(remembered),
	)
	return nil
}

// markSlot marks the nursery slot w points into and queues it for scanning.
func (c *Collector) markSlot(w Word) {
	i, ok := c.nursery.SlotOf(w)
	if ok && c.nursery.Mark(i) {
		c.work = append(c.work, i)
	}
}

// forward returns w relocated by the promotion of the slot it points into,
// or w unchanged when it does not point into a promoted slot. A word pointing
// into the unused tail of a slot is clamped to the last word of the promoted
// chunk so it never lands in a neighbouring chunk.
func (c *Collector) forward(w Word) Word {
	i, ok := c.nursery.SlotOf(w)
	if !ok || c.backpatch[i] == Nil {
		return w
	}
	chunk := c.nursery.Span().Addr(c.nursery.SlotOff(i))
	delta := w - chunk
	if last := Word(c.nursery.Chunk(i).Size - format.WordSize); delta > last {
		delta = last
	}
	return c.backpatch[i] + delta
}

// abortPromotion releases the chunks reserved for slots before limit. No
// word has been rewritten yet, so the nursery stays valid.
func (c *Collector) abortPromotion(limit int) {
	span := c.old.Span()
	for i := range limit {
		if c.backpatch[i] != Nil {
			c.old.Release(span.Offset(c.backpatch[i]))
			c.backpatch[i] = Nil
		}
	}
}
