package gc

import (
	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/internal/format"
)

// Generation identifies the arena a word points into.
type Generation int

const (
	GenNone    Generation = iota // not a managed address
	GenNursery                   // minor heap
	GenOld                       // major heap
)

func (g Generation) String() string {
	switch g {
	case GenNursery:
		return "nursery"
	case GenOld:
		return "old"
	}
	return "none"
}

// Generation classifies w by address range alone. Tagged words are never
// pointers and report GenNone.
func (c *Collector) Generation(w Word) Generation {
	switch {
	case c.nursery.Span().Points(w):
		return GenNursery
	case c.old.Span().Points(w):
		return GenOld
	}
	return GenNone
}

// locate resolves addr to its arena, chunk and arena offset. addr must lie
// inside the payload of an allocated chunk.
func (c *Collector) locate(addr Word) (Generation, alloc.Chunk, int, error) {
	if c.closed {
		return GenNone, alloc.Chunk{}, 0, opError(errMetaOpAccess, ErrClosed, nil)
	}
	switch c.Generation(addr) {
	case GenNursery:
		if ch, ok := c.nursery.Locate(addr); ok {
			return GenNursery, ch, c.nursery.Span().Offset(addr), nil
		}
	case GenOld:
		if ch, ok := c.old.Locate(addr); ok {
			return GenOld, ch, c.old.Span().Offset(addr), nil
		}
	}
	return GenNone, alloc.Chunk{}, 0, opError(errMetaOpAccess, ErrBadPointer, nil)
}

// wordAt resolves addr to a word-aligned offset with a full word left in
// the chunk.
func (c *Collector) wordAt(addr Word) (Generation, int, error) {
	gen, ch, off, err := c.locate(addr)
	if err != nil {
		return GenNone, 0, err
	}
	if !format.IsAligned(off) || off+format.WordSize > ch.End() {
		return GenNone, 0, opError(errMetaOpAccess, ErrBadPointer, nil)
	}
	return gen, off, nil
}

// LoadWord reads the payload word at addr.
func (c *Collector) LoadWord(addr Word) (Word, error) {
	gen, off, err := c.wordAt(addr)
	if err != nil {
		return Nil, err
	}
	if gen == GenNursery {
		return c.nursery.Word(off), nil
	}
	return c.old.Word(off), nil
}

// StoreWord writes w to the payload word at addr. Storing a nursery pointer
// into the old generation records the word in the remembered set so the
// next minor collection keeps the target alive and rewrites the word.
func (c *Collector) StoreWord(addr, w Word) error {
	gen, off, err := c.wordAt(addr)
	if err != nil {
		return err
	}
	if gen == GenNursery {
		c.nursery.SetWord(off, w)
		return nil
	}
	c.old.SetWord(off, w)
	if c.nursery.Span().Points(w) {
		c.remembered.Add(off)
	}
	return nil
}

// Payload returns the bytes from p to the end of its chunk. The slice
// aliases the arena and is invalidated by the next collection that moves or
// frees the chunk. Pointer words written through it bypass the write
// barrier.
func (c *Collector) Payload(p Word) ([]byte, error) {
	gen, ch, off, err := c.locate(p)
	if err != nil {
		return nil, err
	}
	data := c.old.Bytes()
	if gen == GenNursery {
		data = c.nursery.Bytes()
	}
	return data[off:ch.End():ch.End()], nil
}
