package gc

import (
	"errors"
	"log/slog"

	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/gc/dirty"
	"github.com/joshuapare/gengc/gc/roots"
	"github.com/joshuapare/gengc/internal/format"
	"github.com/joshuapare/gengc/internal/logger"
	"github.com/joshuapare/gengc/internal/mmarena"
)

// Word is a machine word in a root range or a chunk payload.
type Word = format.Word

// Nil is the zero pointer.
const Nil = format.Nil

// Collector owns both arenas and the root registry. All state is held here;
// there is no package-level mutable state.
type Collector struct {
	opts Options
	log  *slog.Logger

	nursery    *alloc.Nursery
	old        *alloc.OldGen
	roots      *roots.Registry
	remembered *dirty.Tracker

	// backpatch maps a nursery slot to the address of its old-generation
	// chunk during a minor collection. Nil means not promoted.
	backpatch []Word

	// work is the mark worklist shared by both collections: slot indices
	// during a minor collection, chunk index positions during a major one.
	work []int

	release []func() error
	closed  bool

	stats Stats
}

// New creates a collector. A nil opts uses DefaultOptions.
func New(opts *Options) (*Collector, error) {
	o := DefaultOptions()
	if opts != nil {
		o = opts.withDefaults()
	}
	if err := o.validate(); err != nil {
		return nil, opError(errMetaOpNew, ErrBadOptions, err)
	}

	log := o.Logger
	if log == nil {
		log = logger.FromEnv()
	}

	mapArena := mmarena.Map
	if o.Backing == BackingHeap {
		mapArena = mmarena.Heap
	}

	c := &Collector{
		opts:       o,
		log:        log,
		roots:      roots.New(o.MaxRoots),
		remembered: dirty.NewTracker(),
	}

	nb, release, err := mapArena(o.NurserySize)
	if err != nil {
		return nil, opError(errMetaOpNew, ErrBadOptions, err)
	}
	c.release = append(c.release, release)

	ob, release, err := mapArena(o.OldGenSize)
	if err != nil {
		_ = c.Close()
		return nil, opError(errMetaOpNew, ErrBadOptions, err)
	}
	c.release = append(c.release, release)

	if c.nursery, err = alloc.NewNursery(nb, o.NurseryBase, o.SlotSize); err != nil {
		_ = c.Close()
		return nil, opError(errMetaOpNew, ErrBadOptions, err)
	}
	if c.old, err = alloc.NewOldGen(ob, o.OldGenBase); err != nil {
		_ = c.Close()
		return nil, opError(errMetaOpNew, ErrBadOptions, err)
	}
	c.backpatch = make([]Word, c.nursery.Capacity())
	c.work = make([]int, 0, c.nursery.Capacity())

	c.log.Debug("collector created",
		"nursery_slots", c.nursery.Capacity(),
		"slot_size", o.SlotSize,
		"old_gen_size", o.OldGenSize,
		"max_roots", o.MaxRoots,
		"mapped", o.Backing == BackingAuto && mmarena.Mapped(),
	)
	return c, nil
}

// Close releases arena memory. Words previously returned by the collector
// must not be used afterwards. Close is idempotent.
func (c *Collector) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, release := range c.release {
		if err := release(); err != nil {
			errs = append(errs, err)
		}
	}
	c.release = nil
	return errors.Join(errs...)
}

// Alloc returns the address of a zeroed payload of at least size bytes.
//
// Requests that fit a nursery slot are bump-allocated, running a minor
// collection first when the nursery is full. Larger requests go straight to
// the old generation. Alloc never runs a major collection; on
// ErrOldGenExhausted the embedder may call CollectMajor and retry.
func (c *Collector) Alloc(size int) (Word, error) {
	if c.closed {
		return Nil, opError(errMetaOpAlloc, ErrClosed, nil)
	}
	if size <= 0 {
		return Nil, opError(errMetaOpAlloc, ErrZeroSize, nil)
	}

	p, err := c.allocMinor(size)
	if err == nil || !errors.Is(err, alloc.ErrTooLarge) {
		return p, err
	}

	p, err = c.old.Alloc(size)
	if err != nil {
		c.log.Warn("old generation allocation failed", "size", size, "error", err)
		return Nil, opError(errMetaOpAlloc, ErrOldGenExhausted, err)
	}
	c.stats.DirectOldAllocs++
	return p, nil
}

// allocMinor allocates in the nursery, collecting and retrying once when
// it is full.
func (c *Collector) allocMinor(size int) (Word, error) {
	p, err := c.nursery.Alloc(size)
	if !errors.Is(err, alloc.ErrNurseryFull) {
		return p, err
	}
	if err := c.collectMinor(); err != nil {
		return Nil, err
	}
	return c.nursery.Alloc(size)
}

// AddRootRange registers words as a root range. Empty and already covered
// ranges are no-ops. The slice stays referenced until removed.
func (c *Collector) AddRootRange(words []Word) error {
	if c.closed {
		return opError(errMetaOpAddRoot, ErrClosed, nil)
	}
	err := c.roots.Add(words)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, roots.ErrTableFull):
		return opError(errMetaOpAddRoot, ErrRootTableFull, err)
	case errors.Is(err, roots.ErrOverlap):
		return opError(errMetaOpAddRoot, ErrRangeOverlap, err)
	}
	return opError(errMetaOpAddRoot, ErrBadPointer, err)
}

// RemoveRootRange unregisters the entry containing words. Unregistered
// ranges are ignored.
func (c *Collector) RemoveRootRange(words []Word) {
	if c.closed {
		return
	}
	c.roots.Remove(words)
}

// AddRoot registers the single word *p.
func (c *Collector) AddRoot(p *Word) error {
	return c.AddRootRange(roots.Single(p))
}

// RemoveRoot unregisters the entry containing *p.
func (c *Collector) RemoveRoot(p *Word) {
	c.RemoveRootRange(roots.Single(p))
}

// Options returns the effective configuration.
func (c *Collector) Options() Options { return c.opts }

// Nursery exposes the minor heap for inspection.
func (c *Collector) Nursery() *alloc.Nursery { return c.nursery }

// OldGen exposes the major heap for inspection.
func (c *Collector) OldGen() *alloc.OldGen { return c.old }

// Roots exposes the root registry for inspection.
func (c *Collector) Roots() *roots.Registry { return c.roots }

// Remembered returns the sorted old-generation offsets of words recorded by
// the write barrier since the last minor collection.
func (c *Collector) Remembered() []int { return c.remembered.Offsets() }
