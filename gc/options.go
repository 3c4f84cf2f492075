package gc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/gengc/gc/roots"
	"github.com/joshuapare/gengc/internal/format"
)

const (
	// DefaultNurserySize is the nursery capacity in bytes (64 KiB).
	DefaultNurserySize = 64 << 10

	// DefaultSlotSize is the nursery slot size, header included. It caps the
	// size of objects allocated in the nursery.
	DefaultSlotSize = 256

	// DefaultOldGenSize is the old-generation capacity in bytes (32 MiB).
	DefaultOldGenSize = 32 << 20

	// DefaultMaxRoots is the root registry capacity.
	DefaultMaxRoots = roots.DefaultCapacity

	// DefaultNurseryBase is the first virtual address of the nursery.
	DefaultNurseryBase Word = 0x0100_0000

	// DefaultOldGenBase is the first virtual address of the old generation.
	DefaultOldGenBase Word = 0x1000_0000
)

// Backing selects where arena memory comes from.
type Backing int

const (
	// BackingAuto uses anonymous OS mappings where available and the Go
	// heap elsewhere.
	BackingAuto Backing = iota

	// BackingHeap always allocates arenas on the Go heap.
	BackingHeap
)

func (b Backing) String() string {
	switch b {
	case BackingAuto:
		return "auto"
	case BackingHeap:
		return "heap"
	}
	return fmt.Sprintf("backing(%d)", int(b))
}

// Options configures a Collector. Zero fields take their defaults.
type Options struct {
	// NurserySize is the nursery capacity in bytes.
	// Default: 64 KiB
	NurserySize int

	// SlotSize is the nursery slot size in bytes, header included. Requests
	// that do not fit go straight to the old generation.
	// Default: 256
	SlotSize int

	// OldGenSize is the old-generation capacity in bytes.
	// Default: 32 MiB
	OldGenSize int

	// MaxRoots is the number of root registry slots.
	// Default: 65536
	MaxRoots int

	// NurseryBase and OldGenBase place the arenas in the virtual address
	// space. Both must be non-zero, 8-byte aligned, and the arenas must
	// not overlap.
	// Default: 0x0100_0000 and 0x1000_0000
	NurseryBase Word
	OldGenBase  Word

	// Backing selects arena memory.
	// Default: BackingAuto
	Backing Backing

	// Logger receives collection events. When nil, a logger is built from
	// the GENGC_LOG environment variable (discarding when unset).
	Logger *slog.Logger
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		NurserySize: DefaultNurserySize,
		SlotSize:    DefaultSlotSize,
		OldGenSize:  DefaultOldGenSize,
		MaxRoots:    DefaultMaxRoots,
		NurseryBase: DefaultNurseryBase,
		OldGenBase:  DefaultOldGenBase,
		Backing:     BackingAuto,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.NurserySize == 0 {
		o.NurserySize = d.NurserySize
	}
	if o.SlotSize == 0 {
		o.SlotSize = d.SlotSize
	}
	if o.OldGenSize == 0 {
		o.OldGenSize = d.OldGenSize
	}
	if o.MaxRoots == 0 {
		o.MaxRoots = d.MaxRoots
	}
	if o.NurseryBase == 0 {
		o.NurseryBase = d.NurseryBase
	}
	if o.OldGenBase == 0 {
		o.OldGenBase = d.OldGenBase
	}
	return o
}

// validate checks arena geometry.
func (o Options) validate() error {
	if o.SlotSize < format.HeaderSize+format.WordSize || !format.IsAligned(o.SlotSize) {
		return fmt.Errorf("slot size %d must be an 8-byte multiple of at least %d", o.SlotSize, format.HeaderSize+format.WordSize)
	}
	if o.NurserySize < o.SlotSize || !format.IsAligned(o.NurserySize) {
		return fmt.Errorf("nursery size %d must be an 8-byte multiple of at least one slot (%d)", o.NurserySize, o.SlotSize)
	}
	if o.OldGenSize < 2*format.MinChunkSize || !format.IsAligned(o.OldGenSize) {
		return fmt.Errorf("old generation size %d must be an 8-byte multiple of at least %d", o.OldGenSize, 2*format.MinChunkSize)
	}
	if o.MaxRoots < 0 {
		return fmt.Errorf("max roots %d is negative", o.MaxRoots)
	}
	if o.Backing != BackingAuto && o.Backing != BackingHeap {
		return fmt.Errorf("unknown backing %v", o.Backing)
	}

	nursery := format.Span{Base: o.NurseryBase, Len: o.NurserySize}
	old := format.Span{Base: o.OldGenBase, Len: o.OldGenSize}
	for _, s := range []struct {
		name string
		span format.Span
	}{{"nursery", nursery}, {"old generation", old}} {
		if !format.IsAligned(int(s.span.Base)) {
			return fmt.Errorf("%s base %#x is not 8-byte aligned", s.name, uint64(s.span.Base))
		}
		if s.span.End() < s.span.Base {
			return fmt.Errorf("%s span at %#x overflows the address space", s.name, uint64(s.span.Base))
		}
	}
	if nursery.Overlaps(old) {
		return fmt.Errorf("nursery [%#x, %#x) overlaps old generation [%#x, %#x)",
			uint64(nursery.Base), uint64(nursery.End()), uint64(old.Base), uint64(old.End()))
	}
	return nil
}
