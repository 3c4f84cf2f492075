package gc

// Stats is a snapshot of collector counters and arena occupancy.
type Stats struct {
	MinorCollections int   // Minor collections run (explicit and automatic)
	MajorCollections int   // Major collections run
	PromotedChunks   int   // Nursery slots promoted to the old generation
	PromotedBytes    int64 // Bytes promoted, headers included
	SweptChunks      int   // Old-generation chunks freed by sweeps
	SweptBytes       int64 // Bytes freed by sweeps, headers included
	DirectOldAllocs  int   // Allocations too large for the nursery

	NurseryUsed     int // Allocated nursery slots
	NurseryCapacity int // Total nursery slots

	OldUsedBytes    int // Bytes in allocated chunks
	OldFreeBytes    int // Bytes in free chunks
	OldLargestFree  int // Largest free chunk, header included
	OldAllocCalls   int // Successful old-generation allocations, promotions included
	OldSplitCount   int // Allocations that split a free chunk
	RootEntries     int // Live root registry entries
	RememberedWords int // Words in the remembered set
}

// Stats returns current counters. Arena occupancy requires a walk of the
// old generation.
func (c *Collector) Stats() Stats {
	s := c.stats
	if c.closed {
		return s
	}
	s.NurseryUsed = c.nursery.Used()
	s.NurseryCapacity = c.nursery.Capacity()
	s.OldUsedBytes, s.OldFreeBytes, s.OldLargestFree, _ = c.old.Usage()
	og := c.old.Stats()
	s.OldAllocCalls = og.AllocCalls
	s.OldSplitCount = og.SplitCount
	s.RootEntries = c.roots.Len()
	s.RememberedWords = len(c.remembered.Offsets())
	return s
}
