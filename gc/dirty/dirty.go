// Package dirty provides the remembered set: a record of old-generation
// words that were written with a pointer into the nursery.
//
// A minor collection only scans root ranges, so an old-generation object
// that is the sole owner of a nursery object would otherwise lose it. The
// collector's write barrier records the word offset here; the minor
// collector treats every recorded word as an extra root and clears the set
// once the nursery has been emptied.
package dirty

import "sort"

// defaultCapacity is the pre-allocated capacity for recorded offsets.
const defaultCapacity = 64

// Tracker accumulates old-generation word offsets.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	offs []int // Recorded word offsets (deduplicated at read time)
	adds int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{offs: make([]int, 0, defaultCapacity)}
}

// Add records a word offset. Duplicates are allowed and collapsed by
// Offsets.
func (t *Tracker) Add(off int) {
	t.offs = append(t.offs, off)
	t.adds++
}

// Len returns the number of recorded offsets, duplicates included.
func (t *Tracker) Len() int { return len(t.offs) }

// Adds returns the number of Add calls since creation.
func (t *Tracker) Adds() int { return t.adds }

// Offsets returns the recorded offsets sorted and deduplicated. The tracker
// keeps the compacted form.
func (t *Tracker) Offsets() []int {
	t.coalesce()
	out := make([]int, len(t.offs))
	copy(out, t.offs)
	return out
}

// Retain drops every offset for which keep returns false.
func (t *Tracker) Retain(keep func(off int) bool) {
	kept := t.offs[:0]
	for _, off := range t.offs {
		if keep(off) {
			kept = append(kept, off)
		}
	}
	t.offs = kept
}

// Reset clears all recorded offsets.
func (t *Tracker) Reset() {
	t.offs = t.offs[:0]
}

// coalesce sorts the offsets and removes duplicates in place.
func (t *Tracker) coalesce() {
	if len(t.offs) < 2 {
		return
	}
	sort.Ints(t.offs)
	merged := t.offs[:1]
	for _, off := range t.offs[1:] {
		if off != merged[len(merged)-1] {
			merged = append(merged, off)
		}
	}
	t.offs = merged
}
