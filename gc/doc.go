// Package gc is an embeddable generational collector for a host language's
// heap values.
//
// # Overview
//
// A Collector owns two fixed-capacity arenas and a root registry:
//
//   - Nursery: bump-allocated fixed-size slots, emptied by every minor
//     collection
//   - Old generation: variable-size chunks allocated first-fit and reclaimed
//     by a tri-color mark-sweep major collection
//   - Roots: host-owned []Word ranges scanned by both collections
//
// Scanning is conservative. A word is a candidate pointer when its low bit
// is clear and it falls inside one of the arenas; odd words are opaque
// scalars. The collector never needs to know what a client stores in a
// chunk.
//
// # Usage Example
//
//	c, err := gc.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	stack := make([]gc.Word, 4)
//	if err := c.AddRootRange(stack); err != nil {
//	    return err
//	}
//
//	p, err := c.Alloc(16)
//	if err != nil {
//	    return err
//	}
//	stack[0] = p
//
//	// stack[0] now points into the old generation.
//	err = c.CollectMinor()
//
// # Minor Collection
//
// Runs automatically when the nursery is full, or on CollectMinor:
//
//  1. Mark: every nursery slot reachable from the roots and from remembered
//     old-generation words is marked, using an explicit worklist.
//  2. Promote: each marked slot gets a same-size chunk in the old generation.
//  3. Backpatch: root words, remembered words and payload words of marked
//     slots that point into a marked slot are rewritten to the new address.
//  4. Copy: payloads are copied to their new chunks.
//  5. Reset: the nursery counter returns to zero.
//
// If the old generation cannot hold every survivor, the chunks reserved in
// step 2 are released, no word has been rewritten, and ErrOldGenExhausted is
// returned.
//
// # Major Collection
//
// Runs only on CollectMajor. Every allocated chunk is reset to white, chunks
// referenced by roots or by allocated nursery slots are grayed, gray chunks
// are blackened while their children are grayed, and chunks still white are
// freed. Free chunks are not coalesced.
//
// # Write Barrier
//
// StoreWord records old-generation words that receive a nursery pointer.
// Writes made through the slice returned by Payload bypass the barrier; use
// StoreWord for any pointer that may target the nursery.
//
// # Thread Safety
//
// A Collector is single-mutator and stop-the-world. A multi-threaded host
// must serialize every call (allocation, root registration, collections and
// word access) under one lock.
package gc
