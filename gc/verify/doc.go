// Package verify checks structural invariants of a collector's heaps.
//
// # Overview
//
// The checks are used in tests to confirm that allocation and collection
// leave both arenas well formed. Each function returns nil or a
// *ValidationError describing the first violation found.
//
// # Quick Start
//
//	c, _ := gc.New(nil)
//	// ... allocate, collect ...
//	if err := verify.AllInvariants(c); err != nil {
//	    t.Fatalf("heap invalid: %v", err)
//	}
//
// Checks that only hold at particular moments are separate:
//
//	_ = c.CollectMinor()
//	if err := verify.NoNurseryPointers(c); err != nil {
//	    t.Fatalf("dangling nursery pointer: %v", err)
//	}
//
// # Checks
//
// AllInvariants runs, in order:
//  1. ChunkChain: old-generation chunks tile the arena with aligned sizes,
//     and no chunk is left gray outside a major collection
//  2. NurserySlots: allocated slots carry headers that fit their slot
//  3. RootRegistry: live entries are disjoint and the table has no trailing
//     empty slots
//  4. RememberedSet: every old-generation word holding a nursery pointer
//     was recorded by the write barrier
//
// NoNurseryPointers holds only right after a successful minor collection.
//
// # ValidationError
//
//	type ValidationError struct {
//	    Type    string         // check that failed, e.g. "ChunkChain"
//	    Message string         // description
//	    Offset  int            // arena offset, or -1
//	    Details map[string]any // extra context
//	}
package verify
