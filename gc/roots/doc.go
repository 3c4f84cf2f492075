// Package roots implements the root registry: a fixed-capacity table of
// host-owned word ranges that both collections scan as their starting set.
//
// # Entries
//
// Each entry is a []Word owned by the embedder (a stack frame, a global slot
// table). The registry identifies an entry by the half-open host address
// interval [begin, end) of its backing array. Entries are never shifted: a
// removed entry leaves an empty slot that a later Add may reuse, so slot
// indices stay stable for diagnostics.
//
// # Overlap Rules
//
// No two live entries cover the same word. Adding a range already covered by
// an entry is a no-op; adding a range that covers existing entries replaces
// them; adding a range that partially overlaps an entry fails with ErrOverlap.
// A word scanned twice would be backpatched twice during promotion.
//
// # Lifetime
//
// The registry keeps a reference to every registered slice, so the backing
// memory stays valid while registered. The embedder must still remove a range
// once the words in it no longer hold live references.
//
// # Thread Safety
//
// Registry instances are not thread-safe. Callers must serialize access
// together with the rest of the collector.
package roots
