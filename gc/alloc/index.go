package alloc

import "slices"

// ChunkIndex is a sorted snapshot of chunk boundaries. It stays valid until
// the next allocation or release changes the chunk sequence, which makes it
// suitable for the duration of a major collection.
type ChunkIndex struct {
	chunks []Chunk
}

// Index walks the arena once and returns its chunk boundaries.
func (g *OldGen) Index() (*ChunkIndex, error) {
	ix := &ChunkIndex{chunks: make([]Chunk, 0, 64)}
	err := g.Walk(func(c Chunk) bool {
		ix.chunks = append(ix.chunks, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ix, nil
}

// Len returns the number of chunks.
func (ix *ChunkIndex) Len() int { return len(ix.chunks) }

// At returns chunk i. The State field is the state at indexing time.
func (ix *ChunkIndex) At(i int) Chunk { return ix.chunks[i] }

// Lookup returns the position of the chunk containing off using binary
// search.
func (ix *ChunkIndex) Lookup(off int) (int, bool) {
	i, ok := slices.BinarySearchFunc(ix.chunks, off, func(c Chunk, off int) int {
		switch {
		case c.End() <= off:
			return -1
		case c.Off > off:
			return 1
		}
		return 0
	})
	if !ok {
		return 0, false
	}
	return i, true
}
