package alloc

import "github.com/joshuapare/gengc/internal/format"

// Chunk describes one chunk of an arena.
type Chunk struct {
	Off   int          // Offset of the header within the arena
	Size  int          // Total size including header
	State format.State // Color (old generation) or mark bit (nursery)
}

// PayloadOff returns the offset of the first payload byte.
func (c Chunk) PayloadOff() int { return c.Off + format.HeaderSize }

// End returns the offset just past the chunk.
func (c Chunk) End() int { return c.Off + c.Size }

// Words returns the number of payload words.
func (c Chunk) Words() int { return (c.Size - format.HeaderSize) / format.WordSize }

// WordOff returns the offset of payload word i.
func (c Chunk) WordOff(i int) int { return c.PayloadOff() + i*format.WordSize }

// Contains reports whether off falls inside the chunk.
func (c Chunk) Contains(off int) bool { return off >= c.Off && off < c.End() }
