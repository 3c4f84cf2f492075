package roots

import "github.com/joshuapare/gengc/internal/format"

// DefaultCapacity is the number of slots in a registry created with a
// non-positive capacity.
const DefaultCapacity = 65536

// Range is one registry slot. The zero Range is an empty slot.
type Range struct {
	begin uintptr
	end   uintptr
	words []format.Word
}

// Empty reports whether the slot is unused.
func (r Range) Empty() bool { return r.begin == 0 }

// Words returns the registered slice.
func (r Range) Words() []format.Word { return r.words }

// Bounds returns the host address interval of the range.
func (r Range) Bounds() (begin, end uintptr) { return r.begin, r.end }

func (r Range) contains(begin, end uintptr) bool {
	return r.begin <= begin && end <= r.end
}

func (r Range) overlaps(begin, end uintptr) bool {
	return r.begin < end && begin < r.end
}

// Registry is a fixed-capacity table of root ranges.
type Registry struct {
	// slots grows up to max; len(slots) is the high-water mark of used
	// slots and is trimmed when trailing slots empty out.
	slots []Range
	max   int
	live  int
}

// New creates a registry holding at most capacity ranges.
func New(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{max: capacity}
}

// Add registers words as a root range.
//
// An empty slice is ignored. A range already covered by a registered entry
// is a no-op. Registered entries covered by words are replaced by it.
func (r *Registry) Add(words []format.Word) error {
	if len(words) == 0 {
		return nil
	}
	begin, end := bounds(words)

	absorbed := 0
	for _, s := range r.slots {
		if s.Empty() || !s.overlaps(begin, end) {
			continue
		}
		if s.contains(begin, end) {
			return nil
		}
		if s.begin < begin || s.end > end {
			return ErrOverlap
		}
		absorbed++
	}

	if absorbed == 0 && r.live == r.max {
		return ErrTableFull
	}

	if absorbed > 0 {
		for i, s := range r.slots {
			if !s.Empty() && begin <= s.begin && s.end <= end {
				r.slots[i] = Range{}
				r.live--
			}
		}
	}

	entry := Range{begin: begin, end: end, words: words}
	for i := range r.slots {
		if r.slots[i].Empty() {
			r.slots[i] = entry
			r.live++
			r.trim()
			return nil
		}
	}
	r.slots = append(r.slots, entry)
	r.live++
	return nil
}

// Remove clears the entry that contains words. Unregistered ranges are
// ignored.
func (r *Registry) Remove(words []format.Word) {
	if len(words) == 0 {
		return
	}
	begin, end := bounds(words)
	for i, s := range r.slots {
		if !s.Empty() && s.contains(begin, end) {
			r.slots[i] = Range{}
			r.live--
			r.trim()
			return
		}
	}
}

// trim drops empty slots at the end of the table. Indices of live slots do
// not change.
func (r *Registry) trim() {
	n := len(r.slots)
	for n > 0 && r.slots[n-1].Empty() {
		r.slots[n-1] = Range{}
		n--
	}
	r.slots = r.slots[:n]
}

// Len returns the number of live entries.
func (r *Registry) Len() int { return r.live }

// Cap returns the registry capacity.
func (r *Registry) Cap() int { return r.max }

// Slots returns the slot table up to the high-water mark, including empty
// slots. The returned slice must not be modified.
func (r *Registry) Slots() []Range { return r.slots }

// Each calls fn for every word of every live entry. fn may rewrite the word
// through the pointer.
func (r *Registry) Each(fn func(w *format.Word)) {
	for _, s := range r.slots {
		if s.Empty() {
			continue
		}
		for i := range s.words {
			fn(&s.words[i])
		}
	}
}
