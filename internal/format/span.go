package format

// Span is the virtual address range [Base, Base+Len) assigned to an arena.
type Span struct {
	Base Word
	Len  int
}

// End returns the first address past the span.
func (s Span) End() Word {
	return s.Base + Word(s.Len)
}

// Contains reports whether w falls inside the span.
func (s Span) Contains(w Word) bool {
	return w >= s.Base && w < s.End()
}

// Points reports whether w is a candidate pointer into the span: untagged and
// in range.
func (s Span) Points(w Word) bool {
	return !w.IsTagged() && s.Contains(w)
}

// Offset converts an address inside the span to an arena offset.
func (s Span) Offset(w Word) int {
	return int(w - s.Base)
}

// Addr converts an arena offset to an address.
func (s Span) Addr(off int) Word {
	return s.Base + Word(off)
}

// Overlaps reports whether two spans share any address.
func (s Span) Overlaps(o Span) bool {
	return s.Base < o.End() && o.Base < s.End()
}
