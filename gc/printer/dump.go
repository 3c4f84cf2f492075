package printer

import (
	"fmt"

	"github.com/joshuapare/gengc/gc"
	"github.com/joshuapare/gengc/gc/alloc"
	"github.com/joshuapare/gengc/internal/format"
)

// nurseryDump is a snapshot of the minor heap.
type nurseryDump struct {
	Base     string     `json:"base"`
	SlotSize int        `json:"slot_size"`
	Capacity int        `json:"capacity"`
	Used     int        `json:"used"`
	Slots    []slotDump `json:"slots"`
}

type slotDump struct {
	Index  int  `json:"index"`
	Offset int  `json:"offset"`
	Size   int  `json:"size"`
	Marked bool `json:"marked"`
}

// oldGenDump is a snapshot of the major heap.
type oldGenDump struct {
	Base        string      `json:"base"`
	Size        int         `json:"size"`
	Used        int         `json:"used"`
	Free        int         `json:"free"`
	LargestFree int         `json:"largest_free"`
	Chunks      []chunkDump `json:"chunks"`
}

type chunkDump struct {
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
	Color  string `json:"color"`
}

type rootDump struct {
	Index int        `json:"index"`
	Empty bool       `json:"empty,omitempty"`
	Begin string     `json:"begin,omitempty"`
	End   string     `json:"end,omitempty"`
	Len   int        `json:"words"`
	Words []wordDump `json:"word_list,omitempty"`
}

type wordDump struct {
	Value      string `json:"value"`
	Generation string `json:"generation"`
}

type heapDump struct {
	Nursery nurseryDump `json:"nursery"`
	OldGen  oldGenDump  `json:"old_gen"`
	Roots   []rootDump  `json:"roots"`
	Stats   gc.Stats    `json:"stats"`
}

func hex(v uint64) string { return fmt.Sprintf("%#x", v) }

func (p *Printer) nursery() nurseryDump {
	n := p.c.Nursery()
	d := nurseryDump{
		Base:     hex(uint64(n.Span().Base)),
		SlotSize: n.SlotSize(),
		Capacity: n.Capacity(),
		Used:     n.Used(),
		Slots:    make([]slotDump, 0, n.Used()),
	}
	for i := range n.Used() {
		ch := n.Chunk(i)
		d.Slots = append(d.Slots, slotDump{
			Index:  i,
			Offset: ch.Off,
			Size:   ch.Size,
			Marked: n.Marked(i),
		})
	}
	return d
}

func (p *Printer) oldGen() (oldGenDump, error) {
	g := p.c.OldGen()
	d := oldGenDump{
		Base:   hex(uint64(g.Span().Base)),
		Size:   g.Span().Len,
		Chunks: []chunkDump{},
	}
	err := g.Walk(func(ch alloc.Chunk) bool {
		if ch.State == format.Free {
			d.Free += ch.Size
			d.LargestFree = max(d.LargestFree, ch.Size)
			if !p.opts.ShowFree {
				return true
			}
		} else {
			d.Used += ch.Size
		}
		d.Chunks = append(d.Chunks, chunkDump{Offset: ch.Off, Size: ch.Size, Color: ch.State.String()})
		return true
	})
	if err != nil {
		return oldGenDump{}, fmt.Errorf("printer: walk old generation: %w", err)
	}
	return d, nil
}

func (p *Printer) roots() []rootDump {
	slots := p.c.Roots().Slots()
	out := make([]rootDump, 0, len(slots))
	for i, s := range slots {
		if s.Empty() {
			out = append(out, rootDump{Index: i, Empty: true})
			continue
		}
		begin, end := s.Bounds()
		r := rootDump{
			Index: i,
			Begin: hex(uint64(begin)),
			End:   hex(uint64(end)),
			Len:   len(s.Words()),
		}
		if p.opts.ShowRootWords {
			for _, w := range s.Words() {
				r.Words = append(r.Words, wordDump{
					Value:      hex(uint64(w)),
					Generation: p.c.Generation(w).String(),
				})
			}
		}
		out = append(out, r)
	}
	return out
}
