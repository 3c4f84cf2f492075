package printer

import (
	"strings"
)

func (p *Printer) indent(depth int) string {
	return strings.Repeat(" ", depth*p.opts.IndentSize)
}

func (p *Printer) printNurseryText(n nurseryDump) error {
	if _, err := p.num.Fprintf(p.writer, "Nursery at %s: %d/%d slots of %d bytes\n",
		n.Base, n.Used, n.Capacity, n.SlotSize); err != nil {
		return err
	}
	in := p.indent(1)
	for _, s := range n.Slots {
		mark := ""
		if s.Marked {
			mark = " marked"
		}
		if _, err := p.num.Fprintf(p.writer, "%s[%d] off=%#x size=%d%s\n", in, s.Index, s.Offset, s.Size, mark); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printOldGenText(g oldGenDump) error {
	if _, err := p.num.Fprintf(p.writer, "Old generation at %s: %d bytes, %d used, %d free (largest %d)\n",
		g.Base, g.Size, g.Used, g.Free, g.LargestFree); err != nil {
		return err
	}
	in := p.indent(1)
	for _, ch := range g.Chunks {
		if _, err := p.num.Fprintf(p.writer, "%s%#08x size=%d %s\n", in, ch.Offset, ch.Size, ch.Color); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printRootsText(roots []rootDump) error {
	live := 0
	for _, r := range roots {
		if !r.Empty {
			live++
		}
	}
	if _, err := p.num.Fprintf(p.writer, "Roots: %d entries in %d slots\n", live, len(roots)); err != nil {
		return err
	}
	in, in2 := p.indent(1), p.indent(2)
	for _, r := range roots {
		if r.Empty {
			if _, err := p.num.Fprintf(p.writer, "%s[%d] (empty)\n", in, r.Index); err != nil {
				return err
			}
			continue
		}
		if _, err := p.num.Fprintf(p.writer, "%s[%d] %s-%s (%d words)\n", in, r.Index, r.Begin, r.End, r.Len); err != nil {
			return err
		}
		for k, w := range r.Words {
			if _, err := p.num.Fprintf(p.writer, "%s[%d] %s %s\n", in2, k, w.Value, w.Generation); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) printHeapText(h heapDump) error {
	if err := p.printNurseryText(h.Nursery); err != nil {
		return err
	}
	if err := p.printOldGenText(h.OldGen); err != nil {
		return err
	}
	if err := p.printRootsText(h.Roots); err != nil {
		return err
	}
	s := h.Stats
	_, err := p.num.Fprintf(p.writer,
		"Collections: %d minor, %d major; promoted %d chunks (%d bytes); swept %d chunks (%d bytes); %d remembered\n",
		s.MinorCollections, s.MajorCollections,
		s.PromotedChunks, s.PromotedBytes,
		s.SweptChunks, s.SweptBytes,
		s.RememberedWords)
	return err
}
