// Package textedit provides a range-tracked mutable view over an immutable
// source string. Edits are recorded as (range, replacement) operations and
// applied lazily: materializing the buffer produces the rewritten text, and
// the same edit list drives source-map derivation so every untouched span
// keeps a precise mapping back to its original position.
package textedit

import (
	"fmt"
	"sort"
	"strings"
)

// edit is a single recorded replacement of source[start:end) with text.
// Zero-width edits (start == end) are insertions; seq preserves the order
// of insertions at the same position.
type edit struct {
	start int
	end   int
	text  string
	seq   int
}

// Buffer wraps an immutable source string and records edits without
// materializing the result until String or GenerateMap is called.
type Buffer struct {
	source string
	edits  []edit
	seq    int
}

// NewBuffer wraps source in a fresh edit-tracking buffer.
func NewBuffer(source string) *Buffer {
	return &Buffer{source: source}
}

// Source returns the original, unmodified text.
func (b *Buffer) Source() string { return b.source }

// Len returns the length of the original source in bytes.
func (b *Buffer) Len() int { return len(b.source) }

// HasChanged reports whether any edit has been recorded.
func (b *Buffer) HasChanged() bool { return len(b.edits) > 0 }

// Overwrite replaces source[start:end) with text. Ranges are byte offsets
// into the original source. Overlapping a previously edited range is an
// error: edits never compose over each other, only over the source.
func (b *Buffer) Overwrite(start, end int, text string) error {
	if start < 0 || end > len(b.source) || start > end {
		return fmt.Errorf("textedit: range [%d,%d) out of bounds for source of %d bytes", start, end, len(b.source))
	}
	for _, e := range b.edits {
		if overlaps(start, end, e.start, e.end) {
			return fmt.Errorf("textedit: range [%d,%d) overlaps prior edit [%d,%d)", start, end, e.start, e.end)
		}
	}
	b.edits = append(b.edits, edit{start: start, end: end, text: text, seq: b.seq})
	b.seq++
	return nil
}

// Remove deletes source[start:end).
func (b *Buffer) Remove(start, end int) error {
	return b.Overwrite(start, end, "")
}

// Insert records a zero-width edit placing text at pos. Multiple inserts at
// the same position materialize in call order.
func (b *Buffer) Insert(pos int, text string) error {
	return b.Overwrite(pos, pos, text)
}

// Append places text after the end of the source.
func (b *Buffer) Append(text string) {
	// Cannot fail: [len,len) never overlaps a valid prior range.
	_ = b.Insert(len(b.source), text)
}

// Prepend places text before the start of the source. Repeated prepends
// appear in call order, before any earlier prepend's insertion point edits.
func (b *Buffer) Prepend(text string) {
	_ = b.Insert(0, text)
}

// String materializes the buffer: untouched source spans interleaved with
// replacement text, in source order.
func (b *Buffer) String() string {
	if len(b.edits) == 0 {
		return b.source
	}
	var sb strings.Builder
	cursor := 0
	for _, e := range b.sorted() {
		sb.WriteString(b.source[cursor:e.start])
		sb.WriteString(e.text)
		cursor = e.end
	}
	sb.WriteString(b.source[cursor:])
	return sb.String()
}

// sorted returns the edit list ordered by start offset. At the same start
// offset an insertion goes before a replacement, so text inserted at the
// boundary of a replaced range materializes ahead of it; insertions at the
// same position keep recording order.
func (b *Buffer) sorted() []edit {
	out := make([]edit, len(b.edits))
	copy(out, b.edits)
	sort.Slice(out, func(i, j int) bool {
		if out[i].start != out[j].start {
			return out[i].start < out[j].start
		}
		if iIns, jIns := out[i].start == out[i].end, out[j].start == out[j].end; iIns != jIns {
			return iIns
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// overlaps reports whether [as,ae) and [bs,be) share any byte, treating a
// zero-width range strictly inside a non-empty range as a conflict.
func overlaps(as, ae, bs, be int) bool {
	if max(as, bs) < min(ae, be) {
		return true
	}
	if as == ae && bs < as && as < be {
		return true
	}
	if bs == be && as < bs && bs < ae {
		return true
	}
	return false
}
