package textedit

import "strings"

// SourceMap is a standard version 3 source map describing how the
// materialized text maps back to the buffer's original source.
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// MapOptions controls source-map derivation.
type MapOptions struct {
	// Source is the identifier recorded for the original file.
	Source string
	// File is the generated file name, if known.
	File string
	// IncludeContent embeds the original source in sourcesContent.
	IncludeContent bool
	// Hires emits one mapping per character of untouched source instead of
	// one per untouched span and line start.
	Hires bool
}

// segment is one absolute mapping: generated column, original line and
// column. The source index is always 0 (single-source maps).
type segment struct {
	genCol  int
	srcLine int
	srcCol  int
}

// position is a 0-based line/column cursor.
type position struct {
	line int
	col  int
}

func (p *position) advance(text string) {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
	}
}

// GenerateMap derives a source map from the recorded edit list. Untouched
// spans map position-for-position; replacement text maps to the start of
// the range it replaced.
func (b *Buffer) GenerateMap(opts MapOptions) *SourceMap {
	mb := &mapBuilder{hires: opts.Hires}

	cursor := 0
	for _, e := range b.sorted() {
		mb.walkOriginal(b.source[cursor:e.start])
		if e.text != "" {
			// The replacement points at the origin of the range it replaced.
			mb.addSegment()
			mb.gen.advance(e.text)
		}
		mb.src.advance(b.source[e.start:e.end])
		cursor = e.end
	}
	mb.walkOriginal(b.source[cursor:])

	sm := &SourceMap{
		Version:  3,
		File:     opts.File,
		Sources:  []string{opts.Source},
		Names:    []string{},
		Mappings: encodeMappings(mb.lines),
	}
	if opts.IncludeContent {
		sm.SourcesContent = []string{b.source}
	}
	return sm
}

type mapBuilder struct {
	hires bool
	gen   position
	src   position
	lines [][]segment
}

// walkOriginal advances both cursors through an untouched source span,
// emitting mappings at span start, after every newline, and (in hires mode)
// at every character.
func (mb *mapBuilder) walkOriginal(text string) {
	atBoundary := true
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			mb.gen.line++
			mb.gen.col = 0
			mb.src.line++
			mb.src.col = 0
			atBoundary = true
			continue
		}
		if mb.hires || atBoundary {
			mb.addSegment()
			atBoundary = false
		}
		mb.gen.col++
		mb.src.col++
	}
}

func (mb *mapBuilder) addSegment() {
	for len(mb.lines) <= mb.gen.line {
		mb.lines = append(mb.lines, nil)
	}
	line := mb.lines[mb.gen.line]
	seg := segment{genCol: mb.gen.col, srcLine: mb.src.line, srcCol: mb.src.col}
	if n := len(line); n > 0 && line[n-1] == seg {
		return
	}
	mb.lines[mb.gen.line] = append(line, seg)
}

// encodeMappings serializes segments into the VLQ mappings string. Generated
// columns are relative within a line; source line and column deltas carry
// across line boundaries, as the format requires.
func encodeMappings(lines [][]segment) string {
	var sb strings.Builder
	prevSrcLine, prevSrcCol := 0, 0
	for li, line := range lines {
		if li > 0 {
			sb.WriteByte(';')
		}
		prevGenCol := 0
		for si, seg := range line {
			if si > 0 {
				sb.WriteByte(',')
			}
			encodeVLQ(&sb, seg.genCol-prevGenCol)
			encodeVLQ(&sb, 0) // single source
			encodeVLQ(&sb, seg.srcLine-prevSrcLine)
			encodeVLQ(&sb, seg.srcCol-prevSrcCol)
			prevGenCol = seg.genCol
			prevSrcLine = seg.srcLine
			prevSrcCol = seg.srcCol
		}
	}
	return sb.String()
}
