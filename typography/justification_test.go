package typography

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mpizenberg/spandex/units"
)

// testFont gives letters a 10 pt advance, spaces 5 pt, and capitals used as
// "wide" glyphs 100 pt.
func testFont() stubFont {
	return stubFont{
		widths: map[rune]units.Sp{
			' ': units.SpFromPt(5),
			'W': units.SpFromPt(100),
			'X': units.SpFromPt(100),
		},
		def: units.SpFromPt(10),
	}
}

func lineChars(line []PositionedGlyph) string {
	out := make([]rune, 0, len(line))
	for _, g := range line {
		out = append(out, g.Glyph.Char)
	}
	return string(out)
}

func lineOffsets(line []PositionedGlyph) []units.Pt {
	out := make([]units.Pt, 0, len(line))
	for _, g := range line {
		out = append(out, g.X)
	}
	return out
}

func TestNaiveShortParagraphSingleLine(t *testing.T) {
	paragraph := ItemizeParagraph("a b c", testFont(), units.SpFromPt(12))
	lines := NaiveJustifier{}.Justify(paragraph, 100)

	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	if got := lineChars(lines[0]); got != "abc" {
		t.Fatalf("line content = %q, want \"abc\"", got)
	}
	// The final line uses the fixed fallback spacing of 7.5 pt.
	want := []units.Pt{0, 17.5, 35}
	if diff := cmp.Diff(want, lineOffsets(lines[0])); diff != "" {
		t.Fatalf("glyph offsets mismatch (-want +got):\n%s", diff)
	}
}

// TestJustifyLineGapDivision covers the redistribution step: three one-glyph
// words whose total natural width is under the target get a uniform gap of
// (target - occupied) / (words - 1).
func TestJustifyLineGapDivision(t *testing.T) {
	font := testFont()
	scale := units.SpFromPt(12)
	word := func(char rune) []Item {
		return []Item{ItemFromGlyph(Glyph{Char: char, Font: font, Scale: scale})}
	}
	line := [][]Item{word('a'), word('b'), word('c')}

	got := justifyLine(line, 100)
	// gap = (100 - 30) / 2 = 35: offsets 0, 10+35, 2*(10+35).
	want := []units.Pt{0, 45, 90}
	if diff := cmp.Diff(want, lineOffsets(got)); diff != "" {
		t.Fatalf("justified offsets mismatch (-want +got):\n%s", diff)
	}
}

// TestJustifyLineSingleWordFallback checks the division-by-zero guard: a
// one-word line never divides by (words - 1) and falls back to the fixed
// spacing.
func TestJustifyLineSingleWordFallback(t *testing.T) {
	font := testFont()
	scale := units.SpFromPt(12)
	word := []Item{
		ItemFromGlyph(Glyph{Char: 'a', Font: font, Scale: scale}),
		ItemFromGlyph(Glyph{Char: 'b', Font: font, Scale: scale}),
	}

	got := justifyLine([][]Item{word}, 100)
	want := []units.Pt{0, 10}
	if diff := cmp.Diff(want, lineOffsets(got)); diff != "" {
		t.Fatalf("single-word offsets mismatch (-want +got):\n%s", diff)
	}
}

// TestNaiveOverfullWordNotSplit covers the indivisibility edge case: a word
// wider than the text width overflows its line, its glyphs stay together and
// in order.
func TestNaiveOverfullWordNotSplit(t *testing.T) {
	paragraph := ItemizeParagraph("a WX b", testFont(), units.SpFromPt(12))
	lines := NaiveJustifier{}.Justify(paragraph, 100)

	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if got := lineChars(lines[0]); got != "a" {
		t.Fatalf("first line = %q, want \"a\"", got)
	}
	if got := lineChars(lines[1]); got != "WXb" {
		t.Fatalf("second line = %q, want \"WXb\"", got)
	}
	// The wide word starts at the margin and is laid out contiguously.
	want := []units.Pt{0, 100, 207.5}
	if diff := cmp.Diff(want, lineOffsets(lines[1])); diff != "" {
		t.Fatalf("overfull line offsets mismatch (-want +got):\n%s", diff)
	}
	if width := lines[1][2].X; width <= 100 {
		t.Fatalf("overfull line must exceed the text width, last glyph at %v", width)
	}
}

// TestNaiveExhaustive asserts every box of the input shows up in exactly one
// output line, in order.
func TestNaiveExhaustive(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	paragraph := ItemizeParagraph(text, testFont(), units.SpFromPt(12))
	lines := NaiveJustifier{}.Justify(paragraph, 120)

	var inputChars []rune
	for _, item := range paragraph.Items {
		if box, ok := item.Content.(BoundingBox); ok {
			inputChars = append(inputChars, box.Glyph.Char)
		}
	}

	var outputChars []rune
	for _, line := range lines {
		prev := units.Pt(-1)
		for _, g := range line {
			if g.X < 0 || g.X <= prev {
				t.Fatalf("offsets must be non-negative and strictly increasing, got %v after %v", g.X, prev)
			}
			prev = g.X
			outputChars = append(outputChars, g.Glyph.Char)
		}
	}
	if diff := cmp.Diff(string(inputChars), string(outputChars)); diff != "" {
		t.Fatalf("glyphs lost or duplicated (-want +got):\n%s", diff)
	}
}

// TestNaiveEmptyParagraph: no words still yield a single (empty) line.
func TestNaiveEmptyParagraph(t *testing.T) {
	paragraph := ItemizeParagraph("", testFont(), units.SpFromPt(12))
	lines := NaiveJustifier{}.Justify(paragraph, 100)

	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	if len(lines[0]) != 0 {
		t.Fatalf("empty paragraph produced %d glyphs", len(lines[0]))
	}
}

func TestNaiveSingleOverwideWord(t *testing.T) {
	paragraph := ItemizeParagraph("WX", testFont(), units.SpFromPt(12))
	lines := NaiveJustifier{}.Justify(paragraph, 100)

	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	want := []units.Pt{0, 100}
	if diff := cmp.Diff(want, lineOffsets(lines[0])); diff != "" {
		t.Fatalf("offsets mismatch (-want +got):\n%s", diff)
	}
}
