package typography

import "github.com/mpizenberg/spandex/units"

// Font is the metrics collaborator supplied by the font system. It must be
// total and deterministic for a given (rune, scale) pair, and must not be
// mutated while a paragraph referencing it is being justified.
type Font interface {
	// CharWidth returns the horizontal advance of a character at the given
	// scale, in scaled points.
	CharWidth(char rune, scale units.Sp) units.Sp
}

// Glyph ties a character to the font and scale it was measured with. The
// font reference is non-owning: glyphs borrow the font table, they never
// copy it.
type Glyph struct {
	Char  rune
	Font  Font
	Scale units.Sp
}
