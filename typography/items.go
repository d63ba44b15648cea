package typography

import (
	"math"

	"github.com/mpizenberg/spandex/units"
)

// Value of the most negative penalty possible. This is considered infinite:
// a break must happen there.
const InfinitelyNegativePenalty int32 = math.MinInt32

// Value of the most positive penalty possible. This is considered infinite:
// a break must never happen there.
const InfinitelyPositivePenalty int32 = math.MaxInt32

// Item is the top abstraction of paragraph content, which is a specification
// for a box, a glue or a penalty. Items are immutable once built; the
// justification engine only reads them.
type Item struct {
	// The width of the item in scaled points. For a penalty this is the
	// width contributed to the line only if the break is taken there (eg a
	// hyphen glyph).
	Width units.Sp

	// The type of the item.
	Content Content
}

// Content is the closed set of item kinds. The justification engine switches
// exhaustively over the three implementations below; no other type satisfies
// this interface.
type Content interface {
	isContent()
}

// BoundingBox refers to something that is meant to be typeset.
//
// Though it holds the glyph it's representing, this item is essentially a
// black box as the only relevant information about it for splitting a
// paragraph into lines is its width. Boxes are indivisible: they are never
// split or resized.
type BoundingBox struct {
	Glyph Glyph
}

// Glue is a blank space which can see its width altered in specified ways.
//
// It can either stretch or shrink up to a certain limit, and is used as
// mortar to leverage to reach a target column width.
type Glue struct {
	// How inclined the glue is to stretch from its natural width, in scaled
	// points.
	Stretchability units.Sp

	// How inclined the glue is to shrink from its natural width, in scaled
	// points.
	Shrinkability units.Sp
}

// Penalty is a potential place to end a line and step to another. It's
// helpful to cut a line in the middle of a word (hyphenation) or to enforce
// a break at the end of paragraphs.
type Penalty struct {
	// The "cost" of the penalty.
	Value int32

	// Whether or not the penalty is considered as flagged. Breaking at two
	// flagged penalties in a row is discouraged (eg consecutive hyphenated
	// line ends).
	Flagged bool
}

func (BoundingBox) isContent() {}
func (Glue) isContent()        {}
func (Penalty) isContent()     {}

// ItemFromGlyph creates a box for a particular glyph and font. The width is
// resolved once through the font metrics collaborator and is immutable
// afterwards.
func ItemFromGlyph(glyph Glyph) Item {
	return Item{
		Width:   glyph.Font.CharWidth(glyph.Char, glyph.Scale),
		Content: BoundingBox{Glyph: glyph},
	}
}

// NewGlue creates some glue. Callers are responsible for keeping
// stretchability and shrinkability non-negative.
func NewGlue(idealSpacing, stretchability, shrinkability units.Sp) Item {
	return Item{
		Width: idealSpacing,
		Content: Glue{
			Stretchability: stretchability,
			Shrinkability:  shrinkability,
		},
	}
}

// NewPenalty creates a penalty.
func NewPenalty(width units.Sp, value int32, flagged bool) Item {
	return Item{
		Width:   width,
		Content: Penalty{Value: value, Flagged: flagged},
	}
}
