package typography

import (
	"strings"

	"github.com/mpizenberg/spandex/units"
)

// Cost of breaking right after an explicit hyphen. Finite, so hyphen breaks
// are allowed but not free; flagged, so two hyphen breaks in a row get
// discouraged by cost-based justifiers.
const hyphenPenalty int32 = 50

// Paragraph is an ordered, immutable sequence of items describing a single
// paragraph of text. The first item is a structural marker that justifiers
// skip.
type Paragraph struct {
	Items []Item
}

// ItemizeParagraph turns shaped text into the item sequence consumed by a
// Justifier: one box per glyph, inter-word glue between words, a flagged
// penalty after each explicit hyphen, and the end-of-paragraph tail (an
// infinitely stretchable glue followed by a forced break).
//
// Glue elasticity follows the usual convention of half the space width for
// stretching and a third of it for shrinking.
func ItemizeParagraph(text string, font Font, scale units.Sp) *Paragraph {
	spaceWidth := font.CharWidth(' ', scale)
	stretchability := spaceWidth / 2
	shrinkability := spaceWidth / 3

	paragraph := &Paragraph{}
	// Structural opening marker, skipped by justifiers.
	paragraph.Items = append(paragraph.Items, NewGlue(0, 0, 0))

	words := strings.Fields(text)
	for i, word := range words {
		if i > 0 {
			paragraph.Items = append(paragraph.Items,
				NewGlue(spaceWidth, stretchability, shrinkability))
		}
		for _, char := range word {
			paragraph.Items = append(paragraph.Items, ItemFromGlyph(Glyph{
				Char:  char,
				Font:  font,
				Scale: scale,
			}))
			if char == '-' {
				paragraph.Items = append(paragraph.Items,
					NewPenalty(0, hyphenPenalty, true))
			}
		}
	}

	// End of paragraph: fill the last line with unbounded stretch, then
	// force the final break.
	paragraph.Items = append(paragraph.Items,
		NewGlue(0, units.PlusInfinity, 0),
		NewPenalty(0, InfinitelyNegativePenalty, false))
	return paragraph
}
