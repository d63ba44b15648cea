package typography

import "github.com/mpizenberg/spandex/units"

// Fixed inter-word spacing used by the naive justifier while accumulating
// words and as fallback when a line holds a single word.
const interwordSpacing = units.Pt(7.5)

// PositionedGlyph is a glyph together with its horizontal offset from the
// left margin of its line, in points.
type PositionedGlyph struct {
	Glyph Glyph
	X     units.Pt
}

// Justifier is an algorithm that justifies a paragraph: it partitions the
// paragraph's items into lines and assigns each glyph a horizontal offset on
// its line. Implementations are pure: same inputs, same output, no state
// kept between calls.
type Justifier interface {
	Justify(paragraph *Paragraph, textWidth units.Pt) [][]PositionedGlyph
}

// NaiveJustifier goes to the next line once a word overtakes the text width.
//
// It is a word-based greedy fill: penalties are ignored, words never split,
// and completed lines are redistributed with a uniform inter-word gap. A
// single word wider than the text width deliberately overflows its line.
type NaiveJustifier struct{}

var _ Justifier = NaiveJustifier{}

// Justify implements Justifier.
func (NaiveJustifier) Justify(paragraph *Paragraph, textWidth units.Pt) [][]PositionedGlyph {
	var ret [][]PositionedGlyph
	var currentLine [][]Item
	var currentWord []Item
	currentX := units.Pt(0)

	items := paragraph.Items
	if len(items) > 0 {
		// Skip the structural opening marker.
		items = items[1:]
	}

	for _, item := range items {
		switch item.Content.(type) {
		case BoundingBox:
			currentX += item.Width.Pt()
			currentWord = append(currentWord, item)
		case Glue:
			currentLine = append(currentLine, currentWord)
			currentX += interwordSpacing
			currentWord = nil
		case Penalty:
			// Inert in this policy.
		}

		if currentX > textWidth && len(currentLine) > 1 {
			currentX = 0

			// The most recent word didn't fit: defer it to the next line
			// and justify the rest of the current one.
			lastWord := currentLine[len(currentLine)-1]
			currentLine = currentLine[:len(currentLine)-1]

			ret = append(ret, justifyLine(currentLine, textWidth))
			currentLine = [][]Item{lastWord}
		}
	}

	// There may still be content in currentWord and currentLine.
	if len(currentWord) > 0 {
		currentLine = append(currentLine, currentWord)
	}
	ret = append(ret, flushLine(currentLine))

	return ret
}

// justifyLine lays out a completed line, spreading words evenly so the line
// spans the text width. With one word or fewer there is nothing to divide
// by, so the fixed fallback spacing is used instead.
func justifyLine(line [][]Item, textWidth units.Pt) []PositionedGlyph {
	occupiedWidth := units.Pt(0)
	for _, word := range line {
		for _, item := range word {
			occupiedWidth += item.Width.Pt()
		}
	}

	availableSpace := textWidth - occupiedWidth
	wordSpace := interwordSpacing
	if len(line) > 1 {
		wordSpace = availableSpace / units.Pt(len(line)-1)
	}

	return placeWords(line, wordSpace)
}

// flushLine lays out a final (possibly short) line with the fixed fallback
// spacing, since there is no following content to justify against.
func flushLine(line [][]Item) []PositionedGlyph {
	return placeWords(line, interwordSpacing)
}

func placeWords(line [][]Item, wordSpace units.Pt) []PositionedGlyph {
	currentX := units.Pt(0)
	var finalLine []PositionedGlyph
	for _, word := range line {
		for _, item := range word {
			if box, ok := item.Content.(BoundingBox); ok {
				finalLine = append(finalLine, PositionedGlyph{
					Glyph: box.Glyph,
					X:     currentX,
				})
				currentX += item.Width.Pt()
			}
		}
		// Put a space after the word.
		currentX += wordSpace
	}
	return finalLine
}
