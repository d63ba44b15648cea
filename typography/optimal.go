package typography

import (
	"math"

	"github.com/mpizenberg/spandex/units"
)

// Demerit tuning for the optimal justifier.
const (
	linePenalty      = 1.0
	maxBadness       = 10_000.0
	flaggedDemerits  = 100.0
	unfitDemerits    = 1e7
	defaultTolerance = 4.0
)

// OptimalJustifier chooses line breaks by minimizing accumulated demerits
// over all feasible breakpoint sequences, in the style of classic
// minimum-cost paragraph breaking. Unlike NaiveJustifier it honors glue
// stretchability and shrinkability, penalty values (including forced and
// forbidden breaks) and the flagged bit, which discourages two flagged
// breaks in a row.
//
// The computation is a single-threaded, side-effect-free pass: a dynamic
// program over legal breakpoints followed by a rendering pass that
// distributes each line's surplus or deficit over its glue.
type OptimalJustifier struct {
	// Tolerance bounds how far glue may stretch relative to its
	// stretchability (as an adjustment ratio) before a line is considered
	// unfit. Zero means the default of 4.
	Tolerance float64
}

var _ Justifier = OptimalJustifier{}

// breakpoint is a legal place to end a line: a penalty with a non-infinite
// positive value, or a glue immediately following a box. Index -1 denotes
// the start of the paragraph and index len(items) the virtual end.
type breakpoint struct {
	index   int
	penalty float64
	flagged bool
	forced  bool
	// width contributed to the line if the break is taken here.
	width units.Sp
}

// Justify implements Justifier.
func (j OptimalJustifier) Justify(paragraph *Paragraph, textWidth units.Pt) [][]PositionedGlyph {
	tolerance := j.Tolerance
	if tolerance == 0 {
		tolerance = defaultTolerance
	}

	items := paragraph.Items
	n := len(items)
	target := units.SpFromPt(textWidth)

	// Cumulative natural width, stretchability and shrinkability over
	// items[0:i]. Penalty widths are excluded: they only count at an actual
	// break.
	width := make([]units.Sp, n+1)
	stretch := make([]units.Sp, n+1)
	shrink := make([]units.Sp, n+1)
	for i, item := range items {
		width[i+1] = width[i]
		stretch[i+1] = stretch[i]
		shrink[i+1] = shrink[i]
		switch content := item.Content.(type) {
		case BoundingBox:
			width[i+1] = width[i].Add(item.Width)
		case Glue:
			width[i+1] = width[i].Add(item.Width)
			stretch[i+1] = stretch[i].Add(content.Stretchability)
			shrink[i+1] = shrink[i].Add(content.Shrinkability)
		case Penalty:
		}
	}

	// nextBox[i] is the index of the first box at or after i; lines start
	// there so that discarded glue and penalties never lead a line.
	nextBox := make([]int, n+1)
	nextBox[n] = n
	for i := n - 1; i >= 0; i-- {
		if _, ok := items[i].Content.(BoundingBox); ok {
			nextBox[i] = i
		} else {
			nextBox[i] = nextBox[i+1]
		}
	}

	breakpoints := collectBreakpoints(items)

	// forcedBefore[i] counts forced breaks among breakpoints[1:i]; a
	// candidate line may not jump over a forced break.
	forcedBefore := make([]int, len(breakpoints)+1)
	for i, bp := range breakpoints {
		forcedBefore[i+1] = forcedBefore[i]
		if bp.forced {
			forcedBefore[i+1]++
		}
	}

	ratio := func(from, to breakpoint) float64 {
		start := nextBox[from.index+1]
		if start > to.index {
			start = to.index
		}
		natural := width[to.index].Sub(width[start]).Add(to.width)
		gap := target.Sub(natural)
		switch {
		case gap > 0:
			s := stretch[to.index].Sub(stretch[start])
			if s <= 0 {
				return math.Inf(1)
			}
			return float64(gap) / float64(s)
		case gap < 0:
			s := shrink[to.index].Sub(shrink[start])
			if s <= 0 {
				return math.Inf(-1)
			}
			return float64(gap) / float64(s)
		default:
			return 0
		}
	}

	// Shortest path over breakpoints, weighted by demerits.
	const unreached = math.MaxFloat64
	best := make([]float64, len(breakpoints))
	prev := make([]int, len(breakpoints))
	for i := range best {
		best[i] = unreached
		prev[i] = -1
	}
	best[0] = 0

	for to := 1; to < len(breakpoints); to++ {
		for from := 0; from < to; from++ {
			if best[from] == unreached {
				continue
			}
			// A forced break between from and to must be taken.
			if forcedBefore[to]-forcedBefore[from+1] > 0 {
				continue
			}
			r := ratio(breakpoints[from], breakpoints[to])
			d := best[from] + lineDemerits(r, tolerance, breakpoints[to], breakpoints[from])
			if d < best[to] {
				best[to] = d
				prev[to] = from
			}
		}
	}

	// Backtrack the chosen breakpoint sequence.
	last := len(breakpoints) - 1
	var chosen []int
	for at := last; at > 0; at = prev[at] {
		chosen = append(chosen, at)
	}
	for left, right := 0, len(chosen)-1; left < right; left, right = left+1, right-1 {
		chosen[left], chosen[right] = chosen[right], chosen[left]
	}

	var ret [][]PositionedGlyph
	at := breakpoints[0]
	for _, idx := range chosen {
		to := breakpoints[idx]
		start := nextBox[at.index+1]
		if start > to.index {
			start = to.index
		}
		ret = append(ret, renderLine(items, start, to.index, to.width, target, width, stretch, shrink))
		at = to
	}
	return ret
}

func collectBreakpoints(items []Item) []breakpoint {
	breakpoints := []breakpoint{{index: -1}}
	prevWasBox := false
	for i, item := range items {
		switch content := item.Content.(type) {
		case Glue:
			if prevWasBox {
				breakpoints = append(breakpoints, breakpoint{index: i})
			}
			prevWasBox = false
		case Penalty:
			if content.Value < InfinitelyPositivePenalty {
				breakpoints = append(breakpoints, breakpoint{
					index:   i,
					penalty: float64(content.Value),
					flagged: content.Flagged,
					forced:  content.Value <= InfinitelyNegativePenalty,
					width:   item.Width,
				})
			}
			prevWasBox = false
		case BoundingBox:
			prevWasBox = true
		}
	}
	n := len(items)
	if last := breakpoints[len(breakpoints)-1]; !last.forced || last.index != n-1 {
		breakpoints = append(breakpoints, breakpoint{index: n, forced: true})
	}
	return breakpoints
}

// lineDemerits rates a candidate line with adjustment ratio r ending at
// breakpoint to, coming from breakpoint from.
func lineDemerits(r, tolerance float64, to, from breakpoint) float64 {
	badness := maxBadness
	unfit := 0.0
	switch {
	case math.IsInf(r, 1) || math.IsInf(r, -1):
		unfit = unfitDemerits
	case r < -1 || r > tolerance:
		unfit = unfitDemerits
	default:
		badness = math.Min(100*math.Abs(r*r*r), maxBadness)
	}

	var demerits float64
	switch {
	case to.forced:
		demerits = (linePenalty + badness) * (linePenalty + badness)
	case to.penalty >= 0:
		demerits = (linePenalty + badness + to.penalty) * (linePenalty + badness + to.penalty)
	default:
		demerits = (linePenalty+badness)*(linePenalty+badness) - to.penalty*to.penalty
	}
	if to.flagged && from.flagged {
		demerits += flaggedDemerits
	}
	return demerits + unfit
}

// renderLine lays out items[start:end] (plus the break's own width) on one
// line, distributing the surplus or deficit over the line's glue. Glue never
// shrinks below its shrinkability limit; excess width simply overflows.
func renderLine(items []Item, start, end int, breakWidth, target units.Sp, width, stretch, shrink []units.Sp) []PositionedGlyph {
	natural := width[end].Sub(width[start]).Add(breakWidth)
	gap := target.Sub(natural)

	r := 0.0
	if gap > 0 {
		if s := stretch[end].Sub(stretch[start]); s > 0 {
			r = float64(gap) / float64(s)
		}
	} else if gap < 0 {
		if s := shrink[end].Sub(shrink[start]); s > 0 {
			r = math.Max(float64(gap)/float64(s), -1)
		}
	}

	currentX := units.Sp(0)
	var line []PositionedGlyph
	for i := start; i < end && i < len(items); i++ {
		item := items[i]
		switch content := item.Content.(type) {
		case BoundingBox:
			line = append(line, PositionedGlyph{
				Glyph: content.Glyph,
				X:     currentX.Pt(),
			})
			currentX = currentX.Add(item.Width)
		case Glue:
			elasticity := content.Stretchability
			if r < 0 {
				elasticity = content.Shrinkability
			}
			adjusted := item.Width.Add(units.Sp(math.Round(r * float64(elasticity))))
			currentX = currentX.Add(adjusted)
		case Penalty:
		}
	}
	return line
}
