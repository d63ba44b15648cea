package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mpizenberg/spandex/binding"
	"github.com/mpizenberg/spandex/dsl"
	"github.com/mpizenberg/spandex/typography"
	"github.com/mpizenberg/spandex/units"
)

const (
	defaultFontSizePt     = 12.0
	defaultLineHeightRate = 1.4
	// 行宽允许的浮点余量（pt），超过才标记为 overfull。
	overfullSlackPt = 0.05
)

// Build 将解析后的文档排版为页面序列。data 为绑定到段落文本的 JSON 数据，
// 可以为 nil。
func Build(doc *dsl.Document, data any, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	if opts.Fonts == nil {
		return nil, fmt.Errorf("缺少字体后端")
	}
	justifier := opts.Justifier
	if justifier == nil {
		justifier = typography.NaiveJustifier{}
	}

	fonts, err := collectFonts(doc)
	if err != nil {
		return nil, err
	}
	meta := collectMeta(doc)

	pageW, pageH, margin, err := resolvePageGeometry(doc)
	if err != nil {
		return nil, err
	}
	contentWidth := pageW - margin.Left - margin.Right
	if contentWidth <= 0 {
		return nil, fmt.Errorf("页面内容宽度为非正值: %gmm", contentWidth)
	}
	textWidthPt := units.Pt(units.Mm(contentWidth).Pt())

	pc := newPageCollector(pageW, pageH, margin)

	for _, section := range doc.Sections {
		p := section.Paragraph
		if p == nil {
			continue
		}
		box, height, err := composeParagraph(p, data, fonts, justifier, opts.Fonts, textWidthPt, contentWidth, margin.Left)
		if err != nil {
			return nil, err
		}

		pc.ensureSpace(height)
		box.Y = pc.cursorY
		for i := range box.Lines {
			box.Lines[i].Y += pc.cursorY
		}
		pc.curr().Paragraphs = append(pc.curr().Paragraphs, box)
		pc.cursorY += height + paragraphSkip(box.FontSize)
	}

	return &Result{Pages: pc.pages(), Fonts: fonts, Meta: meta}, nil
}

// composeParagraph 对单个段落执行逐字形排版，返回段落框与其总高度（mm）。
// 返回的 LineBox.Y 是相对段落顶部的偏移，由调用方回填页面坐标。
func composeParagraph(p *dsl.ParagraphSection, data any, fonts map[string]FontResource, justifier typography.Justifier, provider FontProvider, textWidthPt units.Pt, contentWidth, left float64) (ParagraphBox, float64, error) {
	attrs := parseArgs(p.Args)

	fontRes, err := resolveFontResource(attrs["font"], fonts)
	if err != nil {
		return ParagraphBox{}, 0, err
	}
	font, err := provider.FontFor(fontRes)
	if err != nil {
		return ParagraphBox{}, 0, err
	}

	fontSize := parseFontSize(attrs["size"])
	scale := units.SpFromPt(units.Pt(fontSize))
	lineHeightPt := resolveLineHeight(attrs["line-height"], fontSize)
	lineHeightMm := float64(units.Pt(lineHeightPt).Mm())

	text := paragraphText(p)
	text = binding.Interpolate(text, data)

	paragraph := typography.ItemizeParagraph(text, font, scale)
	lines := justifier.Justify(paragraph, textWidthPt)

	box := ParagraphBox{
		X:        left,
		Width:    contentWidth,
		Font:     fontRes.Name,
		FontSize: fontSize,
	}
	for i, line := range lines {
		width := lineWidth(line)
		box.Lines = append(box.Lines, LineBox{
			Y:        float64(i) * lineHeightMm,
			Width:    float64(width),
			Overfull: float64(width) > float64(textWidthPt)+overfullSlackPt,
			Glyphs:   glyphBoxes(line),
		})
	}
	height := float64(len(box.Lines)) * lineHeightMm
	return box, height, nil
}

// lineWidth 计算一行的实际渲染宽度（pt）：最靠右字形的偏移加上其宽度。
func lineWidth(line []typography.PositionedGlyph) units.Pt {
	width := units.Pt(0)
	for _, g := range line {
		extent := g.X + g.Glyph.Font.CharWidth(g.Glyph.Char, g.Glyph.Scale).Pt()
		if extent > width {
			width = extent
		}
	}
	return width
}

func glyphBoxes(line []typography.PositionedGlyph) []GlyphBox {
	boxes := make([]GlyphBox, 0, len(line))
	for _, g := range line {
		boxes = append(boxes, GlyphBox{Char: string(g.Glyph.Char), X: float64(g.X)})
	}
	return boxes
}

func paragraphText(p *dsl.ParagraphSection) string {
	parts := make([]string, 0, len(p.Texts))
	for _, t := range p.Texts {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, " ")
}

// paragraphSkip 段落之间的垂直间距（mm）。
func paragraphSkip(fontSizePt float64) float64 {
	return float64(units.Pt(fontSizePt / 2).Mm())
}

// pageCollector 维护分页游标：当剩余空间放不下一个段落时另起新页。
type pageCollector struct {
	width, height float64
	margin        Margin
	items         []Page
	cursorY       float64
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{width: width, height: height, margin: margin}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() {
	pc.items = append(pc.items, Page{
		Width:  pc.width,
		Height: pc.height,
		Margin: pc.margin,
	})
	pc.cursorY = pc.margin.Top
}

func (pc *pageCollector) curr() *Page {
	return &pc.items[len(pc.items)-1]
}

func (pc *pageCollector) contentBottom() float64 {
	return pc.height - pc.margin.Bottom
}

// ensureSpace 保证当前页还能容纳 height 高度，否则换页。比整页还高的
// 段落保留在新页上任其溢出。
func (pc *pageCollector) ensureSpace(height float64) {
	if pc.cursorY+height > pc.contentBottom() && len(pc.curr().Paragraphs) > 0 {
		pc.newPage()
	}
}

func (pc *pageCollector) pages() []Page {
	return pc.items
}

// collectFonts 汇总文档声明的全部字体资源。
func collectFonts(doc *dsl.Document) (map[string]FontResource, error) {
	fonts := map[string]FontResource{}
	for _, section := range doc.Sections {
		f := section.Font
		if f == nil {
			continue
		}
		if _, dup := fonts[f.Name]; dup {
			return nil, fmt.Errorf("字体 %s 重复声明", f.Name)
		}
		res := FontResource{Name: f.Name}
		for _, entry := range f.Entries {
			switch entry.Key {
			case "src":
				res.Src = entry.Value.Text()
			case "style":
				res.Style = entry.Value.Text()
			}
		}
		if res.Src == "" {
			return nil, fmt.Errorf("字体 %s 缺少 src", f.Name)
		}
		fonts[f.Name] = res
	}
	if len(fonts) == 0 {
		return nil, fmt.Errorf("文档未声明任何字体")
	}
	return fonts, nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	meta := DocumentMeta{}
	for _, section := range doc.Sections {
		m := section.Meta
		if m == nil {
			continue
		}
		for _, entry := range m.Entries {
			val := entry.Value.Text()
			switch entry.Key {
			case "title":
				meta.Title = val
			case "author":
				meta.Author = val
			case "subject":
				meta.Subject = val
			case "creator":
				meta.Creator = val
			case "keywords":
				meta.Keywords = splitKeywords(val)
			}
		}
	}
	return meta
}

func splitKeywords(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolveFontResource(name string, fonts map[string]FontResource) (FontResource, error) {
	if name != "" {
		if res, ok := fonts[name]; ok {
			return res, nil
		}
		return FontResource{}, fmt.Errorf("未声明的字体: %s", name)
	}
	if res, ok := fonts["Body"]; ok {
		return res, nil
	}
	for _, res := range fonts {
		return res, nil
	}
	return FontResource{}, fmt.Errorf("文档未声明任何字体")
}

var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"Letter": {215.9, 279.4},
}

// resolvePageGeometry 解析 page 小节；缺省为 A4 纵向、四边 20mm。
func resolvePageGeometry(doc *dsl.Document) (float64, float64, Margin, error) {
	margin := Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}
	var page *dsl.PageSection
	for _, section := range doc.Sections {
		if section.Page != nil {
			page = section.Page
			break
		}
	}
	if page == nil {
		size := pagePresets["A4"]
		return size[0], size[1], margin, nil
	}

	size, ok := pagePresets[page.Size]
	if !ok {
		return 0, 0, Margin{}, fmt.Errorf("未知页面尺寸: %s", page.Size)
	}
	width, height := size[0], size[1]

	params := page.Params
	for i := 0; i < len(params); i++ {
		switch params[i].Value {
		case "landscape":
			width, height = height, width
		case "portrait":
			// 缺省方向
		case "margin":
			margin = resolveMargin(params[i+1:])
			i = len(params)
		}
	}
	return width, height, margin, nil
}

// resolveMargin 支持 1、2、3、4 个值的语义（与 CSS 缩写一致，3 值时左为 0）。
func resolveMargin(params []*dsl.Lexeme) Margin {
	values := []float64{}
	for _, p := range params {
		if p.Type != "Number" {
			break
		}
		values = append(values, parseLength(p.Value))
		if len(values) == 4 {
			break
		}
	}
	switch len(values) {
	case 1:
		return Margin{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}
	case 2:
		return Margin{Top: values[0], Bottom: values[0], Right: values[1], Left: values[1]}
	case 3:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2]}
	case 4:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}
	default:
		return Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}
	}
}

// parseArgs 把段落参数按 key value 成对解析为属性表。
func parseArgs(args []*dsl.Lexeme) map[string]string {
	attrs := map[string]string{}
	for i := 0; i+1 < len(args); i += 2 {
		attrs[args[i].Value] = args[i+1].Value
	}
	return attrs
}

// parseFontSize 解析字号（pt），非法或缺省时退回 12pt。
func parseFontSize(value string) float64 {
	if value == "" {
		return defaultFontSizePt
	}
	num := trimUnit(value)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 {
		return defaultFontSizePt
	}
	if strings.HasSuffix(value, "mm") {
		return float64(units.Mm(f).Pt())
	}
	return f
}

// resolveLineHeight 解析行高（pt）：倍数（如 1.4x）或绝对值（如 18pt），
// 缺省为字号的 1.4 倍。
func resolveLineHeight(value string, fontSizePt float64) float64 {
	if value == "" {
		return fontSizePt * defaultLineHeightRate
	}
	if strings.HasSuffix(value, "x") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64)
		if err != nil || f <= 0 {
			return fontSizePt * defaultLineHeightRate
		}
		return fontSizePt * f
	}
	num := trimUnit(value)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f <= 0 {
		return fontSizePt * defaultLineHeightRate
	}
	if strings.HasSuffix(value, "mm") {
		return float64(units.Mm(f).Pt())
	}
	return f
}

// parseLength 解析带单位的长度为毫米；无单位时按毫米处理。
func parseLength(value string) float64 {
	num := trimUnit(value)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.HasSuffix(value, "pt"):
		return float64(units.Pt(f).Mm())
	case strings.HasSuffix(value, "cm"):
		return f * 10
	case strings.HasSuffix(value, "in"):
		return f * units.MmPerIn
	default:
		return f
	}
}

func trimUnit(value string) string {
	for _, suffix := range []string{"mm", "cm", "in", "pt", "x"} {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSuffix(value, suffix)
		}
	}
	return value
}
