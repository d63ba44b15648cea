package layout

// 该文件定义布局结果与资源描述，供布局计算、渲染与调试 JSON 共用。
// 页面几何一律以毫米（mm）为单位；行内字形偏移保持排版引擎输出的点（pt）。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages []Page                  `json:"pages"`
	Fonts map[string]FontResource `json:"fonts"`
	Meta  DocumentMeta            `json:"meta"`
}

// FontResource 描述字体资源，src 可以是文件路径或 built-in:* 形式。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"`
}

// Page 记录页面尺寸、边距与排好版的段落。
type Page struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Margin     Margin         `json:"margin"`
	Paragraphs []ParagraphBox `json:"paragraphs"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ParagraphBox 表示一个已经排好坐标的段落。X/Y/Width 为页面坐标（mm），
// FontSize 为字号（pt）。
type ParagraphBox struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Font     string    `json:"font"`
	FontSize float64   `json:"fontSize"`
	Lines    []LineBox `json:"lines"`
}

// LineBox 表示排版后的一行：Y 为行顶部的页面坐标（mm），Width 为该行的
// 实际渲染宽度（pt）。Overfull 标记该行超出了目标宽度（诊断用，不影响内容）。
type LineBox struct {
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Overfull bool       `json:"overfull,omitempty"`
	Glyphs   []GlyphBox `json:"glyphs"`
}

// GlyphBox 表示一个字形及其距段落左边界的水平偏移（pt）。
type GlyphBox struct {
	Char string  `json:"char"`
	X    float64 `json:"x"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
