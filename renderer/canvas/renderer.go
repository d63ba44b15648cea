package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/mpizenberg/spandex/fonts"
	"github.com/mpizenberg/spandex/layout"
	"github.com/mpizenberg/spandex/renderer"
	"github.com/mpizenberg/spandex/typography"
	"github.com/mpizenberg/spandex/units"
)

// Renderer draws layout results via github.com/tdewolff/canvas. It doubles
// as the layout stage's font backend so that the glyph widths used for
// justification come from the same font faces used for drawing.
type Renderer struct {
	baseDir string

	// injected resources, by unique name
	fontBlobs map[string][]byte
	fontPaths map[string]string

	fontMu   sync.Mutex
	families map[string]*fonts.Family
}

var (
	_ renderer.Renderer   = (*Renderer)(nil)
	_ layout.FontProvider = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	Fonts   map[string]Resource // built-in fonts accessible via built-in:<name>
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with injected resources and optional baseDir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:   opts.BaseDir,
		fontBlobs: map[string][]byte{},
		fontPaths: map[string]string{},
		families:  map[string]*fonts.Family{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			// 延迟到实际使用时才读取，读取失败会带上具体原因。
			r.fontPaths[name] = res.Path
		}
	}
	return r
}

// FontFor 实现 layout.FontProvider，把字体资源解析为排版引擎的度量接口。
func (r *Renderer) FontFor(res layout.FontResource) (typography.Font, error) {
	return r.ensureFamily(res)
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, result.Fonts); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, fontRes map[string]layout.FontResource) error {
	for _, pb := range page.Paragraphs {
		if err := r.drawParagraph(ctx, pb, fontRes); err != nil {
			return err
		}
	}
	return nil
}

// drawParagraph 逐字形绘制一个段落。字形偏移为 pt，页面坐标为 mm，在此
// 做一次 pt→mm 换算。
func (r *Renderer) drawParagraph(ctx *canvas.Context, pb layout.ParagraphBox, fontRes map[string]layout.FontResource) error {
	res, ok := fontRes[pb.Font]
	if !ok {
		return fmt.Errorf("段落引用了未声明的字体: %s", pb.Font)
	}
	family, err := r.ensureFamily(res)
	if err != nil {
		return err
	}
	face := family.CanvasFace(pb.FontSize, canvas.Black)

	// 基线位置：行顶部（mm）加上字体上升部。
	ascent := face.Metrics().Ascent
	for _, line := range pb.Lines {
		baseline := line.Y + ascent
		for _, glyph := range line.Glyphs {
			x := pb.X + float64(units.Pt(glyph.X).Mm())
			ctx.DrawText(x, baseline, canvas.NewTextLine(face, glyph.Char, canvas.Left))
		}
	}
	return nil
}

func (r *Renderer) ensureFamily(res layout.FontResource) (*fonts.Family, error) {
	key := fontCacheKey(res)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[key]; ok {
		return family, nil
	}

	data, err := r.loadFontBytes(res)
	if err != nil {
		return nil, err
	}
	family, err := fonts.LoadFamily(res.Name, data, fonts.ParseStyle(res.Style))
	if err != nil {
		return nil, err
	}
	r.families[key] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(res layout.FontResource) ([]byte, error) {
	if res.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", res.Name)
	}
	src := res.Src
	if strings.HasPrefix(src, "built-in:") || strings.HasPrefix(src, "builtin:") {
		name := strings.TrimPrefix(strings.TrimPrefix(src, "built-in:"), "builtin:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		if path, ok := r.fontPaths[name]; ok {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("读取内置字体资源 built-in:%s 失败: %w", name, err)
			}
			return data, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	// Path based
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func fontCacheKey(res layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", res.Name, res.Src, res.Style)
}
