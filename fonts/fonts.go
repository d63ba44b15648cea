// Package fonts resolves font files into glyph metrics for the typography
// engine, backed by github.com/tdewolff/canvas font faces.
package fonts

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/mpizenberg/spandex/typography"
	"github.com/mpizenberg/spandex/units"
)

// Family wraps a canvas font family and implements typography.Font. Glyph
// widths are measured through a cached metrics face per scale, so lookups
// stay deterministic for a given (char, scale) pair.
type Family struct {
	name   string
	family *canvas.FontFamily
	style  canvas.FontStyle

	mu    sync.Mutex
	faces map[units.Sp]*canvas.FontFace
}

var _ typography.Font = (*Family)(nil)

// LoadFamily loads font data (TTF/OTF bytes) into a named family.
func LoadFamily(name string, data []byte, style canvas.FontStyle) (*Family, error) {
	if name == "" {
		name = "Body"
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	return &Family{
		name:   name,
		family: family,
		style:  style,
		faces:  map[units.Sp]*canvas.FontFace{},
	}, nil
}

// LoadFamilyFile loads a font file from disk into a named family.
func LoadFamilyFile(name, path string, style canvas.FontStyle) (*Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}
	return LoadFamily(name, data, style)
}

// Name returns the family name.
func (f *Family) Name() string { return f.name }

// CharWidth implements typography.Font: the horizontal advance of char at
// the given scale, in scaled points. canvas reports text widths in
// millimeters, converted to sp at this boundary.
func (f *Family) CharWidth(char rune, scale units.Sp) units.Sp {
	face := f.metricsFace(scale)
	return units.SpFromMm(units.Mm(face.TextWidth(string(char))))
}

// CanvasFace exposes a drawing face at the given size in points, for the
// renderer.
func (f *Family) CanvasFace(sizePt float64, col color.Color) *canvas.FontFace {
	return f.family.Face(sizePt, col, f.style, canvas.FontNormal)
}

func (f *Family) metricsFace(scale units.Sp) *canvas.FontFace {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[scale]; ok {
		return face
	}
	face := f.family.Face(float64(scale.Pt()), canvas.Black, f.style, canvas.FontNormal)
	f.faces[scale] = face
	return face
}

// ParseStyle maps a style description such as "bold italic" to a canvas
// font style.
func ParseStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}
