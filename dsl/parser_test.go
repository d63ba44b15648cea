package dsl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `doc demo v1 {
	// 行注释会被忽略
	# 井号注释也一样
	meta {
		title: "Demo Document"; author: "SpanDeX"
		keywords: "typesetting, pdf"
	}

	font Body {
		src: "fonts/Inter-Regular.ttf"
		style: italic
	}

	page A4 landscape margin 15mm 10mm

	paragraph font Body size 14pt {
		"Hello world"
		"with a \"quoted\" word"
	}
}
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if doc.Name != "demo" || doc.Version != "v1" {
		t.Fatalf("文档头 = %s %s, want demo v1", doc.Name, doc.Version)
	}

	kinds := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	want := []string{"meta", "font", "page", "paragraph"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("小节类型不匹配 (-want +got):\n%s", diff)
	}
}

func TestParseMetaSection(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	meta := doc.Sections[0].Meta
	if meta == nil {
		t.Fatalf("第一小节应为 meta")
	}
	got := map[string]string{}
	for _, entry := range meta.Entries {
		got[entry.Key] = entry.Value.Text()
	}
	want := map[string]string{
		"title":    "Demo Document",
		"author":   "SpanDeX",
		"keywords": "typesetting, pdf",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("meta 条目不匹配 (-want +got):\n%s", diff)
	}
}

func TestParseFontSection(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	font := doc.Sections[1].Font
	if font == nil {
		t.Fatalf("第二小节应为 font")
	}
	if font.Name != "Body" {
		t.Fatalf("字体名 = %s, want Body", font.Name)
	}
	got := map[string]string{}
	for _, entry := range font.Entries {
		got[entry.Key] = entry.Value.Text()
	}
	want := map[string]string{"src": "fonts/Inter-Regular.ttf", "style": "italic"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("font 条目不匹配 (-want +got):\n%s", diff)
	}
}

func TestParsePageSection(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	page := doc.Sections[2].Page
	if page == nil {
		t.Fatalf("第三小节应为 page")
	}
	if page.Size != "A4" {
		t.Fatalf("页面尺寸 = %s, want A4", page.Size)
	}
	var values, types []string
	for _, p := range page.Params {
		values = append(values, p.Value)
		types = append(types, p.Type)
	}
	if diff := cmp.Diff([]string{"landscape", "margin", "15mm", "10mm"}, values); diff != "" {
		t.Fatalf("page 参数不匹配 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Ident", "Ident", "Number", "Number"}, types); diff != "" {
		t.Fatalf("page 参数类型不匹配 (-want +got):\n%s", diff)
	}
}

func TestParseParagraphSection(t *testing.T) {
	doc, err := ParseString(sampleDoc)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	p := doc.Sections[3].Paragraph
	if p == nil {
		t.Fatalf("第四小节应为 paragraph")
	}
	var args []string
	for _, a := range p.Args {
		args = append(args, a.Value)
	}
	if diff := cmp.Diff([]string{"font", "Body", "size", "14pt"}, args); diff != "" {
		t.Fatalf("paragraph 参数不匹配 (-want +got):\n%s", diff)
	}
	texts := []string{}
	for _, text := range p.Texts {
		texts = append(texts, string(text))
	}
	want := []string{"Hello world", `with a "quoted" word`}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Fatalf("paragraph 文本不匹配 (-want +got):\n%s", diff)
	}
}

func TestParseReader(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("小节数 = %d, want 4", len(doc.Sections))
	}
}

func TestParseUnclosedDocument(t *testing.T) {
	if _, err := ParseString("doc demo v1 {\n"); err == nil {
		t.Fatalf("未闭合的文档应当报错")
	}
}

func TestParseMissingHeader(t *testing.T) {
	if _, err := ParseString("paragraph { \"text\" }\n"); err == nil {
		t.Fatalf("缺少 doc 头的输入应当报错")
	}
}
