package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mpizenberg/spandex/dsl"
	"github.com/mpizenberg/spandex/layout"
	"github.com/mpizenberg/spandex/renderer"
	canvasrenderer "github.com/mpizenberg/spandex/renderer/canvas"
	"github.com/mpizenberg/spandex/typography"
)

func main() {
	input := flag.String("in", "examples/demo.spandex", "文档文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文档的 JSON 数据")
	justifierName := flag.String("justifier", "naive", "断行策略: naive 或 optimal")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	justifier, err := resolveJustifier(*justifierName)
	if err != nil {
		log.Fatal(err)
	}

	r := canvasrenderer.NewRenderer(filepath.Dir(*input))
	if err := run(*input, *output, *debug, inputData, justifier, r); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

func resolveJustifier(name string) (typography.Justifier, error) {
	switch name {
	case "naive":
		return typography.NaiveJustifier{}, nil
	case "optimal":
		return typography.OptimalJustifier{}, nil
	default:
		return nil, fmt.Errorf("未知断行策略: %s", name)
	}
}

// run 串联解析、布局与渲染。
func run(inputPath, outputPath, debugPath string, data any, justifier typography.Justifier, r *canvasrenderer.Renderer) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开文档文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析文档失败: %w", err)
	}

	result, err := layout.Build(doc, data, layout.BuildOptions{
		Justifier: justifier,
		Fonts:     r,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	var rend renderer.Renderer = r
	pdfBytes, err := rend.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
