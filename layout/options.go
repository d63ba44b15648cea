package layout

import "github.com/mpizenberg/spandex/typography"

// BuildOptions 配置布局阶段所需的依赖：断行策略与字体后端。
type BuildOptions struct {
	// Justifier 为空时使用 typography.NaiveJustifier。
	Justifier typography.Justifier
	Fonts     FontProvider
}

// FontProvider 负责把字体资源解析为排版引擎可用的度量接口。
type FontProvider interface {
	FontFor(res FontResource) (typography.Font, error)
}
