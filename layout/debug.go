package layout

import (
	"encoding/json"
	"io"
	"os"
)

// DumpDebug 把布局结果编码为缩进 JSON 写入 w，供调试或可视化工具消费。
func DumpDebug(res *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}

// WriteDebugJSON 将布局结果写入 path 指定的文件。res 为空时不产生文件。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := DumpDebug(res, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
