// Package binding 提供把 JSON 数据插入文档文本的占位符替换。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to[0].value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if path == "" {
			return match
		}
		if val, ok := resolvePath(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			current, ok = descend(current, name, -1)
			if !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			current, ok = descend(current, "", idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// parseSegment 拆出段名与下标列表，例如 "items[0][1]" -> ("items", [0 1])。
func parseSegment(segment string) (string, []int, bool) {
	name := segment
	var indexes []int
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", nil, false
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return "", nil, false
			}
			indexes = append(indexes, idx)
			rest = rest[end+1:]
		}
		if rest != "" {
			// 末尾残留的非下标内容说明路径写错了。
			return "", nil, false
		}
	}
	return name, indexes, true
}

// descend 在 map（key 非空）或数组（idx 非负）上向下取值。
func descend(current any, key string, idx int) (any, bool) {
	switch c := current.(type) {
	case map[string]interface{}:
		if key == "" {
			return nil, false
		}
		val, ok := c[key]
		return val, ok
	case []interface{}:
		if key != "" || idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
