package dataset

import (
	"encoding/json"
	"strings"
)

// DecodeGenres 解析 movie_metadata.genres 单元格。
// 单元格内容是序列化的 key->类型名 映射（如 {"/m/02kdv5l": "Action", ...}），
// 只保留类型名，key 丢弃。用 json.Decoder 按 token 流解析以保持文档内顺序，
// 保证同一输入多次解析输出顺序一致。格式非法时返回 nil，不报错。
func DecodeGenres(cell string) []string {
	names := decodeGenreMap(cell)
	if names == nil && strings.Contains(cell, "'") {
		// 兼容单引号写法的旧数据
		names = decodeGenreMap(strings.ReplaceAll(cell, "'", `"`))
	}
	return names
}

func decodeGenreMap(s string) []string {
	dec := json.NewDecoder(strings.NewReader(s))

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	var names []string
	for dec.More() {
		// key
		if _, err := dec.Token(); err != nil {
			return nil
		}
		// value
		v, err := dec.Token()
		if err != nil {
			return nil
		}
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	// 必须读到收尾的 }，否则视为截断的非法输入
	if _, err := dec.Token(); err != nil {
		return nil
	}
	return names
}

// containsGenre 判断类型名集合中是否包含 genre（区分大小写的精确匹配）
func containsGenre(names []string, genre string) bool {
	for _, n := range names {
		if n == genre {
			return true
		}
	}
	return false
}
