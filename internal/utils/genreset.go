package utils

import (
	"strings"
)

// LLM 返回的是逗号分隔的自由文本，这里统一做成小写去空格的集合运算。

// ParseGenreList 把逗号分隔的类型文本解析成规范化列表（小写、去空格、去重、保持顺序）
func ParseGenreList(text string) []string {
	var result []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// NormalizeGenres 把已有类型名列表规范化（小写、去空格、去重、保持顺序）
func NormalizeGenres(names []string) []string {
	return ParseGenreList(strings.Join(names, ","))
}

// IntersectGenres 返回 a 中也出现在 b 里的元素（保持 a 的顺序）
func IntersectGenres(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, name := range b {
		inB[name] = struct{}{}
	}
	var result []string
	for _, name := range a {
		if _, ok := inB[name]; ok {
			result = append(result, name)
		}
	}
	return result
}

// GenresSubset 判断 a 是否完全包含于 b
func GenresSubset(a, b []string) bool {
	return len(IntersectGenres(a, b)) == len(a)
}
