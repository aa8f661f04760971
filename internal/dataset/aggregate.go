package dataset

import (
	"sort"
	"strings"
)

// 五个聚合查询。都是纯读计算：先校验参数，再校验所需表和列，
// 失败立即返回，不重试；坏单元格按缺失值跳过，不影响整体。

// GenreCount 电影类型及出现次数
type GenreCount struct {
	MovieType string `json:"Movie_Type"`
	Count     int    `json:"Count"`
}

// ActorBucket 演员数直方图的一个桶
type ActorBucket struct {
	NumberOfActors int `json:"Number_of_Actors"`
	MovieCount     int `json:"Movie_Count"`
}

// ActorRecord 身高过滤后的单条演员记录，身高统一为米
type ActorRecord struct {
	ActorName   string  `json:"actor_name"`
	ActorGender string  `json:"actor_gender"`
	ActorHeight float64 `json:"actor_height"`
}

// YearCount 某年份的电影数
type YearCount struct {
	Year       int `json:"Year"`
	MovieCount int `json:"Movie_Count"`
}

// BirthBucket 某年份或月份的出生人数
type BirthBucket struct {
	Index      int `json:"Index"`
	BirthCount int `json:"Birth_Count"`
}

// MovieType 统计出现最多的前 topN 个电影类型。
// 次数相同的类型按首次出现顺序排列，保证固定输入下输出确定。
func (m *Manager) MovieType(topN int) ([]GenreCount, error) {
	if topN < 1 {
		return nil, invalidArgf("top_n 必须为正整数")
	}

	t := m.Table("movie_metadata")
	if t == nil {
		return nil, missingDataf("movie_metadata 数据表缺失")
	}
	gi := t.ColumnIndex("genres")
	if gi < 0 {
		return nil, missingDataf("movie_metadata 缺少 genres 列")
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range t.Rows {
		cell := t.Cell(row, gi)
		if cell == "" {
			continue
		}
		for _, name := range DecodeGenres(cell) {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	result := make([]GenreCount, 0, len(order))
	for _, name := range order {
		result = append(result, GenreCount{MovieType: name, Count: counts[name]})
	}
	// 稳定排序保留首次出现顺序作为并列时的次序
	sort.SliceStable(result, func(i, j int) bool { return result[i].Count > result[j].Count })

	if topN < len(result) {
		result = result[:topN]
	}
	return result, nil
}

// ActorCount 按每部电影去重后的演员数做直方图，桶按演员数升序。
func (m *Manager) ActorCount() ([]ActorBucket, error) {
	t := m.Table("character_metadata")
	if t == nil {
		return nil, missingDataf("character_metadata 数据表缺失")
	}
	if missing := t.missingColumns("wiki_movie_id", "actor_name"); len(missing) > 0 {
		return nil, missingDataf("缺少必需列: %s", strings.Join(missing, ", "))
	}

	mi := t.ColumnIndex("wiki_movie_id")
	ai := t.ColumnIndex("actor_name")

	actors := make(map[string]map[string]struct{})
	for _, row := range t.Rows {
		movieID := t.Cell(row, mi)
		if movieID == "" {
			continue
		}
		set, ok := actors[movieID]
		if !ok {
			set = make(map[string]struct{})
			actors[movieID] = set
		}
		if name := t.Cell(row, ai); name != "" {
			set[name] = struct{}{}
		}
	}

	histogram := make(map[int]int)
	for _, set := range actors {
		histogram[len(set)]++
	}

	buckets := make([]ActorBucket, 0, len(histogram))
	for n, c := range histogram {
		buckets = append(buckets, ActorBucket{NumberOfActors: n, MovieCount: c})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].NumberOfActors < buckets[j].NumberOfActors })
	return buckets, nil
}

// ActorDistributions 返回按性别和身高区间（闭区间，单位米）过滤后的演员记录。
// 身高无法转数值的行丢弃；大于 10 的值按厘米处理除以 100（启发式阈值）。
// gender 不是 "All" 且不在数据中出现时报参数错误并列出可选值。
func (m *Manager) ActorDistributions(gender string, maxHeight, minHeight float64) ([]ActorRecord, error) {
	t := m.Table("character_metadata")
	if t == nil {
		return nil, missingDataf("character_metadata 数据表缺失")
	}
	if missing := t.missingColumns("actor_gender", "actor_height"); len(missing) > 0 {
		return nil, missingDataf("缺少必需列: %s", strings.Join(missing, ", "))
	}

	gi := t.ColumnIndex("actor_gender")
	hi := t.ColumnIndex("actor_height")
	ni := t.ColumnIndex("actor_name")

	// 先做身高清洗，性别可选值基于清洗后的数据
	clean := make([]ActorRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		h, ok := parseFloat(t.Cell(row, hi))
		if !ok {
			continue
		}
		if h > 10 {
			h /= 100
		}
		clean = append(clean, ActorRecord{
			ActorName:   t.Cell(row, ni),
			ActorGender: t.Cell(row, gi),
			ActorHeight: h,
		})
	}

	if gender != "All" {
		valid := m.validGenders(clean)
		found := false
		for _, g := range valid {
			if g == gender {
				found = true
				break
			}
		}
		if !found {
			return nil, invalidArgf("无效的性别值，可选项: %s", strings.Join(append(valid, "All"), ", "))
		}
	}

	result := make([]ActorRecord, 0)
	for _, rec := range clean {
		if gender != "All" && rec.ActorGender != gender {
			continue
		}
		if rec.ActorHeight < minHeight || rec.ActorHeight > maxHeight {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// ValidGenders 返回身高清洗后数据中出现过的性别（按首次出现顺序），供页面下拉框使用
func (m *Manager) ValidGenders() ([]string, error) {
	t := m.Table("character_metadata")
	if t == nil {
		return nil, missingDataf("character_metadata 数据表缺失")
	}
	if missing := t.missingColumns("actor_gender", "actor_height"); len(missing) > 0 {
		return nil, missingDataf("缺少必需列: %s", strings.Join(missing, ", "))
	}

	gi := t.ColumnIndex("actor_gender")
	hi := t.ColumnIndex("actor_height")

	var clean []ActorRecord
	for _, row := range t.Rows {
		if _, ok := parseFloat(t.Cell(row, hi)); !ok {
			continue
		}
		clean = append(clean, ActorRecord{ActorGender: t.Cell(row, gi)})
	}
	return m.validGenders(clean), nil
}

func (m *Manager) validGenders(clean []ActorRecord) []string {
	seen := make(map[string]struct{})
	var valid []string
	for _, rec := range clean {
		if rec.ActorGender == "" {
			continue
		}
		if _, ok := seen[rec.ActorGender]; !ok {
			seen[rec.ActorGender] = struct{}{}
			valid = append(valid, rec.ActorGender)
		}
	}
	return valid
}

// Releases 统计每年上映的电影数，年份升序，只包含数据中出现的年份。
// genre 非空时只计入类型集合精确包含该类型的电影（区分大小写）。
func (m *Manager) Releases(genre string) ([]YearCount, error) {
	t := m.Table("movie_metadata")
	if t == nil {
		return nil, missingDataf("movie_metadata 数据表缺失")
	}
	if missing := t.missingColumns("release_date", "genres"); len(missing) > 0 {
		return nil, missingDataf("缺少必需列: %s", strings.Join(missing, ", "))
	}

	di := t.ColumnIndex("release_date")
	gi := t.ColumnIndex("genres")

	counts := make(map[int]int)
	for _, row := range t.Rows {
		year, ok := parseYear(t.Cell(row, di))
		if !ok {
			continue
		}
		if genre != "" {
			if !containsGenre(DecodeGenres(t.Cell(row, gi)), genre) {
				continue
			}
		}
		counts[year]++
	}

	result := make([]YearCount, 0, len(counts))
	for year, c := range counts {
		result = append(result, YearCount{Year: year, MovieCount: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

// ResolveAgeMode 把 mode 归一成 "Y" 或 "M"。
// 大小写不敏感；其余取值静默退回 "Y"（沿用既有宽松行为，调用方依赖它）。
func ResolveAgeMode(mode string) string {
	switch strings.ToUpper(mode) {
	case "M":
		return "M"
	default:
		return "Y"
	}
}

// Ages 统计演员出生的年份（mode=Y）或月份（mode=M）分布，索引升序。
func (m *Manager) Ages(mode string) ([]BirthBucket, error) {
	t := m.Table("character_metadata")
	if t == nil {
		return nil, missingDataf("character_metadata 数据表缺失")
	}
	if missing := t.missingColumns("actor_dob"); len(missing) > 0 {
		return nil, missingDataf("缺少必需列: %s", strings.Join(missing, ", "))
	}

	di := t.ColumnIndex("actor_dob")
	byMonth := ResolveAgeMode(mode) == "M"

	counts := make(map[int]int)
	for _, row := range t.Rows {
		d, ok := parseDate(t.Cell(row, di))
		if !ok {
			continue
		}
		if byMonth {
			counts[int(d.Month())]++
		} else {
			counts[d.Year()]++
		}
	}

	result := make([]BirthBucket, 0, len(counts))
	for idx, c := range counts {
		result = append(result, BirthBucket{Index: idx, BirthCount: c})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Index < result[j].Index })
	return result, nil
}
