package dataset

// 已识别数据集的固定列名表。
// 数据文件本身没有表头，文件名（去扩展名、点转下划线）命中其中一项时
// 按位置赋予列名；列数不匹配时不做校验，标签按位置对齐（与源数据约定一致）。
var recognizedSchemas = map[string][]string{
	"movie_metadata": {
		"wiki_movie_id", "freebase_movie_id", "movie_name", "release_date",
		"box_office_revenue", "runtime", "languages", "countries", "genres",
	},
	"character_metadata": {
		"wiki_movie_id", "freebase_movie_id", "release_date", "character_name",
		"actor_dob", "actor_gender", "actor_height", "actor_ethnicity",
		"actor_name", "actor_age_at_release", "freebase_char_actor_map_id",
		"freebase_char_id", "freebase_actor_id",
	},
	"plot_summaries":    {"wiki_movie_id", "plot_summary"},
	"tvtropes_clusters": {"freebase_char_actor_map_id", "tvtrope_cluster"},
	"name_clusters":     {"freebase_char_actor_map_id", "character_name"},
}

// RecognizedSchema 返回已识别数据集的列名表
func RecognizedSchema(name string) ([]string, bool) {
	cols, ok := recognizedSchemas[name]
	return cols, ok
}
