package dataset

// Table 从单个数据文件加载的内存表。
// 加载完成后不再修改；空字符串单元格视为缺失值。
// 未识别的表没有列名，只能按位置访问。
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// ColumnIndex 返回列名对应的下标，不存在返回 -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell 返回指定行的指定列，越界或缺失列返回空字符串
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// missingColumns 返回 required 中缺失的列名
func (t *Table) missingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if t.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}
