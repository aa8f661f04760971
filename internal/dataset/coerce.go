package dataset

import (
	"strconv"
	"strings"
	"time"
)

// 读取时转换，不在表上就地改写：聚合操作之间互不影响，可并发调用。

var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// parseFloat 把单元格转成数值，失败视为缺失
func parseFloat(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDate 把日期单元格转成时间，支持 年-月-日 / 年-月 / 年，失败视为缺失
func parseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseYear 提取日期单元格中的年份
func parseYear(cell string) (int, bool) {
	t, ok := parseDate(cell)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}
