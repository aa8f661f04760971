package dataset

import (
	"errors"
	"fmt"
)

// 聚合操作的两类失败：调用方参数错误 / 数据集未就绪。
// 调用方可用 errors.Is 区分二者（参数错误返回 400，数据缺失返回 503）。
var (
	// ErrInvalidArgument 参数无效
	ErrInvalidArgument = errors.New("参数无效")

	// ErrMissingData 所需数据表或列缺失
	ErrMissingData = errors.New("数据未加载")
)

func invalidArgf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}

func missingDataf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMissingData, fmt.Sprintf(format, a...))
}
