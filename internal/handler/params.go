package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/utils"
)

// 查询参数在 HTTP 边界上都是字符串，类型检查在这里完成：
// 解析失败视为参数错误，与数据层的取值校验共用同一个错误哨兵。

// parseTopN 解析 top_n 参数，必须是正整数
func parseTopN(s string) (int, error) {
	if s == "" {
		return 10, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: n 必须为整数，收到 %q", dataset.ErrInvalidArgument, s)
	}
	return n, nil
}

// parseHeight 解析身高参数，必须是数值
func parseHeight(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s 必须为数值，收到 %q", dataset.ErrInvalidArgument, name, s)
	}
	return v, nil
}

// respondError 按错误类别映射状态码：
// 参数错误 400，数据未加载 503，其余 500。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dataset.ErrInvalidArgument):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, dataset.ErrMissingData):
		utils.ServiceUnavailable(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
