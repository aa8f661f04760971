package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/cinesight/internal/utils"
)

// DatasetStatus GET /admin/dataset/status 数据集加载状态
func (h *Handler) DatasetStatus(c *gin.Context) {
	utils.Success(c, h.Insight.Status())
}

// DatasetRefresh POST /admin/dataset/refresh 重新下载并加载数据集。
// 下载或解压失败不报错，结果通过返回的状态体现。
func (h *Handler) DatasetRefresh(c *gin.Context) {
	h.Insight.Refresh()
	utils.Success(c, h.Insight.Status())
}
