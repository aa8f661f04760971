package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/cinesight/internal/utils"
)

// ClassifyShuffle POST /api/classify/shuffle
// 随机抽一部电影，让 LLM 根据剧情简介分类，再与数据集标注比对
func (h *Handler) ClassifyShuffle(c *gin.Context) {
	result, err := h.Classify.Shuffle(c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// ClassifyHistory GET /api/classify/history?limit=20
func (h *Handler) ClassifyHistory(c *gin.Context) {
	if !h.Classify.HistoryEnabled() {
		utils.ServiceUnavailable(c, "分类历史未启用（未配置数据库）")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	records, err := h.Classify.History(limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, records)
}

// ClassifySimilar POST /api/classify/similar
// 按剧情文本检索最相似的历史分类
func (h *Handler) ClassifySimilar(c *gin.Context) {
	if !h.Classify.HistoryEnabled() {
		utils.ServiceUnavailable(c, "分类历史未启用（未配置数据库）")
		return
	}

	var req struct {
		Text  string `json:"text" binding:"required"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "text 不能为空")
		return
	}

	records, err := h.Classify.Similar(req.Text, req.Limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, records)
}
