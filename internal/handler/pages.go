package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home GET / 电影与演员分析页
func (h *Handler) Home(c *gin.Context) {
	data := gin.H{"Title": "电影与演员分析"}

	if genders, err := h.Insight.Genders(); err == nil {
		data["Genders"] = genders
	} else {
		data["DatasetError"] = err.Error()
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, data))
}

// Trends GET /trends 时间趋势页
func (h *Handler) Trends(c *gin.Context) {
	c.HTML(http.StatusOK, "trends.html", h.RenderData(c, gin.H{
		"Title":  "时间趋势",
		"Genres": h.Insight.TrendGenres(),
	}))
}

// ClassifyPage GET /classify AI 类型分类页
func (h *Handler) ClassifyPage(c *gin.Context) {
	c.HTML(http.StatusOK, "classify.html", h.RenderData(c, gin.H{
		"Title":          "AI 类型分类",
		"HistoryEnabled": h.Classify.HistoryEnabled(),
	}))
}

// AdminDashboard GET /admin 管理页
func (h *Handler) AdminDashboard(c *gin.Context) {
	data := gin.H{
		"Title":  "管理后台",
		"Status": h.Insight.Status(),
	}

	if h.Repos != nil {
		if count, err := h.Repos.Classification.CountAll(); err == nil {
			data["ClassificationCount"] = count
		}
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", h.RenderData(c, data))
}
