package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/utils"
)

// MovieTypes GET /api/stats/movie-types?n=10
func (h *Handler) MovieTypes(c *gin.Context) {
	n, err := parseTopN(c.Query("n"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Insight.MovieTypes(n)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// ActorCounts GET /api/stats/actor-counts
func (h *Handler) ActorCounts(c *gin.Context) {
	result, err := h.Insight.ActorCounts()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// ActorHeights GET /api/stats/actor-heights?gender=All&min_height=1.5&max_height=2.0
func (h *Handler) ActorHeights(c *gin.Context) {
	gender := c.DefaultQuery("gender", "All")

	minHeight, err := parseHeight("min_height", c.DefaultQuery("min_height", "1.5"))
	if err != nil {
		respondError(c, err)
		return
	}
	maxHeight, err := parseHeight("max_height", c.DefaultQuery("max_height", "2.0"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.Insight.ActorHeights(gender, maxHeight, minHeight)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// Genders GET /api/stats/genders
func (h *Handler) Genders(c *gin.Context) {
	result, err := h.Insight.Genders()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// Releases GET /api/stats/releases?genre=Drama
func (h *Handler) Releases(c *gin.Context) {
	result, err := h.Insight.Releases(c.Query("genre"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, result)
}

// Births GET /api/stats/births?mode=Y
func (h *Handler) Births(c *gin.Context) {
	mode := c.DefaultQuery("mode", "Y")
	result, err := h.Insight.Births(mode)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, gin.H{
		"mode":    dataset.ResolveAgeMode(mode),
		"buckets": result,
	})
}
