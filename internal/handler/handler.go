package handler

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/user/cinesight/internal/config"
	"github.com/user/cinesight/internal/dataset"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/repository"
	"github.com/user/cinesight/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos    *repository.Repositories // 可为 nil：未配置数据库
	Config   *config.Config
	Insight  *service.InsightService
	Classify *service.ClassifyService
}

// NewHandler 创建处理器
func NewHandler(ds *dataset.Manager, repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:    repos,
		Config:   cfg,
		Insight:  service.NewInsightService(ds),
		Classify: service.NewClassifyService(ds, cfg, repos, time.Now().UnixNano()),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入登录用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	for k, v := range data {
		res[k] = v
	}
	return res
}
