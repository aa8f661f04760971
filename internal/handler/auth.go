package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/cinesight/internal/middleware"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/utils"
)

// LoginPage GET /auth/login
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录",
		"Redirect": c.Query("redirect"),
	}))
}

// Login POST /auth/login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, "用户名和密码不能为空")
		return
	}

	if h.Config.AdminPassword == "" {
		utils.Unauthorized(c, "未配置管理员密码，管理功能不可用")
		return
	}

	if req.Username != h.Config.AdminUser || !checkPassword(req.Password, h.Config.AdminPassword) {
		utils.Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateToken(req.Username, "admin", h.Config.AppSecret, 72*time.Hour)
	if err != nil {
		utils.InternalServerError(c, "生成令牌失败")
		return
	}
	c.SetCookie("token", token, 72*3600, "/", "", false, true)

	// 同时写入 Session，供页面渲染
	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{Username: req.Username, Role: "admin"})
	session.Save()

	utils.Success(c, gin.H{"username": req.Username, "role": "admin"})
}

// Logout POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.Success(c, nil)
}

// checkPassword 校验密码。
// ADMIN_PASSWORD 配置为 bcrypt 哈希（$2 开头）时按哈希比对，否则按常量时间明文比对。
func checkPassword(password, configured string) bool {
	if strings.HasPrefix(configured, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(configured)) == 1
}
