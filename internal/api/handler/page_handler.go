package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/portfolio/internal/web"
	"github.com/d60-Lab/portfolio/pkg/response"
)

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageIndex, web.NewIndexPage(h.now()))
}

// DailyRoutine 日常页面，服务端渲染帖子并内嵌 JSON 供前端脚本使用
func (h *Handler) DailyRoutine(c *gin.Context) {
	posts, err := h.routineService.ListPosts(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.PageRoutine, web.RoutinePage{Title: "Daily Routine", Posts: posts})
}
