package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/service"
	"github.com/d60-Lab/portfolio/pkg/response"
)

// Handler 聚合全部 HTTP 处理函数
type Handler struct {
	routineService service.RoutineService
	blogService    service.BlogService
	contactService service.ContactService
	db             *gorm.DB
	now            func() time.Time
}

func New(routineService service.RoutineService, blogService service.BlogService, contactService service.ContactService, db *gorm.DB) *Handler {
	return &Handler{
		routineService: routineService,
		blogService:    blogService,
		contactService: contactService,
		db:             db,
		now:            time.Now,
	}
}

// parsePathID 解析整数路径参数，失败时返回对应的 detail 条目
func parsePathID(c *gin.Context, name string) (int64, []response.ErrorDetail) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, []response.ErrorDetail{response.PathParamError(name)}
	}
	return id, nil
}

// pathID 仅有路径参数的接口使用，失败时已写出 422
func pathID(c *gin.Context, name string) (int64, bool) {
	id, details := parsePathID(c, name)
	if details != nil {
		response.Unprocessable(c, details)
		return 0, false
	}
	return id, true
}

// bindWithPathID 同时校验路径参数与请求体，两处错误一并报告
func bindWithPathID(c *gin.Context, name string, req any) (int64, bool) {
	id, details := parsePathID(c, name)
	if err := c.ShouldBindJSON(req); err != nil {
		details = append(details, response.BodyErrors(err)...)
	}
	if len(details) > 0 {
		response.Unprocessable(c, details)
		return 0, false
	}
	return id, true
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db_ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db_ok": true, "time": h.now()})
}
