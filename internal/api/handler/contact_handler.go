package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/pkg/response"
)

// Contact 联系表单，发信失败时返回 status=error 而不是 5xx
// @Summary 提交联系表单
// @Tags 联系
// @Accept json
// @Produce json
// @Param request body model.ContactRequest true "联系信息"
// @Success 200 {object} model.StatusResponse
// @Failure 422 {object} response.ValidationResponse
// @Router /api/contact [post]
func (h *Handler) Contact(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	response.OK(c, h.contactService.Submit(c.Request.Context(), *req.FullName, *req.Email, *req.Message))
}
