package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/pkg/response"
)

const blogDeletedMessage = "Blog deleted successfully!"

// CreateBlog 新建博客
// @Summary 新建博客
// @Tags 博客
// @Accept json
// @Produce json
// @Param request body model.BlogRequest true "博客内容"
// @Success 200 {object} model.BlogPost
// @Failure 422 {object} response.ValidationResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/blogs [post]
func (h *Handler) CreateBlog(c *gin.Context) {
	var req model.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	blog, err := h.blogService.CreateBlog(c.Request.Context(), *req.Title, *req.Category, *req.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, blog)
}

// ListBlogs 博客列表
// @Summary 博客列表（新→旧）
// @Tags 博客
// @Produce json
// @Success 200 {array} model.BlogPost
// @Failure 500 {object} response.ErrorResponse
// @Router /api/blogs [get]
func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, err := h.blogService.ListBlogs(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, blogs)
}

// UpdateBlog 覆盖更新博客，id 不存在时同样回显
// @Summary 更新博客
// @Tags 博客
// @Accept json
// @Produce json
// @Param blog_id path int true "博客ID"
// @Param request body model.BlogRequest true "博客内容"
// @Success 200 {object} model.BlogPost
// @Failure 422 {object} response.ValidationResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/blogs/{blog_id} [put]
func (h *Handler) UpdateBlog(c *gin.Context) {
	var req model.BlogRequest
	id, ok := bindWithPathID(c, "blog_id", &req)
	if !ok {
		return
	}
	blog, err := h.blogService.UpdateBlog(c.Request.Context(), id, *req.Title, *req.Category, *req.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, blog)
}

// DeleteBlog 删除博客，id 不存在时同样返回成功
// @Summary 删除博客
// @Tags 博客
// @Produce json
// @Param blog_id path int true "博客ID"
// @Success 200 {object} model.StatusResponse
// @Failure 422 {object} response.ValidationResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/blogs/{blog_id} [delete]
func (h *Handler) DeleteBlog(c *gin.Context) {
	id, ok := pathID(c, "blog_id")
	if !ok {
		return
	}
	if err := h.blogService.DeleteBlog(c.Request.Context(), id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, model.StatusResponse{Status: model.StatusSuccess, Message: blogDeletedMessage})
}
