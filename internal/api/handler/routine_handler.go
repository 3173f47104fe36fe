package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/pkg/response"
)

// CreatePost 发布日常动态
// @Summary 发布动态
// @Tags 日常
// @Accept json
// @Produce json
// @Param request body model.CreatePostRequest true "动态内容"
// @Success 200 {object} model.Post
// @Failure 422 {object} response.ValidationResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/routine/post [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}
	post, err := h.routineService.CreatePost(c.Request.Context(), *req.Message)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, post)
}

// AddReply 回复动态（不校验帖子是否存在）
// @Summary 回复动态
// @Tags 日常
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body model.CreateReplyRequest true "回复内容"
// @Success 200 {object} model.Reply
// @Failure 422 {object} response.ValidationResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/routine/reply/{post_id} [post]
func (h *Handler) AddReply(c *gin.Context) {
	var req model.CreateReplyRequest
	postID, ok := bindWithPathID(c, "post_id", &req)
	if !ok {
		return
	}
	reply, err := h.routineService.AddReply(c.Request.Context(), postID, *req.Message)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, reply)
}

// ListPosts 查询全部动态及回复
// @Summary 动态列表（新→旧，回复旧→新）
// @Tags 日常
// @Produce json
// @Success 200 {array} model.Post
// @Failure 500 {object} response.ErrorResponse
// @Router /api/routine/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.routineService.ListPosts(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, posts)
}
