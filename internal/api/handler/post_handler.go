package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/devconnect/internal/api/middleware"
	"github.com/d60-Lab/devconnect/pkg/response"
)

type postTextRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

// CreatePost 创建帖子
// @Summary 创建帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body postTextRequest true "帖子内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req postTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "text is required")
		return
	}
	post, err := h.postService.CreatePost(c.Request.Context(), middleware.UserID(c), req.Text)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, post)
}

// ListPosts 按创建时间倒序返回全部帖子
// @Summary 帖子列表
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 查询单个帖子
// @Summary 查询帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Produce json
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 分发两条 DELETE 路径：
// /posts/:id 删除帖子，/posts/comments/:postId/:commentId 删除评论
// @Summary 删除帖子或评论
// @Tags 帖子
// @Param target path string true "帖子ID 或 comments/{postId}/{commentId}"
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{target} [delete]
func (h *Handler) Delete(c *gin.Context) {
	target := strings.Trim(c.Param("target"), "/")
	if rest, ok := strings.CutPrefix(target, "comments/"); ok {
		postID, commentID, ok := strings.Cut(rest, "/")
		if !ok || commentID == "" {
			response.NotFound(c, "comment not found")
			return
		}
		h.deleteComment(c, postID, commentID)
		return
	}
	if target == "" || strings.Contains(target, "/") {
		response.NotFound(c, "post not found")
		return
	}
	h.deletePost(c, target)
}

func (h *Handler) deletePost(c *gin.Context, postID string) {
	if err := h.postService.DeletePost(c.Request.Context(), postID, middleware.UserID(c)); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "post removed"})
}

// LikePost 点赞
// @Summary 点赞帖子
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Like}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/like/{id} [put]
func (h *Handler) LikePost(c *gin.Context) {
	likes, err := h.postService.LikePost(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, likes)
}

// UnlikePost 取消点赞
// @Summary 取消点赞
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Like}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/unlike/{id} [put]
func (h *Handler) UnlikePost(c *gin.Context) {
	likes, err := h.postService.UnlikePost(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, likes)
}

// AddComment 评论帖子
// @Summary 评论帖子
// @Tags 帖子
// @Accept json
// @Param id path string true "帖子ID"
// @Param request body postTextRequest true "评论内容"
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/comments/{id} [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req postTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "text is required")
		return
	}
	comments, err := h.postService.AddComment(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Text)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, comments)
}

// deleteComment 删除自己的评论（按 commentId 定位，而不是按请求者扫描）
func (h *Handler) deleteComment(c *gin.Context, postID, commentID string) {
	comments, err := h.postService.DeleteComment(c.Request.Context(), postID, commentID, middleware.UserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, comments)
}
