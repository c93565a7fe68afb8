package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/devconnect/internal/service"
	"github.com/d60-Lab/devconnect/pkg/logger"
	"github.com/d60-Lab/devconnect/pkg/response"
)

// Handler 聚合各业务服务供路由注册
type Handler struct {
	authService service.AuthService
	postService service.PostService
}

func New(authService service.AuthService, postService service.PostService) *Handler {
	return &Handler{authService: authService, postService: postService}
}

// serviceError 把服务层的封闭错误集合映射为 HTTP 状态码
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("unhandled service error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.InternalError(c, err)
	}
}
