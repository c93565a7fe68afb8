package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/devconnect/internal/service"
	"github.com/d60-Lab/devconnect/pkg/response"
)

// TokenHeader 既有客户端使用的凭证头
const TokenHeader = "x-auth-token"

const contextUserKey = "auth.userID"

// Auth 校验 x-auth-token 并把解析出的用户 id 放进请求上下文。
// 除此之外没有副作用。
func Auth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.Unauthorized(c, "no token, authorization denied")
			c.Abort()
			return
		}
		userID, err := auth.VerifyToken(token)
		if err != nil {
			response.Unauthorized(c, "token is not valid")
			c.Abort()
			return
		}
		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// UserID 返回 Auth 中间件写入的用户 id；未认证的路由返回空串
func UserID(c *gin.Context) string {
	return c.GetString(contextUserKey)
}
