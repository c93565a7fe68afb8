package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/devconnect/docs"
	"github.com/d60-Lab/devconnect/internal/api/handler"
	"github.com/d60-Lab/devconnect/internal/api/middleware"
	"github.com/d60-Lab/devconnect/internal/config"
	"github.com/d60-Lab/devconnect/internal/service"
)

// NewRouter 注册全部路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler, authService service.AuthService) *gin.Engine {
	if cfg.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog())
	r.Use(otelgin.Middleware("devconnect"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.POST("/users", h.Register)
		v1.POST("/auth", h.Login)
		v1.GET("/auth", middleware.Auth(authService), h.CurrentUser)

		posts := v1.Group("/posts", middleware.Auth(authService))
		{
			posts.POST("", h.CreatePost)
			posts.GET("", h.ListPosts)
			posts.GET("/:id", h.GetPost)
			posts.PUT("/like/:id", h.LikePost)
			posts.PUT("/unlike/:id", h.UnlikePost)
			posts.POST("/comments/:id", h.AddComment)
			// gin 的路由树不允许 /posts/:id 与 /posts/comments/:postId/:commentId
			// 同时注册，用 catch-all 保持两个既有 DELETE 路径
			posts.DELETE("/*target", h.Delete)
		}
	}
	return r
}
