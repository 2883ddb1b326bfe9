package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/interface/http/handler"
	"github.com/xiebiao/bookapi/internal/interface/http/middleware"
	"github.com/xiebiao/bookapi/pkg/response"
)

// Options 路由可选项
type Options struct {
	Mode          string // debug | release | test
	EnableSwagger bool
}

// New 创建Gin引擎并注册全部路由
//
//	GET    /ping
//	GET    /metrics
//	GET    /swagger/*any          （非release模式）
//	POST   /api/auth/login        （按IP限流）
//	POST   /api/auth/logout       （需登录）
//	GET    /api/books             （以下均需登录）
//	GET    /api/books/page
//	GET    /api/books/author
//	GET    /api/books/category
//	GET    /api/books/:id
//	POST   /api/books
//	PUT    /api/books/:id
//	DELETE /api/books/:id
func New(
	opts Options,
	log *zap.Logger,
	bookHandler *handler.BookHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.IPRateLimiter,
) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Handler(), authHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)
		}

		books := api.Group("/books")
		books.Use(authMiddleware.RequireAuth())
		{
			books.GET("", bookHandler.List)
			books.GET("/page", bookHandler.Page)
			books.GET("/author", bookHandler.ByAuthor)
			books.GET("/category", bookHandler.ByCategory)
			books.GET("/:id", bookHandler.Get)
			books.POST("", bookHandler.Create)
			books.PUT("/:id", bookHandler.Update)
			books.DELETE("/:id", bookHandler.Delete)
		}
	}

	return r
}
