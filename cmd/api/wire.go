//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appauth "github.com/xiebiao/bookapi/internal/application/auth"
	appbook "github.com/xiebiao/bookapi/internal/application/book"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/internal/interface/http/handler"
	"github.com/xiebiao/bookapi/internal/interface/http/middleware"
	"github.com/xiebiao/bookapi/internal/interface/http/router"
)

// infrastructureSet 存储、黑名单、消息
var infrastructureSet = wire.NewSet(
	provideDB,
	provideBookRepository,
	provideTxManager,
	provideTokenBlacklist,
	provideEventPublisher,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideUserService,
	provideJWTManager,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewUseCase,
	appauth.NewLoginUseCase,
	appauth.NewLogoutUseCase,
)

// interfaceSet HTTP层
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthHandler,
	middleware.NewAuthMiddleware,
	provideLoginLimiter,
	provideRouterOptions,
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭MQ、Redis、数据库连接
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
