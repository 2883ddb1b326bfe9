package main

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appauth "github.com/xiebiao/bookapi/internal/application/auth"
	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/domain/user"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/internal/infrastructure/messaging"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookapi/internal/interface/http/middleware"
	"github.com/xiebiao/bookapi/internal/interface/http/router"
	"github.com/xiebiao/bookapi/pkg/circuitbreaker"
	"github.com/xiebiao/bookapi/pkg/jwt"
	"github.com/xiebiao/bookapi/pkg/mq"
)

// provideDB driver=memory时返回nil，由仓储Provider改用内存实现
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("使用内存存储，进程退出后数据丢失")
		return nil, func() {}, nil
	}

	db, err := database.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func provideBookRepository(db *gorm.DB) book.Repository {
	if db == nil {
		return memory.NewBookRepository()
	}
	return database.NewBookRepository(db)
}

func provideTxManager(db *gorm.DB) book.TxManager {
	if db == nil {
		return memory.TxManager{}
	}
	return database.NewTxManager(db)
}

// provideTokenBlacklist 启用Redis时黑名单跨实例共享，否则只在本进程有效
func provideTokenBlacklist(cfg *config.Config, log *zap.Logger) (appauth.TokenBlacklist, func(), error) {
	if !cfg.Redis.Enabled {
		return memory.NewTokenBlacklist(), func() {}, nil
	}

	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewTokenBlacklist(client), func() { closeRedis(client, log) }, nil
}

func closeRedis(client *goredis.Client, log *zap.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("关闭Redis连接失败", zap.Error(err))
	}
}

// provideEventPublisher 未启用MQ时事件直接丢弃
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return book.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn("关闭MQ连接失败", zap.Error(err))
		}
	}
	breaker := circuitbreaker.New("mq-publish", circuitbreaker.Config{
		Timeout:     cfg.MQ.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.MQ.BreakerThreshold),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化", zap.String("name", name), zap.Stringer("from", from), zap.Stringer("to", to))
		},
	})
	return messaging.NewBookEventPublisher(publisher, messaging.WithBreaker(breaker)), cleanup, nil
}

// provideUserService 演示账号来自配置，只配置明文密码时在启动阶段加密
func provideUserService(cfg *config.Config) (user.Service, error) {
	hash := cfg.Auth.PasswordHash
	if hash == "" {
		hashed, err := user.HashPassword(cfg.Auth.Password)
		if err != nil {
			return nil, fmt.Errorf("初始化账号失败: %w", err)
		}
		hash = hashed
	}

	repo := memory.NewUserRepository(user.NewUser(cfg.Auth.Username, hash))
	return user.NewService(repo), nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpire)
}

func provideLoginLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)
}

// provideRouterOptions release模式不暴露Swagger
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:          cfg.Server.Mode,
		EnableSwagger: cfg.Server.Mode != "release",
	}
}
