// eventlog 订阅图书事件并写入结构化日志，用于审计和排查
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/infrastructure/config"
	"github.com/xiebiao/bookapi/pkg/logger"
	"github.com/xiebiao/bookapi/pkg/mq"
)

const queueName = "bookapi.eventlog"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, queueName, []string{"book.*"}, zlog)
	if err != nil {
		zlog.Fatal("连接MQ失败", zap.Error(err))
	}
	defer func() { _ = consumer.Close() }()

	zlog.Info("开始消费图书事件", zap.String("exchange", cfg.MQ.Exchange), zap.String("queue", queueName))
	if err := consumer.Consume(ctx, handleEvent(zlog)); err != nil && ctx.Err() == nil {
		zlog.Error("消费中断", zap.Error(err))
	}
}

// handleEvent 无法解析的消息记录后直接确认，避免反复重新入队
func handleEvent(log *zap.Logger) func(routingKey string, body []byte) error {
	return func(routingKey string, body []byte) error {
		var event book.Event
		if err := json.Unmarshal(body, &event); err != nil {
			log.Warn("丢弃无法解析的消息", zap.String("routing_key", routingKey), zap.ByteString("body", body), zap.Error(err))
			return nil
		}
		log.Info("图书事件",
			zap.String("routing_key", routingKey),
			zap.String("type", string(event.Type)),
			zap.Any("event", event),
		)
		return nil
	}
}
