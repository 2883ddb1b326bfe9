package messaging

import (
	"context"

	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/pkg/circuitbreaker"
	"github.com/xiebiao/bookapi/pkg/metrics"
)

// Publisher 消息发布接口（mq.Publisher实现）
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// BookEventPublisher 将图书事件发布到RabbitMQ
// routing key即事件类型（book.created / book.updated / book.deleted）
type BookEventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// Option BookEventPublisher可选项
type Option func(*BookEventPublisher)

// WithBreaker Broker连续失败后熔断，熔断期间发布直接返回circuitbreaker.ErrOpenState
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(p *BookEventPublisher) { p.breaker = cb }
}

// NewBookEventPublisher 创建图书事件发布者
func NewBookEventPublisher(publisher Publisher, opts ...Option) *BookEventPublisher {
	p := &BookEventPublisher{publisher: publisher}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish 实现book.EventPublisher
func (p *BookEventPublisher) Publish(ctx context.Context, event book.Event) error {
	key := string(event.Type)
	send := func() error { return p.publisher.Publish(ctx, key, event) }

	var err error
	if p.breaker != nil {
		err = p.breaker.Execute(send)
	} else {
		err = send()
	}
	metrics.RecordPublish(key, err)
	return err
}
