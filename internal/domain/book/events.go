package book

import (
	"context"
	"time"
)

// EventType 图书变更事件类型（同时作为MQ的routing key）
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event 图书变更事件
type Event struct {
	Type       EventType `json:"type"`
	Book       Book      `json:"book"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 创建事件
func NewEvent(t EventType, b *Book) Event {
	return Event{Type: t, Book: *b, OccurredAt: time.Now().UTC()}
}

// EventPublisher 事件发布接口
// 发布失败不影响主流程，由调用方记录日志
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher 不发布任何事件（未启用MQ时使用）
type NopPublisher struct{}

// Publish 实现EventPublisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }
