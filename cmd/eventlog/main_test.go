package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handle := handleEvent(zap.New(core))

	body := []byte(`{"type":"book.created","book":{"id":1,"title":"Book 1","author":"Author A","language":"English","category":"Fiction"},"occurred_at":"2024-01-01T00:00:00Z"}`)
	assert.NoError(t, handle("book.created", body))
	assert.Equal(t, 1, logs.FilterMessage("图书事件").Len())

	assert.NoError(t, handle("book.created", []byte("not json")))
	assert.Equal(t, 1, logs.FilterMessage("丢弃无法解析的消息").Len())
}
