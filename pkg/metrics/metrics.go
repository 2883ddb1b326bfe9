// Package metrics Prometheus指标
//
// 指标类型：
// - Counter：只增不减（请求总数、操作次数）
// - Gauge：可增可减（正在处理的请求数）
// - Histogram：分布统计（请求耗时）
//
// 通过GET /metrics暴露（promhttp.Handler）
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 操作结果标签值
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	initOnce sync.Once

	// HTTP
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 图书业务
	BookOperationsTotal *prometheus.CounterVec
	BookStoreDuration   *prometheus.HistogramVec

	// 认证
	LoginAttemptsTotal *prometheus.CounterVec

	// 消息
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册指标到默认Registry，重复调用无副作用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		// path使用路由模板（/api/books/:id），避免标签基数爆炸
		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BookOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_operations_total",
				Help: "图书操作总数",
			},
			[]string{"operation", "result"},
		)

		BookStoreDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "book_store_duration_seconds",
				Help:    "图书存储操作耗时（秒）",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)

		LoginAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "登录尝试总数",
			},
			[]string{"result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// RecordBookOperation 记录一次图书操作及其耗时
func RecordBookOperation(operation string, err error, seconds float64) {
	InitMetrics()
	BookOperationsTotal.WithLabelValues(operation, result(err)).Inc()
	BookStoreDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordLogin 记录登录结果
func RecordLogin(err error) {
	InitMetrics()
	LoginAttemptsTotal.WithLabelValues(result(err)).Inc()
}

// RecordPublish 记录消息发布结果
func RecordPublish(routingKey string, err error) {
	InitMetrics()
	MessagesPublishedTotal.WithLabelValues(routingKey, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
