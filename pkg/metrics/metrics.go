// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型选择：
//   - 计数用Counter：请求数、订单数、邮件数
//   - 瞬时值用Gauge：处理中请求数、邮件队列长度
//   - 分布用Histogram：请求耗时、下单耗时
//
// 使用方式：main中调用InitMetrics()注册指标，
// 通过gin路由暴露 GET /metrics 供Prometheus抓取。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板）、status（HTTP状态码）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（秒）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 结算业务指标

	// OrdersCreatedTotal 下单成功总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersCancelledTotal 订单取消总数
	OrdersCancelledTotal prometheus.Counter

	// CheckoutRejectedTotal 结算被拒总数
	// 标签：reason（empty_cart/insufficient_stock/out_of_stock/invalid_payment）
	CheckoutRejectedTotal *prometheus.CounterVec

	// CheckoutDuration 结算耗时（秒），含库存校验和扣减
	CheckoutDuration prometheus.Histogram

	// 邮件指标

	// MailEnqueuedTotal 进入发送队列的邮件总数
	MailEnqueuedTotal prometheus.Counter

	// MailRejectedTotal 队列已满被拒绝的邮件总数
	MailRejectedTotal prometheus.Counter

	// MailSentTotal 邮件发送结果总数
	// 标签：result（success/failure）
	MailSentTotal *prometheus.CounterVec

	// MailQueueDepth 邮件队列当前长度
	MailQueueDepth prometheus.Gauge

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	// 标签：queue、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto自动注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

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

	// 结算业务指标
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		},
	)

	OrdersCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "订单取消总数",
		},
	)

	CheckoutRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_rejected_total",
			Help: "结算被拒总数",
		},
		[]string{"reason"},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "结算耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	// 邮件指标
	MailEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_enqueued_total",
			Help: "进入发送队列的邮件总数",
		},
	)

	MailRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_rejected_total",
			Help: "队列已满被拒绝的邮件总数",
		},
	)

	MailSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "邮件发送结果总数",
		},
		[]string{"result"},
	)

	MailQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_depth",
			Help: "邮件队列当前长度",
		},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)
}
