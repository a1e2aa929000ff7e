// Package metrics 基于Prometheus的指标收集
//
// 指标通过 GET /metrics 暴露，由Prometheus定时抓取。
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），
// 标签只用低基数维度（method/path/status），不要用user_id等高基数值。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method（GET/POST）、path（路由模板）、status（HTTP状态码）
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unibookshop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时分布
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unibookshop_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	// OrdersPlacedTotal 下单成功总数
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unibookshop_orders_placed_total",
		Help: "Total number of successfully placed orders",
	})

	// OrdersFailedTotal 下单失败总数（校验失败、库存不足等）
	OrdersFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unibookshop_orders_failed_total",
		Help: "Total number of rejected order attempts",
	})

	// WebhookEventsTotal 支付Webhook事件总数
	// 标签：result（applied/ignored/unverified/not_found/error）
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unibookshop_payment_webhook_events_total",
			Help: "Total number of payment webhook deliveries by outcome",
		},
		[]string{"result"},
	)
)
