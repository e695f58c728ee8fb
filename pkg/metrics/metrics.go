package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "outblog_sync"

var (
	// HTTP
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 同步
	PostsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_synced_total",
			Help:      "Posts upserted from Outblog",
		},
		[]string{"trigger"}, // manual / cron
	)

	SyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_failures_total",
			Help:      "Failed shop syncs by error kind",
		},
		[]string{"kind"},
	)

	// 发布
	ArticlesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_published_total",
			Help:      "Articles created in Shopify",
		},
		[]string{"mode"}, // single / bulk
	)

	PublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Failed article creations by error kind",
		},
		[]string{"mode", "kind"},
	)

	// 在线状态校验
	ArticlesDemoted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_demoted_total",
		Help:      "Posts demoted to draft because the Shopify article disappeared",
	})
)
