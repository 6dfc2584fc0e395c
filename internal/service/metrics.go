package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 服务层 Prometheus 指标
type Metrics struct {
	Resolutions      *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	DocumentsCreated prometheus.Counter
	DocumentsExpired prometheus.Counter
}

// NewMetrics registers the collectors on reg; a nil reg keeps them unregistered.
// NewMetrics 在 reg 上注册指标，reg 为 nil 时不注册
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doc_share",
			Name:      "resolutions_total",
			Help:      "Document resolutions by outcome.",
		}, []string{"op", "result"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "doc_share",
			Name:      "cache_lookups_total",
			Help:      "Read-through cache lookups by result.",
		}, []string{"result"}),
		DocumentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doc_share",
			Name:      "documents_created_total",
			Help:      "Documents created.",
		}),
		DocumentsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "doc_share",
			Name:      "documents_expired_total",
			Help:      "Documents deactivated because their expiration date passed.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Resolutions, m.CacheLookups, m.DocumentsCreated, m.DocumentsExpired)
	}
	return m
}
