// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route, method, and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftcircle_http_requests_total",
		Help: "HTTP requests processed, by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "giftcircle_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// LedgerEntriesCreated counts money entries written by settlement runs.
	LedgerEntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "giftcircle_ledger_entries_created_total",
		Help: "Money entries created from proposal settlements.",
	})

	// ProposalsResolved counts proposals reaching a final aggregate status.
	ProposalsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "giftcircle_proposals_resolved_total",
		Help: "Proposals that reached accepted or declined status.",
	}, []string{"status"})
)
