// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	ResumeUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_uploads_total",
			Help: "Total number of resumes uploaded by source channel",
		},
		[]string{"source_type"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jd_analyses_total",
			Help: "Total number of JD analyses by outcome",
		},
		[]string{"status"},
	)

	AnalysisCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jd_analysis_cache_hits_total",
			Help: "Match results served from cache vs newly scored",
		},
		[]string{"result"},
	)

	OutlookMessagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outlook_messages_processed_total",
			Help: "Total number of Outlook messages examined for resumes",
		},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of in-flight HTTP requests",
		},
	)
)
