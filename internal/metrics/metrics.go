package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Playback and subtitle metrics
var (
	// ProgressSavesTotal counts playback-position writes by outcome ("ok" or "error").
	ProgressSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_saves_total",
			Help: "Total number of playback progress save attempts.",
		},
		[]string{"status"},
	)

	// ProgressLoadsTotal counts playback-position reads by outcome ("hit" or "miss").
	ProgressLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_loads_total",
			Help: "Total number of playback progress load attempts.",
		},
		[]string{"result"},
	)

	// TracksParsedTotal counts subtitle documents parsed into cue lists.
	TracksParsedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subtitle_tracks_parsed_total",
			Help: "Total number of subtitle documents parsed.",
		},
	)

	// CueDropsTotal counts malformed cue blocks dropped during parsing.
	CueDropsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "subtitle_cue_drops_total",
			Help: "Total number of malformed cue blocks dropped during parsing.",
		},
	)
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts API requests by method, chi route pattern, and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and chi route pattern.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(
		ProgressSavesTotal,
		ProgressLoadsTotal,
		TracksParsedTotal,
		CueDropsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
