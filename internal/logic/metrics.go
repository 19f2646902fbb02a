package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_assessment_cache_hits_total",
		Help: "Assessments served from cache, by feature",
	}, []string{"feature"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_assessment_cache_misses_total",
		Help: "Assessments computed on a cache miss, by feature",
	}, []string{"feature"})

	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_assessment_cache_errors_total",
		Help: "Cache operations that failed and were bypassed, by operation",
	}, []string{"op"})

	computeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitch_assessment_compute_duration_seconds",
		Help:    "Time spent fetching a snapshot and running a predictor",
		Buckets: prometheus.DefBuckets,
	}, []string{"feature"})

	batchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitch_batch_player_failures_total",
		Help: "Players that failed inside a team batch, by feature",
	}, []string{"feature"})
)
