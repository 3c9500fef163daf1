//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package v1

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SearchMetrics contains a set of functions that are invoked on different
// stages of a search call to report metrics.
type SearchMetrics struct {
	OnRequest func(collection string)
	OnRetry   func(collection string)
	OnDone    func(collection, code string, took time.Duration)
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	if reg == nil {
		return nil
	}

	requests := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "weaviate_client",
		Name:      "search_requests_total",
		Help:      "Number of search requests sent",
	}, []string{"collection"})

	retries := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: "weaviate_client",
		Name:      "search_retries_total",
		Help:      "Number of search requests retried after the server was unavailable",
	}, []string{"collection"})

	durations := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weaviate_client",
		Name:      "search_duration_seconds",
		Help:      "Duration of search calls including retries",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection", "code"})

	return &SearchMetrics{
		OnRequest: func(collection string) {
			requests.WithLabelValues(collection).Inc()
		},
		OnRetry: func(collection string) {
			retries.WithLabelValues(collection).Inc()
		},
		OnDone: func(collection, code string, took time.Duration) {
			durations.WithLabelValues(collection, code).Observe(took.Seconds())
		},
	}
}
