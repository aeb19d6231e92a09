package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchTotal counts invocations by strategy and outcome ("found", "unreachable").
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladder_search_total",
		Help: "Total word ladder searches by strategy and outcome",
	}, []string{"strategy", "result"})

	searchNodesExplored = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ladder_search_nodes_explored",
		Help:    "Frontier pops per search",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"strategy"})

	searchMaxQueue = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ladder_search_max_queue_size",
		Help:    "Frontier high-water mark per search",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
	}, []string{"strategy"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ladder_search_duration_seconds",
		Help:    "Search wall-clock duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"strategy"})
)

func observe(s *Stats, found bool) {
	label := string(s.Strategy)
	result := "unreachable"
	if found {
		result = "found"
	}
	searchTotal.WithLabelValues(label, result).Inc()
	searchNodesExplored.WithLabelValues(label).Observe(float64(s.NodesExplored))
	searchMaxQueue.WithLabelValues(label).Observe(float64(s.MaxQueueSize))
	searchDuration.WithLabelValues(label).Observe(s.Seconds())
}
