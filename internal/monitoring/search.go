package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetrics records orchestration outcomes.
type SearchMetrics struct {
	branches   *prometheus.CounterVec
	branchHits *prometheus.CounterVec
	queries    *prometheus.CounterVec
	uploads    *prometheus.CounterVec
}

// CreateSearchMetrics registers the search metrics on mc.
func (mc *MetricsCollector) CreateSearchMetrics() *SearchMetrics {
	return &SearchMetrics{
		branches:   mc.NewCounter("search_branches_total", "Provider branch outcomes", []string{"branch", "success"}),
		branchHits: mc.NewCounter("search_branch_items_total", "Items returned per provider branch", []string{"branch"}),
		queries:    mc.NewCounter("search_queries_total", "Search queries by derivation source", []string{"source"}),
		uploads:    mc.NewCounter("media_uploads_total", "Media uploads by outcome", []string{"success"}),
	}
}

func (m *SearchMetrics) BranchCompleted(branch string, ok bool, items int) {
	m.branches.WithLabelValues(branch, strconv.FormatBool(ok)).Inc()
	if ok {
		m.branchHits.WithLabelValues(branch).Add(float64(items))
	}
}

func (m *SearchMetrics) QueryDerived(extracted bool) {
	source := "fallback"
	if extracted {
		source = "extracted"
	}
	m.queries.WithLabelValues(source).Inc()
}

func (m *SearchMetrics) UploadCompleted(ok bool) {
	m.uploads.WithLabelValues(strconv.FormatBool(ok)).Inc()
}
