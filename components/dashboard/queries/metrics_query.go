package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// MetricsInput has no parameters; the shell carries the filters.
type MetricsInput struct{}

type metricsReader interface {
	Metrics() dashboard.MetricsComparison
	Summary() dashboard.SummarySnapshot
}

// MetricsQuery aggregates the filtered dataset.
type MetricsQuery struct {
	shell metricsReader
}

// NewMetricsQuery builds the query.
func NewMetricsQuery(shell metricsReader) *MetricsQuery {
	return &MetricsQuery{shell: shell}
}

var _ gocommand.Querier[MetricsInput, dashboard.MetricsComparison] = (*MetricsQuery)(nil)

// Query returns the current and previous-period aggregates.
func (q *MetricsQuery) Query(ctx context.Context, _ MetricsInput) (dashboard.MetricsComparison, error) {
	return q.shell.Metrics(), nil
}

// SummaryQuery renders the summary panel.
type SummaryQuery struct {
	shell metricsReader
}

// NewSummaryQuery builds the query.
func NewSummaryQuery(shell metricsReader) *SummaryQuery {
	return &SummaryQuery{shell: shell}
}

var _ gocommand.Querier[MetricsInput, dashboard.SummarySnapshot] = (*SummaryQuery)(nil)

// Query returns the formatted summary lines.
func (q *SummaryQuery) Query(ctx context.Context, _ MetricsInput) (dashboard.SummarySnapshot, error) {
	return q.shell.Summary(), nil
}
