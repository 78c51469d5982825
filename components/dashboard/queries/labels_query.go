package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// LabelsInput has no parameters; the shell carries the interval.
type LabelsInput struct{}

// AxisState bundles the rendered labels with the resolved bucketing and the
// picks the viewer may still make.
type AxisState struct {
	Labels       []string                          `json:"labels"`
	Granularity  dashboard.Granularity             `json:"granularity"`
	Availability dashboard.GranularityAvailability `json:"availability"`
}

type axisReader interface {
	Labels() []string
	Granularity() dashboard.Granularity
	Availability() dashboard.GranularityAvailability
}

// LabelsQuery resolves the x-axis for the active interval.
type LabelsQuery struct {
	shell axisReader
}

// NewLabelsQuery builds the query.
func NewLabelsQuery(shell axisReader) *LabelsQuery {
	return &LabelsQuery{shell: shell}
}

var _ gocommand.Querier[LabelsInput, AxisState] = (*LabelsQuery)(nil)

// Query returns the axis snapshot.
func (q *LabelsQuery) Query(ctx context.Context, _ LabelsInput) (AxisState, error) {
	return AxisState{
		Labels:       q.shell.Labels(),
		Granularity:  q.shell.Granularity(),
		Availability: q.shell.Availability(),
	}, nil
}
