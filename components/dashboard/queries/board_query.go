package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-board/components/dashboard"
)

// BoardStateInput has no parameters; the board is a single-viewer session.
type BoardStateInput struct{}

// BoardState is a read-only snapshot of the chart board layout.
type BoardState struct {
	Widgets   []dashboard.ChartWidget `json:"widgets"`
	Row       []string                `json:"row"`
	Column    []string                `json:"column"`
	Collapsed bool                    `json:"collapsed"`
}

type boardReader interface {
	Widgets() []dashboard.ChartWidget
	RowLayout() []string
	ColumnLayout() []string
	Collapsed() bool
}

// BoardStateQuery snapshots the chart board.
type BoardStateQuery struct {
	board boardReader
}

// NewBoardStateQuery builds the query.
func NewBoardStateQuery(board boardReader) *BoardStateQuery {
	return &BoardStateQuery{board: board}
}

var _ gocommand.Querier[BoardStateInput, BoardState] = (*BoardStateQuery)(nil)

// Query returns the current layout snapshot.
func (q *BoardStateQuery) Query(ctx context.Context, _ BoardStateInput) (BoardState, error) {
	return BoardState{
		Widgets:   q.board.Widgets(),
		Row:       q.board.RowLayout(),
		Column:    q.board.ColumnLayout(),
		Collapsed: q.board.Collapsed(),
	}, nil
}

// RowsInput has no parameters.
type RowsInput struct{}

type rowReader interface {
	DetailRows() []dashboard.MetricRow
	ContentRows() []dashboard.ContentRow
}

// DetailRowsQuery returns the filtered performance rows.
type DetailRowsQuery struct {
	shell rowReader
}

// NewDetailRowsQuery builds the query.
func NewDetailRowsQuery(shell rowReader) *DetailRowsQuery {
	return &DetailRowsQuery{shell: shell}
}

var _ gocommand.Querier[RowsInput, []dashboard.MetricRow] = (*DetailRowsQuery)(nil)

// Query returns the rows the details grid shows.
func (q *DetailRowsQuery) Query(ctx context.Context, _ RowsInput) ([]dashboard.MetricRow, error) {
	return q.shell.DetailRows(), nil
}

// ContentRowsQuery returns the filtered placement rows.
type ContentRowsQuery struct {
	shell rowReader
}

// NewContentRowsQuery builds the query.
func NewContentRowsQuery(shell rowReader) *ContentRowsQuery {
	return &ContentRowsQuery{shell: shell}
}

var _ gocommand.Querier[RowsInput, []dashboard.ContentRow] = (*ContentRowsQuery)(nil)

// Query returns the rows the content grid shows.
func (q *ContentRowsQuery) Query(ctx context.Context, _ RowsInput) ([]dashboard.ContentRow, error) {
	return q.shell.ContentRows(), nil
}
