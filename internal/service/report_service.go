package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/hedgecoast/signals/internal/model"
	"github.com/hedgecoast/signals/pkg/datetime"
)

// ReportService renders a move event into the notification body lines shared
// by every channel. Channel formatting (HTML vs plain text) is layered on top
// of the same line list.
type ReportService struct{}

// NewReportService creates a new report service
func NewReportService() *ReportService {
	return &ReportService{}
}

type reportClause struct {
	epoch int64
	text  string
}

// ComposeReport builds the ordered report lines for an event. The two header
// lines are always present. A drop or jump clause appears only when its
// magnitude reaches the event's threshold, and when both appear the earlier
// one comes first.
func (s *ReportService) ComposeReport(event model.MoveEvent) []string {
	lines := []string{
		"A market sudden move was detected:",
		fmt.Sprintf("%s price experienced %s", event.Symbol, event.MoveType),
	}

	clauses := make([]reportClause, 0, 2)

	if math.Abs(event.MinDropPercent) >= event.ThresholdPercent {
		clauses = append(clauses, reportClause{
			epoch: event.EpochAtMinDrop,
			text: fmt.Sprintf("At %s dropped by %d%% to $%s",
				datetime.FormatReportTime(event.EpochAtMinDrop),
				int64(math.Round(math.Abs(event.MinDropPercent))),
				event.PriceAtMinDrop.String(),
			),
		})
	}

	if math.Abs(event.MaxJumpPercent) >= event.ThresholdPercent {
		clauses = append(clauses, reportClause{
			epoch: event.EpochAtMaxJump,
			text: fmt.Sprintf("At %s jumped by %d%% to $%s",
				datetime.FormatReportTime(event.EpochAtMaxJump),
				int64(math.Round(math.Abs(event.MaxJumpPercent))),
				event.PriceAtMaxJump.String(),
			),
		})
	}

	// Earlier clause first. The drop clause is appended first, so swapping
	// only when the jump strictly precedes the drop keeps ties in
	// drop-then-jump order.
	if len(clauses) == 2 && clauses[1].epoch < clauses[0].epoch {
		clauses[0], clauses[1] = clauses[1], clauses[0]
	}

	for _, clause := range clauses {
		lines = append(lines, clause.text)
	}
	return lines
}

// RenderHTML renders report lines as an email body with the first line bold.
func (s *ReportService) RenderHTML(lines []string) string {
	if len(lines) == 0 {
		return "<h4>empty report</h4>"
	}

	rendered := make([]string, len(lines))
	rendered[0] = fmt.Sprintf("<b>%s</b>", lines[0])
	copy(rendered[1:], lines[1:])
	return strings.Join(rendered, "<br />")
}

// RenderText renders report lines as an SMS body.
func (s *ReportService) RenderText(lines []string) string {
	return strings.Join(lines, "\n")
}
