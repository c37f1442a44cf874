package domain

type PipelineState string

const (
	StateIdle        PipelineState = "idle"
	StateExtracting  PipelineState = "extracting"
	StateSummarizing PipelineState = "summarizing"
	StateSaving      PipelineState = "saving"
	StateSucceeded   PipelineState = "succeeded"
	StateFailed      PipelineState = "failed"
)

func (s PipelineState) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransition reports whether the pipeline may move from s to next.
func (s PipelineState) CanTransition(next PipelineState) bool {
	switch s {
	case StateIdle:
		return next == StateExtracting
	case StateExtracting:
		return next == StateSummarizing || next == StateFailed
	case StateSummarizing:
		return next == StateSaving || next == StateFailed
	case StateSaving:
		return next == StateSucceeded || next == StateFailed
	default:
		return false
	}
}

// PageHandle identifies the page to extract. Text, when set, is the
// already-extracted visible text.
type PageHandle struct {
	URL  string
	Text string
}
