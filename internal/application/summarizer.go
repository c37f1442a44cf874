package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	msgModelKeyNotSet    = "Google AI API key not set. Run 'pp apikey set <key>' to set it."
	msgModelRequestError = "Failed to get summary from Google AI"
	msgModelEmptyReply   = "Gemini returned an empty response."
	msgModelInvalidJSON  = "Gemini response was not valid JSON"
)

const summaryPromptTemplate = `Provide an output strictly in JSON with keys summary, whyItMatters, tags.
- summary: two sentences summarising the article.
- whyItMatters: one sentence explaining the relevance to a curious professional.
- tags: array of 2-4 concise topic slugs (lowercase, hyphenated).
Article Content: `

// BuildSummaryPrompt returns the prompt sent to the model for content.
func BuildSummaryPrompt(content string) string {
	return summaryPromptTemplate + content
}

type Summarizer struct {
	generator ports.TextGenerator
	logger    *slog.Logger
}

func NewSummarizer(generator ports.TextGenerator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Summarizer{generator: generator, logger: logger}
}

func (s *Summarizer) Summarize(ctx context.Context, content string, credential string) (domain.SummaryRecord, error) {
	if strings.TrimSpace(credential) == "" {
		return domain.SummaryRecord{}, domain.NewError(domain.KindMissingCredential, msgModelKeyNotSet, nil)
	}

	raw, err := s.generator.Generate(ctx, credential, BuildSummaryPrompt(content))
	if err != nil {
		if _, ok := domain.KindOf(err); ok {
			return domain.SummaryRecord{}, err
		}
		return domain.SummaryRecord{}, domain.NewError(domain.KindUpstream, msgModelRequestError, err)
	}
	if strings.TrimSpace(raw) == "" {
		return domain.SummaryRecord{}, domain.NewError(domain.KindEmptyResponse, msgModelEmptyReply, nil)
	}

	record, err := domain.ParseSummaryResponse(raw)
	if err != nil {
		s.logger.Debug("model reply could not be parsed", "error", err, "reply_bytes", len(raw))
		return domain.SummaryRecord{}, domain.NewError(domain.KindUpstream, msgModelInvalidJSON, err)
	}

	return record, nil
}
