package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	msgExtracting        = "Extracting page content..."
	msgSummarizing       = "Generating summary..."
	msgSaving            = "Saving to Notion..."
	msgSucceeded         = "Saved successfully!"
	msgPageContentError  = "Error getting page content"
	msgNoProfileSelected = "Please select a database"
	msgProfileNotFound   = "Selected database not found"

	NotificationTitle   = "Push to Notion"
	NotificationMessage = "Page saved to Notion successfully!"
)

type Progress struct {
	State   domain.PipelineState
	Message string
}

type ProgressFunc func(Progress)

type RunRequest struct {
	Page        domain.PageHandle
	Profile     domain.Profile
	ModelAPIKey string
}

// RunResult is the outcome of one run. Summary is set once summarization
// succeeded; Record only when the run succeeded.
type RunResult struct {
	State   domain.PipelineState
	Summary domain.SummaryRecord
	Record  domain.PushRecord
	Err     error
}

// Pipeline sequences extraction, summarization and persistence. It keeps no
// per-run state; every Run drives its own state machine.
type Pipeline struct {
	extractor  ports.PageExtractor
	summarizer *Summarizer
	persister  *Persister
	profiles   *ProfileStore
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewPipeline(
	extractor ports.PageExtractor,
	summarizer *Summarizer,
	persister *Persister,
	profiles *ProfileStore,
	notifier ports.Notifier,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		extractor:  extractor,
		summarizer: summarizer,
		persister:  persister,
		profiles:   profiles,
		notifier:   notifier,
		logger:     logger,
	}
}

func (p *Pipeline) Run(ctx context.Context, req RunRequest, progress ProgressFunc) RunResult {
	run := &pipelineRun{state: domain.StateIdle, progress: progress, logger: p.logger}

	run.advance(domain.StateExtracting, msgExtracting)
	content, err := p.extract(ctx, req.Page)
	if err != nil {
		return run.fail(err)
	}

	run.advance(domain.StateSummarizing, msgSummarizing)
	summary, err := p.summarizer.Summarize(ctx, content, req.ModelAPIKey)
	if err != nil {
		return run.fail(err)
	}

	run.advance(domain.StateSaving, msgSaving)
	record, err := p.persister.Persist(ctx, summary, req.Page.URL, req.Profile)
	if err != nil {
		result := run.fail(err)
		result.Summary = summary
		return result
	}

	run.advance(domain.StateSucceeded, msgSucceeded)
	p.notify(ctx)

	return RunResult{State: domain.StateSucceeded, Summary: summary, Record: record}
}

// RunProfile resolves profileID and the model API key, then runs the
// pipeline. Resolution failures end the run before extraction starts.
func (p *Pipeline) RunProfile(ctx context.Context, page domain.PageHandle, profileID domain.ProfileID, progress ProgressFunc) RunResult {
	req, err := p.resolve(ctx, page, profileID)
	if err != nil {
		if progress != nil {
			progress(Progress{State: domain.StateFailed, Message: err.Error()})
		}
		return RunResult{State: domain.StateFailed, Err: err}
	}

	return p.Run(ctx, req, progress)
}

func (p *Pipeline) resolve(ctx context.Context, page domain.PageHandle, profileID domain.ProfileID) (RunRequest, error) {
	if strings.TrimSpace(string(profileID)) == "" {
		return RunRequest{}, domain.NewError(domain.KindMissingTarget, msgNoProfileSelected, nil)
	}

	profile, err := p.profiles.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return RunRequest{}, domain.NewError(domain.KindMissingTarget, msgProfileNotFound, nil)
		}
		return RunRequest{}, fmt.Errorf("load profile: %w", err)
	}

	apiKey, err := p.profiles.ModelAPIKey(ctx)
	if err != nil {
		return RunRequest{}, err
	}

	return RunRequest{Page: page, Profile: profile, ModelAPIKey: apiKey}, nil
}

func (p *Pipeline) extract(ctx context.Context, page domain.PageHandle) (string, error) {
	content, err := p.extractor.Extract(ctx, page)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionDenied) {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", msgPageContentError, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%s: %w", msgPageContentError, domain.ErrNoPageContent)
	}

	return content, nil
}

func (p *Pipeline) notify(ctx context.Context) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Notify(ctx, NotificationTitle, NotificationMessage); err != nil {
		p.logger.Warn("notify saved page", "error", err)
	}
}

type pipelineRun struct {
	state    domain.PipelineState
	progress ProgressFunc
	logger   *slog.Logger
}

func (r *pipelineRun) advance(next domain.PipelineState, message string) {
	if !r.state.CanTransition(next) {
		panic(fmt.Sprintf("pipeline: invalid transition %s -> %s", r.state, next))
	}

	r.logger.Debug("pipeline transition", "from", string(r.state), "to", string(next))
	r.state = next
	if r.progress != nil {
		r.progress(Progress{State: next, Message: message})
	}
}

func (r *pipelineRun) fail(err error) RunResult {
	r.advance(domain.StateFailed, err.Error())
	return RunResult{State: domain.StateFailed, Err: err}
}
