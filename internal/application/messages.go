package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

type MessageType string

const (
	MessageGetSummary   MessageType = "getSummary"
	MessageSaveToNotion MessageType = "saveToNotion"
)

var errMissingSavePayload = errors.New("save request has no data")

// SavePayload is the record to persist. ProfileID, when set, takes
// precedence over the inline NotionKey/DatabaseID pair.
type SavePayload struct {
	URL          string   `json:"url"`
	Summary      string   `json:"summary"`
	WhyItMatters string   `json:"whyItMatters"`
	Tags         []string `json:"tags"`
	NotionKey    string   `json:"notionKey,omitempty"`
	DatabaseID   string   `json:"databaseId,omitempty"`
	ProfileID    string   `json:"profileId,omitempty"`
}

type Message struct {
	Type    MessageType  `json:"type"`
	Content string       `json:"content,omitempty"`
	Data    *SavePayload `json:"data,omitempty"`
}

// Reply is a SummaryRecord, {"success": true} or {"error": msg}.
type Reply struct {
	*domain.SummaryRecord
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

func errorReply(err error) Reply {
	return Reply{Error: err.Error()}
}

type MessageHandler func(ctx context.Context, msg Message) Reply

// Dispatcher routes inbound messages through a fixed handler table.
type Dispatcher struct {
	handlers   map[MessageType]MessageHandler
	summarizer *Summarizer
	persister  *Persister
	profiles   *ProfileStore
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewDispatcher(summarizer *Summarizer, persister *Persister, profiles *ProfileStore, notifier ports.Notifier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		summarizer: summarizer,
		persister:  persister,
		profiles:   profiles,
		notifier:   notifier,
		logger:     logger,
	}
	d.handlers = map[MessageType]MessageHandler{
		MessageGetSummary:   d.handleGetSummary,
		MessageSaveToNotion: d.handleSaveToNotion,
	}

	return d
}

func (d *Dispatcher) Handle(ctx context.Context, msg Message) Reply {
	handler, ok := d.handlers[msg.Type]
	if !ok {
		return Reply{Error: fmt.Sprintf("unsupported message type %q", msg.Type)}
	}

	reply := handler(ctx, msg)
	if reply.Error != "" {
		d.logger.Warn("message failed", "type", string(msg.Type), "error", reply.Error)
	}

	return reply
}

// HandleAsync runs the handler on its own goroutine. The channel receives
// exactly one reply.
func (d *Dispatcher) HandleAsync(ctx context.Context, msg Message) <-chan Reply {
	replies := make(chan Reply, 1)
	go func() {
		replies <- d.Handle(ctx, msg)
	}()

	return replies
}

func (d *Dispatcher) handleGetSummary(ctx context.Context, msg Message) Reply {
	apiKey, err := d.profiles.ModelAPIKey(ctx)
	if err != nil {
		return errorReply(err)
	}

	record, err := d.summarizer.Summarize(ctx, msg.Content, apiKey)
	if err != nil {
		return errorReply(err)
	}

	return Reply{SummaryRecord: &record}
}

func (d *Dispatcher) handleSaveToNotion(ctx context.Context, msg Message) Reply {
	if msg.Data == nil {
		return errorReply(errMissingSavePayload)
	}
	data := msg.Data

	profile := domain.Profile{Credential: data.NotionKey, TargetCollectionID: data.DatabaseID}
	if data.ProfileID != "" {
		resolved, err := d.profiles.Get(ctx, domain.ProfileID(data.ProfileID))
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return errorReply(domain.NewError(domain.KindMissingTarget, msgProfileNotFound, nil))
			}
			return errorReply(err)
		}
		profile = resolved
	}

	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	record := domain.SummaryRecord{Summary: data.Summary, WhyItMatters: data.WhyItMatters, Tags: tags}

	if _, err := d.persister.Persist(ctx, record, data.URL, profile); err != nil {
		return errorReply(err)
	}

	if d.notifier != nil {
		if err := d.notifier.Notify(ctx, NotificationTitle, NotificationMessage); err != nil {
			d.logger.Warn("notify saved page", "error", err)
		}
	}

	return Reply{Success: true}
}
