// Package notion creates database pages through the Notion REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	APIVersion     = "2022-06-28"

	pagesPath        = "/v1/pages"
	maxResponseBytes = 1 << 20
	unknownError     = "Unknown error"
)

// Client is a ports.RecordSink writing one page per record.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

var _ ports.RecordSink = Client{}

func (c Client) CreateRecord(ctx context.Context, credential string, targetCollectionID string, record domain.PushRecord) error {
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}

	body, err := json.Marshal(newCreatePageRequest(targetCollectionID, record))
	if err != nil {
		return fmt.Errorf("encode create page request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create page request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return domain.NewError(domain.KindUpstream, "Failed to save to Notion", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.logger().Error("notion create page failed", "status", resp.StatusCode, "body", string(payload))

	return domain.NewError(domain.KindUpstream, "Failed to save to Notion: "+errorMessage(payload), nil)
}

func (c Client) endpoint() (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + pagesPath)
	if err != nil {
		return "", fmt.Errorf("parse notion base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("notion base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("notion base url host is required")
	}

	return parsed.String(), nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// errorMessage accepts both {"message": ...} and {"error": {"message": ...}}.
func errorMessage(payload []byte) string {
	var decoded struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return unknownError
	}
	if message := strings.TrimSpace(decoded.Message); message != "" {
		return message
	}

	var nested struct {
		Message string `json:"message"`
	}
	if len(decoded.Error) > 0 && json.Unmarshal(decoded.Error, &nested) == nil {
		if message := strings.TrimSpace(nested.Message); message != "" {
			return message
		}
	}

	return unknownError
}

type createPageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type pageProperties struct {
	What         titleProperty       `json:"What"`
	URL          urlProperty         `json:"URL"`
	Summary      richTextProperty    `json:"Summary"`
	WhyItMatters richTextProperty    `json:"Why it matters"`
	Tags         multiSelectProperty `json:"Tags"`
	Status       selectProperty      `json:"Status"`
	Date         dateProperty        `json:"Date"`
	Week         selectProperty      `json:"Week"`
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Text textContent `json:"text"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type urlProperty struct {
	URL string `json:"url"`
}

type richTextProperty struct {
	RichText []richText `json:"rich_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type selectProperty struct {
	Select selectOption `json:"select"`
}

type multiSelectProperty struct {
	MultiSelect []selectOption `json:"multi_select"`
}

type dateProperty struct {
	Date dateValue `json:"date"`
}

type dateValue struct {
	Start string `json:"start"`
}

func newCreatePageRequest(databaseID string, record domain.PushRecord) createPageRequest {
	tags := make([]selectOption, 0, len(record.Tags))
	for _, tag := range record.Tags {
		tags = append(tags, selectOption{Name: tag})
	}

	return createPageRequest{
		Parent: pageParent{DatabaseID: databaseID},
		Properties: pageProperties{
			What:         titleProperty{Title: []richText{{Text: textContent{Content: record.Title}}}},
			URL:          urlProperty{URL: record.URL},
			Summary:      richTextProperty{RichText: []richText{{Text: textContent{Content: record.Summary}}}},
			WhyItMatters: richTextProperty{RichText: []richText{{Text: textContent{Content: record.WhyItMatters}}}},
			Tags:         multiSelectProperty{MultiSelect: tags},
			Status:       selectProperty{Select: selectOption{Name: record.Status}},
			Date:         dateProperty{Date: dateValue{Start: record.Date}},
			Week:         selectProperty{Select: selectOption{Name: strconv.Itoa(record.Week)}},
		},
	}
}
