// Package gemini calls the Gemini generateContent endpoint.
package gemini

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
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash-latest"

	maxResponseBytes = 4 << 20
	unknownError     = "Unknown error"
)

// Client is a ports.TextGenerator. The zero value talks to the public
// endpoint with the default model and http.DefaultClient.
type Client struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

var _ ports.TextGenerator = Client{}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends prompt as a single user turn and returns the first
// candidate's first text part.
func (c Client) Generate(ctx context.Context, apiKey string, prompt string) (string, error) {
	endpoint, err := c.endpoint(apiKey)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", domain.NewError(domain.KindUpstream, "Failed to get summary from Google AI", redactKey(err))
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", domain.NewError(domain.KindUpstream, "Failed to get summary from Google AI", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger().Error("gemini request failed", "status", resp.StatusCode, "body", string(payload))
		return "", domain.NewError(domain.KindUpstream, "Failed to get summary from Google AI: "+errorMessage(payload), nil)
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", domain.NewError(domain.KindUpstream, "decode Gemini response", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewError(domain.KindEmptyResponse, "Gemini returned an empty response.", nil)
	}
	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", domain.NewError(domain.KindEmptyResponse, "Gemini returned an empty response.", nil)
	}

	return text, nil
}

func (c Client) endpoint(apiKey string) (string, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/models/" + url.PathEscape(model) + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("parse gemini base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("gemini base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("gemini base url host is required")
	}

	query := parsed.Query()
	query.Set("key", apiKey)
	parsed.RawQuery = query.Encode()

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

func errorMessage(payload []byte) string {
	var decoded errorResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return unknownError
	}
	if message := strings.TrimSpace(decoded.Error.Message); message != "" {
		return message
	}
	return unknownError
}

// redactKey drops the request URL, which carries the API key, from
// transport errors.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
