package ports

import "context"

type TextGenerator interface {
	Generate(ctx context.Context, apiKey string, prompt string) (string, error)
}
