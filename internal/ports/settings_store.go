package ports

import "context"

// SettingsStore is a flat string key-value store. Get omits absent keys.
type SettingsStore interface {
	Get(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, values map[string]string) error
}
