package preference

import "context"

// Repository is a durable key-value store for user preferences.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
