package settings

import "context"

type Repository interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	All(ctx context.Context) (map[string]string, error)
}
