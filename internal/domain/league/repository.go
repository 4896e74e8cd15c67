package league

import "context"

// Repository exposes the fixed league catalog to use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByKey(ctx context.Context, key string) (League, bool, error)
}
