package contracts

import "context"

// ProductCache drops cached views of a product. Implementations must not
// fail the caller: invalidation errors are logged, not returned.
type ProductCache interface {
	Invalidate(ctx context.Context, productID string)
}

// NoopProductCache is used when caching is off.
type NoopProductCache struct{}

func (NoopProductCache) Invalidate(context.Context, string) {}
