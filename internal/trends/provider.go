package trends

import (
	"context"
	"errors"
)

// ErrUnavailable marks the provider as out of service.
var ErrUnavailable = errors.New("trends_unavailable")

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, keyword string) ([]int, error)

// Series implements Provider.
func (f ProviderFunc) Series(ctx context.Context, keyword string) ([]int, error) {
	return f(ctx, keyword)
}

// Unavailable returns a Provider that always fails. Deployments without
// an upstream trends service run on the keyword heuristic alone.
func Unavailable() Provider {
	return ProviderFunc(func(context.Context, string) ([]int, error) {
		return nil, ErrUnavailable
	})
}
