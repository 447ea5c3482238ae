package categoryloader

import "context"

type ctxKey string

const categoryLoaderKey ctxKey = "categoryLoader"

// NewContext returns a context carrying the request's category loader.
func NewContext(ctx context.Context, l *CategoryLoader) context.Context {
	return context.WithValue(ctx, categoryLoaderKey, l)
}

// FromContext retrieves the request's category loader.
func FromContext(ctx context.Context) *CategoryLoader {
	if l, ok := ctx.Value(categoryLoaderKey).(*CategoryLoader); ok {
		return l
	}
	return nil
}
