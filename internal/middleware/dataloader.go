package middleware

import (
	"context"
	"net/http"

	"github.com/stackmart/catalog/internal/categoryloader"
	"github.com/stackmart/catalog/internal/repository"
)

// DataLoaderMiddleware attaches a fresh category loader to each request
// context so batching never crosses request boundaries.
func DataLoaderMiddleware(repo repository.CategoryRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loader := categoryloader.NewCategoryLoader(repo)
			next.ServeHTTP(w, r.WithContext(categoryloader.NewContext(r.Context(), loader)))
		})
	}
}

// CategoryLoaderFromContext retrieves the request's category loader.
func CategoryLoaderFromContext(ctx context.Context) *categoryloader.CategoryLoader {
	return categoryloader.FromContext(ctx)
}
