package loaders

import (
	"context"
	"net/http"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the request-scoped dataloaders
type Loaders struct {
	ProviderLoader *dataloader.Loader[string, *entities.Provider]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(providerRepo repositories.ProviderRepository) *Loaders {
	return &Loaders{
		ProviderLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Provider] {
			results := make([]*dataloader.Result[*entities.Provider], len(keys))
			providers, err := providerRepo.GetByIDs(ctx, keys)

			providerMap := make(map[string]*entities.Provider, len(providers))
			if err == nil {
				for _, p := range providers {
					providerMap[p.ID] = p
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Provider]{Error: err}
				} else if p, ok := providerMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Provider]{Data: p}
				} else {
					results[i] = &dataloader.Result[*entities.Provider]{Error: apperrors.NewNotFoundError("provider " + key + " not found")}
				}
			}
			return results
		}),
	}
}

// For returns the loaders for a given context, or nil outside a request
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// Middleware attaches fresh loaders to every request so batching and
// memoization never leak between requests
func Middleware(providerRepo repositories.ProviderRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(providerRepo))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ProviderNames resolves display names for a set of provider ids. Providers
// that fail to load are left out.
func ProviderNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	l := For(ctx)
	if l == nil || len(ids) == 0 {
		return names
	}

	providers, _ := l.ProviderLoader.LoadMany(ctx, ids)()
	for _, p := range providers {
		if p != nil {
			names[p.ID] = p.Name
		}
	}
	return names
}
