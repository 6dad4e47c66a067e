package worker

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/cache"
	"github.com/spec-kit/catalog-service/internal/events"
)

// StartCacheWorker subscribes cache invalidation to catalog mutations.
func StartCacheWorker(dispatcher events.Dispatcher, catalogCache *cache.CatalogCache) {
	if dispatcher == nil || catalogCache == nil {
		return
	}

	invalidate := func(ctx context.Context, _ events.Event) error {
		catalogCache.InvalidateLists(ctx)
		return nil
	}

	dispatcher.Subscribe(events.EventProductCreated, invalidate)
	dispatcher.Subscribe(events.EventProductUpdated, invalidate)
	dispatcher.Subscribe(events.EventProductDeleted, invalidate)
	dispatcher.Subscribe(events.EventCategoryChanged, invalidate)
}
