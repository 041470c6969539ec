package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cms/internal/cache"
	"cms/internal/model"
	"cms/internal/repository"
)

const (
	attributionCachePrefix = "attribution:"
	attributionCacheTTL    = 5 * time.Minute
)

// AttributionResolver turns stored acted-by references into display
// identities. The admin reference resolves to a fixed identity with no
// store round-trip; user references are looked up and cached, and a lookup
// miss degrades to the raw id instead of failing.
type AttributionResolver struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewAttributionResolver builds a resolver over the user repository.
func NewAttributionResolver(users repository.UserRepository, cache *cache.Client) *AttributionResolver {
	return &AttributionResolver{users: users, cache: cache}
}

// Resolve enriches one attribution reference. The zero reference (an
// unreviewed leave request) resolves to the zero view.
func (r *AttributionResolver) Resolve(ctx context.Context, ref model.Attribution) model.AttributionView {
	if ref.IsAdmin() {
		return model.AdminAttributionView
	}
	userID, ok := ref.UserID()
	if !ok {
		return model.AttributionView{}
	}

	key := attributionCachePrefix + userID.String()
	var cached model.AttributionView
	if r.cache.GetJSON(ctx, key, &cached) {
		return cached
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// user since deleted: keep the raw reference
			return model.AttributionView{ID: userID.String()}
		}
		return model.AttributionView{ID: userID.String()}
	}

	view := model.AttributionView{ID: user.ID.String(), FullName: user.FullName}
	r.cache.SetJSON(ctx, key, view, attributionCacheTTL)
	return view
}

// Invalidate drops the cached display identity, e.g. after a rename.
func (r *AttributionResolver) Invalidate(ctx context.Context, userID string) {
	_ = r.cache.Delete(ctx, attributionCachePrefix+userID)
}
