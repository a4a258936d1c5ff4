// Package guard binds a caller to a store before any write to the store's
// catalog.
package guard

import (
	"context"
	"errors"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// Guard is the ownership check shared by every mutator
type Guard struct {
	stores repository.StoreFinder
}

func New(stores repository.StoreFinder) *Guard {
	return &Guard{stores: stores}
}

// Authorize returns the store identified by storeID when callerID owns it.
// A missing store and a store owned by someone else fail the same way so
// that store ids cannot be probed.
func (g *Guard) Authorize(ctx context.Context, callerID, storeID string) (*model.Store, error) {
	if callerID == "" {
		return nil, apperror.Unauthenticated()
	}
	if storeID == "" || !model.ValidID(storeID) {
		return nil, apperror.Forbidden()
	}

	store, err := g.stores.FindOwnedStore(ctx, storeID, callerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.FromContext(ctx).Warn("Store access denied",
			zap.String("store_id", storeID),
			zap.String("caller_id", callerID))
		return nil, apperror.Forbidden()
	case err != nil:
		return nil, apperror.Internal("failed to verify store ownership", err)
	}

	return store, nil
}
