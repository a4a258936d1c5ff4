package service

import (
	"context"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/events"
	"store-admin-service/internal/model"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// StoreInput is the payload of store create and update
type StoreInput struct {
	Name string `json:"name"`
}

// StoreService manages the tenant root. Stores are always filtered by owner.
type StoreService struct {
	base
}

// Create makes a store owned by the caller
func (s *StoreService) Create(ctx context.Context, callerID string, in StoreInput) (store *model.Store, err error) {
	defer func() { s.record(events.EntityStore, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := requireFields(field{"name", in.Name}); err != nil {
		return nil, err
	}

	store = &model.Store{
		ID:      model.NewID(),
		OwnerID: callerID,
		Name:    in.Name,
	}
	if err := s.repo.CreateStore(ctx, store); err != nil {
		return nil, storageError("failed to create store", err)
	}

	logger.FromContext(ctx).Info("Store created",
		zap.String("store_id", store.ID),
		zap.String("owner_id", callerID))
	s.publish(ctx, events.EntityStore, events.ActionCreated, store.ID, store.ID, callerID)
	return store, nil
}

// Update renames a store of the caller
func (s *StoreService) Update(ctx context.Context, callerID, storeID string, in StoreInput) (effect Effect, err error) {
	defer func() { s.record(events.EntityStore, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"name", in.Name}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}

	n, err := s.repo.UpdateStore(ctx, storeID, callerID, in.Name)
	if err != nil {
		return Effect{}, storageError("failed to update store", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityStore, events.ActionUpdated, storeID, storeID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes an empty store of the caller
func (s *StoreService) Delete(ctx context.Context, callerID, storeID string) (effect Effect, err error) {
	defer func() { s.record(events.EntityStore, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}

	dependents, err := s.repo.CountStoreDependents(ctx, storeID)
	if err != nil {
		return Effect{}, storageError("failed to check store contents", err)
	}
	if dependents > 0 {
		logger.FromContext(ctx).Warn("Store delete blocked by catalog entities",
			zap.String("store_id", storeID),
			zap.Int64("dependents", dependents))
		return Effect{}, apperror.Conflict("remove all billboards, categories, sizes, colors and products before deleting this store")
	}

	n, err := s.repo.DeleteStore(ctx, storeID, callerID)
	if err != nil {
		return Effect{}, storageError("failed to delete store", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityStore, events.ActionDeleted, storeID, storeID, callerID)
	}
	return Effect{Count: n}, nil
}
