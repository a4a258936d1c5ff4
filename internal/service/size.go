package service

import (
	"context"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/events"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// SizeInput is the payload of size create and update
type SizeInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (in SizeInput) validate() error {
	return requireFields(field{"name", in.Name}, field{"value", in.Value})
}

type SizeService struct {
	base
}

func (s *SizeService) Create(ctx context.Context, callerID, storeID string, in SizeInput) (size *model.Size, err error) {
	defer func() { s.record(events.EntitySize, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return nil, err
	}

	size = &model.Size{
		ID:      model.NewID(),
		StoreID: storeID,
		Name:    in.Name,
		Value:   in.Value,
	}
	if err := s.repo.CreateSize(ctx, size); err != nil {
		return nil, storageError("failed to create size", err)
	}

	logger.FromContext(ctx).Info("Size created",
		zap.String("store_id", storeID),
		zap.String("size_id", size.ID))
	s.publish(ctx, events.EntitySize, events.ActionCreated, storeID, size.ID, callerID)
	return size, nil
}

func (s *SizeService) Update(ctx context.Context, callerID, storeID, sizeID string, in SizeInput) (effect Effect, err error) {
	defer func() { s.record(events.EntitySize, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := in.validate(); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"size_id", sizeID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(sizeID) {
		return Effect{}, nil
	}

	n, err := s.repo.UpdateSize(ctx, &model.Size{
		ID:      sizeID,
		StoreID: storeID,
		Name:    in.Name,
		Value:   in.Value,
	})
	if err != nil {
		return Effect{}, storageError("failed to update size", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntitySize, events.ActionUpdated, storeID, sizeID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes a size no product uses
func (s *SizeService) Delete(ctx context.Context, callerID, storeID, sizeID string) (effect Effect, err error) {
	defer func() { s.record(events.EntitySize, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"size_id", sizeID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(sizeID) {
		return Effect{}, nil
	}

	used, err := s.repo.CountProducts(ctx, storeID, repository.RefSize, sizeID)
	if err != nil {
		return Effect{}, storageError("failed to check size usage", err)
	}
	if used > 0 {
		return Effect{}, apperror.Conflict("make sure you removed all products using this size first")
	}

	n, err := s.repo.DeleteSize(ctx, storeID, sizeID)
	if err != nil {
		return Effect{}, storageError("failed to delete size", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntitySize, events.ActionDeleted, storeID, sizeID, callerID)
	}
	return Effect{Count: n}, nil
}
