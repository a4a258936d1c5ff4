package service

import (
	"context"
	"errors"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/events"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// CategoryInput is the payload of category create and update
type CategoryInput struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboard_id"`
}

func (in CategoryInput) validate() error {
	return requireFields(field{"name", in.Name}, field{"billboard_id", in.BillboardID})
}

type CategoryService struct {
	base
}

// resolveBillboard checks that the referenced billboard belongs to the store
func (s *CategoryService) resolveBillboard(ctx context.Context, storeID, billboardID string) error {
	if !model.ValidID(billboardID) {
		return apperror.Validation("billboard_id", "billboard not found in this store")
	}
	_, err := s.repo.GetBillboard(ctx, storeID, billboardID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.Validation("billboard_id", "billboard not found in this store")
	case err != nil:
		return storageError("failed to resolve billboard", err)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, callerID, storeID string, in CategoryInput) (category *model.Category, err error) {
	defer func() { s.record(events.EntityCategory, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return nil, err
	}
	if err := s.resolveBillboard(ctx, storeID, in.BillboardID); err != nil {
		return nil, err
	}

	category = &model.Category{
		ID:          model.NewID(),
		StoreID:     storeID,
		BillboardID: in.BillboardID,
		Name:        in.Name,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, storageError("failed to create category", err)
	}

	logger.FromContext(ctx).Info("Category created",
		zap.String("store_id", storeID),
		zap.String("category_id", category.ID))
	s.publish(ctx, events.EntityCategory, events.ActionCreated, storeID, category.ID, callerID)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, callerID, storeID, categoryID string, in CategoryInput) (effect Effect, err error) {
	defer func() { s.record(events.EntityCategory, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := in.validate(); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"category_id", categoryID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(categoryID) {
		return Effect{}, nil
	}
	if err := s.resolveBillboard(ctx, storeID, in.BillboardID); err != nil {
		return Effect{}, err
	}

	n, err := s.repo.UpdateCategory(ctx, &model.Category{
		ID:          categoryID,
		StoreID:     storeID,
		BillboardID: in.BillboardID,
		Name:        in.Name,
	})
	if err != nil {
		return Effect{}, storageError("failed to update category", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityCategory, events.ActionUpdated, storeID, categoryID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes a category no product uses
func (s *CategoryService) Delete(ctx context.Context, callerID, storeID, categoryID string) (effect Effect, err error) {
	defer func() { s.record(events.EntityCategory, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"category_id", categoryID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(categoryID) {
		return Effect{}, nil
	}

	used, err := s.repo.CountProducts(ctx, storeID, repository.RefCategory, categoryID)
	if err != nil {
		return Effect{}, storageError("failed to check category usage", err)
	}
	if used > 0 {
		return Effect{}, apperror.Conflict("make sure you removed all products using this category first")
	}

	n, err := s.repo.DeleteCategory(ctx, storeID, categoryID)
	if err != nil {
		return Effect{}, storageError("failed to delete category", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityCategory, events.ActionDeleted, storeID, categoryID, callerID)
	}
	return Effect{Count: n}, nil
}
