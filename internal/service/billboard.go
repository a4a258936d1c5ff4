package service

import (
	"context"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/events"
	"store-admin-service/internal/model"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// BillboardInput is the payload of billboard create and update
type BillboardInput struct {
	Label    string `json:"label"`
	ImageURL string `json:"image_url"`
}

func (in BillboardInput) validate() error {
	return requireFields(field{"label", in.Label}, field{"image_url", in.ImageURL})
}

type BillboardService struct {
	base
}

func (s *BillboardService) Create(ctx context.Context, callerID, storeID string, in BillboardInput) (billboard *model.Billboard, err error) {
	defer func() { s.record(events.EntityBillboard, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return nil, err
	}

	billboard = &model.Billboard{
		ID:       model.NewID(),
		StoreID:  storeID,
		Label:    in.Label,
		ImageURL: in.ImageURL,
	}
	if err := s.repo.CreateBillboard(ctx, billboard); err != nil {
		return nil, storageError("failed to create billboard", err)
	}

	logger.FromContext(ctx).Info("Billboard created",
		zap.String("store_id", storeID),
		zap.String("billboard_id", billboard.ID))
	s.publish(ctx, events.EntityBillboard, events.ActionCreated, storeID, billboard.ID, callerID)
	return billboard, nil
}

func (s *BillboardService) Update(ctx context.Context, callerID, storeID, billboardID string, in BillboardInput) (effect Effect, err error) {
	defer func() { s.record(events.EntityBillboard, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := in.validate(); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"billboard_id", billboardID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(billboardID) {
		return Effect{}, nil
	}

	n, err := s.repo.UpdateBillboard(ctx, &model.Billboard{
		ID:       billboardID,
		StoreID:  storeID,
		Label:    in.Label,
		ImageURL: in.ImageURL,
	})
	if err != nil {
		return Effect{}, storageError("failed to update billboard", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityBillboard, events.ActionUpdated, storeID, billboardID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes a billboard no category uses
func (s *BillboardService) Delete(ctx context.Context, callerID, storeID, billboardID string) (effect Effect, err error) {
	defer func() { s.record(events.EntityBillboard, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"billboard_id", billboardID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(billboardID) {
		return Effect{}, nil
	}

	used, err := s.repo.CountCategoriesByBillboard(ctx, storeID, billboardID)
	if err != nil {
		return Effect{}, storageError("failed to check billboard usage", err)
	}
	if used > 0 {
		return Effect{}, apperror.Conflict("make sure you removed all categories using this billboard first")
	}

	n, err := s.repo.DeleteBillboard(ctx, storeID, billboardID)
	if err != nil {
		return Effect{}, storageError("failed to delete billboard", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityBillboard, events.ActionDeleted, storeID, billboardID, callerID)
	}
	return Effect{Count: n}, nil
}
