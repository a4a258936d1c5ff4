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

// ColorInput is the payload of color create and update
type ColorInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (in ColorInput) validate() error {
	return requireFields(field{"name", in.Name}, field{"value", in.Value})
}

type ColorService struct {
	base
}

func (s *ColorService) Create(ctx context.Context, callerID, storeID string, in ColorInput) (color *model.Color, err error) {
	defer func() { s.record(events.EntityColor, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return nil, err
	}

	color = &model.Color{
		ID:      model.NewID(),
		StoreID: storeID,
		Name:    in.Name,
		Value:   in.Value,
	}
	if err := s.repo.CreateColor(ctx, color); err != nil {
		return nil, storageError("failed to create color", err)
	}

	logger.FromContext(ctx).Info("Color created",
		zap.String("store_id", storeID),
		zap.String("color_id", color.ID))
	s.publish(ctx, events.EntityColor, events.ActionCreated, storeID, color.ID, callerID)
	return color, nil
}

func (s *ColorService) Update(ctx context.Context, callerID, storeID, colorID string, in ColorInput) (effect Effect, err error) {
	defer func() { s.record(events.EntityColor, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := in.validate(); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"color_id", colorID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(colorID) {
		return Effect{}, nil
	}

	n, err := s.repo.UpdateColor(ctx, &model.Color{
		ID:      colorID,
		StoreID: storeID,
		Name:    in.Name,
		Value:   in.Value,
	})
	if err != nil {
		return Effect{}, storageError("failed to update color", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityColor, events.ActionUpdated, storeID, colorID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes a color no product uses
func (s *ColorService) Delete(ctx context.Context, callerID, storeID, colorID string) (effect Effect, err error) {
	defer func() { s.record(events.EntityColor, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"color_id", colorID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(colorID) {
		return Effect{}, nil
	}

	used, err := s.repo.CountProducts(ctx, storeID, repository.RefColor, colorID)
	if err != nil {
		return Effect{}, storageError("failed to check color usage", err)
	}
	if used > 0 {
		return Effect{}, apperror.Conflict("make sure you removed all products using this color first")
	}

	n, err := s.repo.DeleteColor(ctx, storeID, colorID)
	if err != nil {
		return Effect{}, storageError("failed to delete color", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityColor, events.ActionDeleted, storeID, colorID, callerID)
	}
	return Effect{Count: n}, nil
}
