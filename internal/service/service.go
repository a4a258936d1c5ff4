// Package service holds the resource mutators and the catalog query service.
//
// Every mutator follows the same order: caller identity, required fields,
// path ids, ownership guard, business checks, write. Writes that affect a
// record are followed by a change event.
package service

import (
	"context"
	"errors"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/events"
	"store-admin-service/internal/guard"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
	"store-admin-service/pkg/logger"
	"store-admin-service/prometheus"

	"go.uber.org/zap"
)

// Effect reports how many records an update or delete touched
type Effect struct {
	Count int64 `json:"count"`
}

// Services bundles every mutator and the catalog query service
type Services struct {
	Stores     *StoreService
	Billboards *BillboardService
	Categories *CategoryService
	Sizes      *SizeService
	Colors     *ColorService
	Products   *ProductService
	Catalog    *CatalogService
}

// New wires the services on top of repo. A nil publisher disables events and
// nil metrics record nothing.
func New(repo repository.Store, publisher events.Publisher, metrics *prometheus.Metrics) *Services {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	b := base{
		repo:    repo,
		guard:   guard.New(repo),
		events:  publisher,
		metrics: metrics,
	}
	return &Services{
		Stores:     &StoreService{base: b},
		Billboards: &BillboardService{base: b},
		Categories: &CategoryService{base: b},
		Sizes:      &SizeService{base: b},
		Colors:     &ColorService{base: b},
		Products:   &ProductService{base: b},
		Catalog:    &CatalogService{base: b},
	}
}

type base struct {
	repo    repository.Store
	guard   *guard.Guard
	events  events.Publisher
	metrics *prometheus.Metrics
}

// record counts a finished mutation by its outcome
func (b base) record(entity, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = apperror.KindOf(err).String()
	}
	b.metrics.RecordCatalogOperation(entity, operation, outcome)
}

// publish emits a change event. Failures are logged only; the write has
// already been committed.
func (b base) publish(ctx context.Context, entity string, action events.Action, storeID, entityID, actorID string) {
	err := b.events.Publish(ctx, events.New(entity, action, storeID, entityID, actorID))
	b.metrics.RecordEventPublished(entity, err)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to publish change event",
			zap.String("entity", entity),
			zap.String("action", string(action)),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// authorize runs the path id presence check followed by the ownership guard
func (b base) authorize(ctx context.Context, callerID, storeID string) (*model.Store, error) {
	if storeID == "" {
		return nil, apperror.Required("store_id")
	}
	return b.guard.Authorize(ctx, callerID, storeID)
}

// storageError converts a repository failure into an application error
func storageError(message string, err error) error {
	if errors.Is(err, repository.ErrReferenced) {
		return apperror.Conflict(message + ": record is still referenced")
	}
	return apperror.Internal(message, err)
}

// requireCaller is step (a) of every mutator
func requireCaller(callerID string) error {
	if callerID == "" {
		return apperror.Unauthenticated()
	}
	return nil
}

// field pairs a request field name with its value for presence checks
type field struct {
	name  string
	value string
}

// requireFields returns a validation error for the first empty field
func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return apperror.Required(f.name)
		}
	}
	return nil
}
