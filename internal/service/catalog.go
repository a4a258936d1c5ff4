package service

import (
	"context"
	"errors"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
	"store-admin-service/pkg/logger"

	"go.uber.org/zap"
)

// ProductQuery filters a product listing. Empty ids and a false
// OnlyFeatured apply no restriction.
type ProductQuery struct {
	CategoryID   string
	SizeID       string
	ColorID      string
	OnlyFeatured bool
}

// CatalogService serves the public read side. It never consults the guard,
// except for the caller's own store list.
type CatalogService struct {
	base
}

func readError(entity string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(entity)
	}
	return apperror.Internal("failed to read "+entity, err)
}

// ListProducts returns the store's non-archived products, newest first,
// with category, size, color and images attached
func (s *CatalogService) ListProducts(ctx context.Context, storeID string, q ProductQuery) ([]model.Product, error) {
	if storeID == "" {
		return nil, apperror.Required("store_id")
	}
	if !model.ValidID(storeID) {
		return []model.Product{}, nil
	}
	for _, id := range []string{q.CategoryID, q.SizeID, q.ColorID} {
		if id != "" && !model.ValidID(id) {
			// no product can reference a malformed id
			return []model.Product{}, nil
		}
	}

	products, err := s.repo.ListProducts(ctx, storeID, repository.ProductFilter{
		CategoryID:   q.CategoryID,
		SizeID:       q.SizeID,
		ColorID:      q.ColorID,
		OnlyFeatured: q.OnlyFeatured,
	})
	if err != nil {
		return nil, readError("products", err)
	}

	logger.FromContext(ctx).Debug("Products listed",
		zap.String("store_id", storeID),
		zap.Int("count", len(products)))
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, storeID, productID string) (*model.Product, error) {
	if storeID == "" {
		return nil, apperror.Required("store_id")
	}
	if !model.ValidID(storeID) || !model.ValidID(productID) {
		return nil, apperror.NotFound("product")
	}
	product, err := s.repo.GetProduct(ctx, storeID, productID)
	if err != nil {
		return nil, readError("product", err)
	}
	return product, nil
}

// getScoped runs a single-entity read after the id checks shared by all of them
func getScoped[T any](ctx context.Context, entity, storeID, id string, get func(context.Context, string, string) (*T, error)) (*T, error) {
	if storeID == "" {
		return nil, apperror.Required("store_id")
	}
	if !model.ValidID(storeID) || !model.ValidID(id) {
		return nil, apperror.NotFound(entity)
	}
	v, err := get(ctx, storeID, id)
	if err != nil {
		return nil, readError(entity, err)
	}
	return v, nil
}

// listScoped runs a store listing after the store id checks
func listScoped[T any](ctx context.Context, entity, storeID string, list func(context.Context, string) ([]T, error)) ([]T, error) {
	if storeID == "" {
		return nil, apperror.Required("store_id")
	}
	if !model.ValidID(storeID) {
		return []T{}, nil
	}
	vs, err := list(ctx, storeID)
	if err != nil {
		return nil, readError(entity, err)
	}
	return vs, nil
}

func (s *CatalogService) GetBillboard(ctx context.Context, storeID, billboardID string) (*model.Billboard, error) {
	return getScoped(ctx, "billboard", storeID, billboardID, s.repo.GetBillboard)
}

func (s *CatalogService) GetCategory(ctx context.Context, storeID, categoryID string) (*model.Category, error) {
	return getScoped(ctx, "category", storeID, categoryID, s.repo.GetCategory)
}

func (s *CatalogService) GetSize(ctx context.Context, storeID, sizeID string) (*model.Size, error) {
	return getScoped(ctx, "size", storeID, sizeID, s.repo.GetSize)
}

func (s *CatalogService) GetColor(ctx context.Context, storeID, colorID string) (*model.Color, error) {
	return getScoped(ctx, "color", storeID, colorID, s.repo.GetColor)
}

func (s *CatalogService) ListBillboards(ctx context.Context, storeID string) ([]model.Billboard, error) {
	return listScoped(ctx, "billboards", storeID, s.repo.ListBillboards)
}

func (s *CatalogService) ListCategories(ctx context.Context, storeID string) ([]model.Category, error) {
	return listScoped(ctx, "categories", storeID, s.repo.ListCategories)
}

func (s *CatalogService) ListSizes(ctx context.Context, storeID string) ([]model.Size, error) {
	return listScoped(ctx, "sizes", storeID, s.repo.ListSizes)
}

func (s *CatalogService) ListColors(ctx context.Context, storeID string) ([]model.Color, error) {
	return listScoped(ctx, "colors", storeID, s.repo.ListColors)
}

// ListStores returns the stores owned by the caller
func (s *CatalogService) ListStores(ctx context.Context, callerID string) ([]model.Store, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	stores, err := s.repo.ListStoresByOwner(ctx, callerID)
	if err != nil {
		return nil, readError("stores", err)
	}
	return stores, nil
}

// GetStore returns a store of the caller
func (s *CatalogService) GetStore(ctx context.Context, callerID, storeID string) (*model.Store, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	return s.authorize(ctx, callerID, storeID)
}
