// Package repository is the Entity Store: persistent records for stores and
// their catalog entities. Services depend on the Store interface so that the
// PostgreSQL implementation can be swapped for the in-memory one in tests.
package repository

import (
	"context"
	"errors"

	"store-admin-service/internal/model"
)

var (
	// ErrNotFound is returned by single-record reads that match nothing
	ErrNotFound = errors.New("record not found")
	// ErrReferenced is returned when a delete is rejected by a foreign key
	ErrReferenced = errors.New("record is still referenced")
)

// ProductRef selects which product reference column a dependents count uses
type ProductRef int

const (
	RefCategory ProductRef = iota
	RefSize
	RefColor
)

// Column returns the products column holding the reference
func (r ProductRef) Column() string {
	switch r {
	case RefSize:
		return "size_id"
	case RefColor:
		return "color_id"
	default:
		return "category_id"
	}
}

// ProductFilter restricts a product listing. Zero values apply no restriction.
// Archived products are never listed.
type ProductFilter struct {
	CategoryID   string
	SizeID       string
	ColorID      string
	OnlyFeatured bool
}

// StoreFinder is the read the ownership guard needs
type StoreFinder interface {
	// FindOwnedStore returns the store with storeID owned by ownerID or ErrNotFound
	FindOwnedStore(ctx context.Context, storeID, ownerID string) (*model.Store, error)
}

type StoreRepository interface {
	StoreFinder
	ListStoresByOwner(ctx context.Context, ownerID string) ([]model.Store, error)
	CreateStore(ctx context.Context, store *model.Store) error
	UpdateStore(ctx context.Context, storeID, ownerID, name string) (int64, error)
	DeleteStore(ctx context.Context, storeID, ownerID string) (int64, error)
	// CountStoreDependents counts every catalog entity still attached to the store
	CountStoreDependents(ctx context.Context, storeID string) (int64, error)
}

type BillboardRepository interface {
	CreateBillboard(ctx context.Context, billboard *model.Billboard) error
	UpdateBillboard(ctx context.Context, billboard *model.Billboard) (int64, error)
	DeleteBillboard(ctx context.Context, storeID, id string) (int64, error)
	GetBillboard(ctx context.Context, storeID, id string) (*model.Billboard, error)
	ListBillboards(ctx context.Context, storeID string) ([]model.Billboard, error)
	CountCategoriesByBillboard(ctx context.Context, storeID, billboardID string) (int64, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) (int64, error)
	DeleteCategory(ctx context.Context, storeID, id string) (int64, error)
	GetCategory(ctx context.Context, storeID, id string) (*model.Category, error)
	ListCategories(ctx context.Context, storeID string) ([]model.Category, error)
}

type SizeRepository interface {
	CreateSize(ctx context.Context, size *model.Size) error
	UpdateSize(ctx context.Context, size *model.Size) (int64, error)
	DeleteSize(ctx context.Context, storeID, id string) (int64, error)
	GetSize(ctx context.Context, storeID, id string) (*model.Size, error)
	ListSizes(ctx context.Context, storeID string) ([]model.Size, error)
}

type ColorRepository interface {
	CreateColor(ctx context.Context, color *model.Color) error
	UpdateColor(ctx context.Context, color *model.Color) (int64, error)
	DeleteColor(ctx context.Context, storeID, id string) (int64, error)
	GetColor(ctx context.Context, storeID, id string) (*model.Color, error)
	ListColors(ctx context.Context, storeID string) ([]model.Color, error)
}

type ProductRepository interface {
	// CreateProduct inserts the product and its images atomically
	CreateProduct(ctx context.Context, product *model.Product) error
	// UpdateProduct replaces the scalar fields and the full image set of the
	// product matching product.ID and product.StoreID in one transaction.
	// Images are left untouched when no product matches.
	UpdateProduct(ctx context.Context, product *model.Product) (int64, error)
	// DeleteProduct removes the product and its images atomically
	DeleteProduct(ctx context.Context, storeID, id string) (int64, error)
	// GetProduct returns the product with its category, size, color and images
	GetProduct(ctx context.Context, storeID, id string) (*model.Product, error)
	// ListProducts returns expanded, non-archived products, newest first
	ListProducts(ctx context.Context, storeID string, filter ProductFilter) ([]model.Product, error)
	CountProducts(ctx context.Context, storeID string, ref ProductRef, id string) (int64, error)
}

// Store is the complete Entity Store
type Store interface {
	StoreRepository
	BillboardRepository
	CategoryRepository
	SizeRepository
	ColorRepository
	ProductRepository
}
