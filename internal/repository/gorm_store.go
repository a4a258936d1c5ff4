package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store-admin-service/internal/model"
	"store-admin-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on PostgreSQL through GORM.
// The *gorm.DB must be opened with TranslateError so foreign key
// violations surface as ErrReferenced.
type GormStore struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// NewGormStore creates a GORM backed store; metrics may be nil
func NewGormStore(db *gorm.DB, metrics *prometheus.Metrics) *GormStore {
	return &GormStore{db: db, metrics: metrics}
}

var _ Store = (*GormStore)(nil)

func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w", op, ErrReferenced)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// scoped constrains a query to a single record of a store
func scoped(db *gorm.DB, storeID, id string) *gorm.DB {
	return db.Where("id = ? AND store_id = ?", id, storeID)
}

func getScoped[T any](ctx context.Context, s *GormStore, op, storeID, id string) (*T, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	var record T
	if err := scoped(s.db.WithContext(ctx), storeID, id).First(&record).Error; err != nil {
		return nil, translate(op, err)
	}
	return &record, nil
}

func listByStore[T any](ctx context.Context, s *GormStore, op, storeID string) ([]T, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	records := []T{}
	err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, translate(op, err)
	}
	return records, nil
}

func updateScoped[T any](ctx context.Context, s *GormStore, op, storeID, id string, values map[string]any) (int64, error) {
	defer s.metrics.TrackDBOperation("update")(time.Now())

	var record T
	result := scoped(s.db.WithContext(ctx).Model(&record), storeID, id).Updates(values)
	if result.Error != nil {
		return 0, translate(op, result.Error)
	}
	return result.RowsAffected, nil
}

func deleteScoped[T any](ctx context.Context, s *GormStore, op, storeID, id string) (int64, error) {
	defer s.metrics.TrackDBOperation("delete")(time.Now())

	var record T
	result := scoped(s.db.WithContext(ctx), storeID, id).Delete(&record)
	if result.Error != nil {
		return 0, translate(op, result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) create(ctx context.Context, op string, value any) error {
	defer s.metrics.TrackDBOperation("insert")(time.Now())
	return translate(op, s.db.WithContext(ctx).Create(value).Error)
}

func (s *GormStore) count(ctx context.Context, op string, value any, query string, args ...any) (int64, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	var n int64
	if err := s.db.WithContext(ctx).Model(value).Where(query, args...).Count(&n).Error; err != nil {
		return 0, translate(op, err)
	}
	return n, nil
}

// Stores

func (s *GormStore) FindOwnedStore(ctx context.Context, storeID, ownerID string) (*model.Store, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	var store model.Store
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", storeID, ownerID).
		First(&store).Error
	if err != nil {
		return nil, translate("find owned store", err)
	}
	return &store, nil
}

func (s *GormStore) ListStoresByOwner(ctx context.Context, ownerID string) ([]model.Store, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	stores := []model.Store{}
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&stores).Error
	if err != nil {
		return nil, translate("list stores", err)
	}
	return stores, nil
}

func (s *GormStore) CreateStore(ctx context.Context, store *model.Store) error {
	return s.create(ctx, "create store", store)
}

func (s *GormStore) UpdateStore(ctx context.Context, storeID, ownerID, name string) (int64, error) {
	defer s.metrics.TrackDBOperation("update")(time.Now())

	result := s.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ? AND owner_id = ?", storeID, ownerID).
		Updates(map[string]any{"name": name})
	if result.Error != nil {
		return 0, translate("update store", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) DeleteStore(ctx context.Context, storeID, ownerID string) (int64, error) {
	defer s.metrics.TrackDBOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", storeID, ownerID).
		Delete(&model.Store{})
	if result.Error != nil {
		return 0, translate("delete store", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) CountStoreDependents(ctx context.Context, storeID string) (int64, error) {
	var total int64
	for _, dependent := range []any{
		&model.Billboard{},
		&model.Category{},
		&model.Size{},
		&model.Color{},
		&model.Product{},
	} {
		n, err := s.count(ctx, "count store dependents", dependent, "store_id = ?", storeID)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Billboards

func (s *GormStore) CreateBillboard(ctx context.Context, billboard *model.Billboard) error {
	return s.create(ctx, "create billboard", billboard)
}

func (s *GormStore) UpdateBillboard(ctx context.Context, billboard *model.Billboard) (int64, error) {
	return updateScoped[model.Billboard](ctx, s, "update billboard", billboard.StoreID, billboard.ID, map[string]any{
		"label":     billboard.Label,
		"image_url": billboard.ImageURL,
	})
}

func (s *GormStore) DeleteBillboard(ctx context.Context, storeID, id string) (int64, error) {
	return deleteScoped[model.Billboard](ctx, s, "delete billboard", storeID, id)
}

func (s *GormStore) GetBillboard(ctx context.Context, storeID, id string) (*model.Billboard, error) {
	return getScoped[model.Billboard](ctx, s, "get billboard", storeID, id)
}

func (s *GormStore) ListBillboards(ctx context.Context, storeID string) ([]model.Billboard, error) {
	return listByStore[model.Billboard](ctx, s, "list billboards", storeID)
}

func (s *GormStore) CountCategoriesByBillboard(ctx context.Context, storeID, billboardID string) (int64, error) {
	return s.count(ctx, "count categories", &model.Category{}, "store_id = ? AND billboard_id = ?", storeID, billboardID)
}

// Categories

func (s *GormStore) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.create(ctx, "create category", category)
}

func (s *GormStore) UpdateCategory(ctx context.Context, category *model.Category) (int64, error) {
	return updateScoped[model.Category](ctx, s, "update category", category.StoreID, category.ID, map[string]any{
		"name":         category.Name,
		"billboard_id": category.BillboardID,
	})
}

func (s *GormStore) DeleteCategory(ctx context.Context, storeID, id string) (int64, error) {
	return deleteScoped[model.Category](ctx, s, "delete category", storeID, id)
}

func (s *GormStore) GetCategory(ctx context.Context, storeID, id string) (*model.Category, error) {
	return getScoped[model.Category](ctx, s, "get category", storeID, id)
}

func (s *GormStore) ListCategories(ctx context.Context, storeID string) ([]model.Category, error) {
	return listByStore[model.Category](ctx, s, "list categories", storeID)
}

// Sizes

func (s *GormStore) CreateSize(ctx context.Context, size *model.Size) error {
	return s.create(ctx, "create size", size)
}

func (s *GormStore) UpdateSize(ctx context.Context, size *model.Size) (int64, error) {
	return updateScoped[model.Size](ctx, s, "update size", size.StoreID, size.ID, map[string]any{
		"name":  size.Name,
		"value": size.Value,
	})
}

func (s *GormStore) DeleteSize(ctx context.Context, storeID, id string) (int64, error) {
	return deleteScoped[model.Size](ctx, s, "delete size", storeID, id)
}

func (s *GormStore) GetSize(ctx context.Context, storeID, id string) (*model.Size, error) {
	return getScoped[model.Size](ctx, s, "get size", storeID, id)
}

func (s *GormStore) ListSizes(ctx context.Context, storeID string) ([]model.Size, error) {
	return listByStore[model.Size](ctx, s, "list sizes", storeID)
}

// Colors

func (s *GormStore) CreateColor(ctx context.Context, color *model.Color) error {
	return s.create(ctx, "create color", color)
}

func (s *GormStore) UpdateColor(ctx context.Context, color *model.Color) (int64, error) {
	return updateScoped[model.Color](ctx, s, "update color", color.StoreID, color.ID, map[string]any{
		"name":  color.Name,
		"value": color.Value,
	})
}

func (s *GormStore) DeleteColor(ctx context.Context, storeID, id string) (int64, error) {
	return deleteScoped[model.Color](ctx, s, "delete color", storeID, id)
}

func (s *GormStore) GetColor(ctx context.Context, storeID, id string) (*model.Color, error) {
	return getScoped[model.Color](ctx, s, "get color", storeID, id)
}

func (s *GormStore) ListColors(ctx context.Context, storeID string) ([]model.Color, error) {
	return listByStore[model.Color](ctx, s, "list colors", storeID)
}

// Products

func (s *GormStore) CreateProduct(ctx context.Context, product *model.Product) error {
	defer s.metrics.TrackDBOperation("insert")(time.Now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		if len(product.Images) == 0 {
			return nil
		}
		return tx.Create(&product.Images).Error
	})
	return translate("create product", err)
}

func (s *GormStore) UpdateProduct(ctx context.Context, product *model.Product) (int64, error) {
	defer s.metrics.TrackDBOperation("update")(time.Now())

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx.Model(&model.Product{}), product.StoreID, product.ID).
			Updates(map[string]any{
				"name":        product.Name,
				"price":       product.Price,
				"category_id": product.CategoryID,
				"size_id":     product.SizeID,
				"color_id":    product.ColorID,
				"is_featured": product.IsFeatured,
				"is_archived": product.IsArchived,
			})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if len(product.Images) == 0 {
			return nil
		}
		return tx.Create(&product.Images).Error
	})
	if err != nil {
		return 0, translate("update product", err)
	}
	return affected, nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, storeID, id string) (int64, error) {
	defer s.metrics.TrackDBOperation("delete")(time.Now())

	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := scoped(tx.Model(&model.Product{}).Select("id"), storeID, id)
		if err := tx.Where("product_id IN (?)", owned).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}

		result := scoped(tx, storeID, id).Delete(&model.Product{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translate("delete product", err)
	}
	return affected, nil
}

// expanded preloads everything a catalog read returns with a product
func expanded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Size").
		Preload("Color").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (s *GormStore) GetProduct(ctx context.Context, storeID, id string) (*model.Product, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	var product model.Product
	if err := expanded(scoped(s.db.WithContext(ctx), storeID, id)).First(&product).Error; err != nil {
		return nil, translate("get product", err)
	}
	return &product, nil
}

func (s *GormStore) ListProducts(ctx context.Context, storeID string, filter ProductFilter) ([]model.Product, error) {
	defer s.metrics.TrackDBOperation("query")(time.Now())

	query := s.db.WithContext(ctx).Where("store_id = ? AND is_archived = ?", storeID, false)
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SizeID != "" {
		query = query.Where("size_id = ?", filter.SizeID)
	}
	if filter.ColorID != "" {
		query = query.Where("color_id = ?", filter.ColorID)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}

	products := []model.Product{}
	err := expanded(query).
		Order("created_at DESC").
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, translate("list products", err)
	}
	return products, nil
}

func (s *GormStore) CountProducts(ctx context.Context, storeID string, ref ProductRef, id string) (int64, error) {
	return s.count(ctx, "count products", &model.Product{}, "store_id = ? AND "+ref.Column()+" = ?", storeID, id)
}
