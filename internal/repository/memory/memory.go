// Package memory is an in-memory repository.Store. It keeps the same
// filtering and ordering semantics as the PostgreSQL store and is used to
// exercise services and handlers without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"
)

// Store is safe for concurrent use
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	stores     map[string]model.Store
	billboards map[string]model.Billboard
	categories map[string]model.Category
	sizes      map[string]model.Size
	colors     map[string]model.Color
	products   map[string]model.Product
	images     map[string]model.ProductImage
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the clock used to stamp created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now:        time.Now,
		stores:     map[string]model.Store{},
		billboards: map[string]model.Billboard{},
		categories: map[string]model.Category{},
		sizes:      map[string]model.Size{},
		colors:     map[string]model.Color{},
		products:   map[string]model.Product{},
		images:     map[string]model.ProductImage{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Store = (*Store)(nil)

func (s *Store) stamp(createdAt, updatedAt *time.Time) {
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func newestFirst(createdAt func(i int) time.Time, id func(i int) string) func(i, j int) bool {
	return func(i, j int) bool {
		if !createdAt(i).Equal(createdAt(j)) {
			return createdAt(i).After(createdAt(j))
		}
		return id(i) > id(j)
	}
}

// Stores

func (s *Store) FindOwnedStore(_ context.Context, storeID, ownerID string) (*model.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	store, ok := s.stores[storeID]
	if !ok || store.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &store, nil
}

func (s *Store) ListStoresByOwner(_ context.Context, ownerID string) ([]model.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stores := []model.Store{}
	for _, store := range s.stores {
		if store.OwnerID == ownerID {
			stores = append(stores, store)
		}
	}
	sort.Slice(stores, func(i, j int) bool {
		return stores[i].CreatedAt.Before(stores[j].CreatedAt)
	})
	return stores, nil
}

func (s *Store) CreateStore(_ context.Context, store *model.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&store.CreatedAt, &store.UpdatedAt)
	s.stores[store.ID] = *store
	return nil
}

func (s *Store) UpdateStore(_ context.Context, storeID, ownerID, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[storeID]
	if !ok || store.OwnerID != ownerID {
		return 0, nil
	}
	store.Name = name
	s.stamp(&store.CreatedAt, &store.UpdatedAt)
	s.stores[storeID] = store
	return 1, nil
}

func (s *Store) DeleteStore(_ context.Context, storeID, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[storeID]
	if !ok || store.OwnerID != ownerID {
		return 0, nil
	}
	if s.storeDependents(storeID) > 0 {
		return 0, repository.ErrReferenced
	}
	delete(s.stores, storeID)
	return 1, nil
}

func (s *Store) CountStoreDependents(_ context.Context, storeID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.storeDependents(storeID), nil
}

func (s *Store) storeDependents(storeID string) int64 {
	var n int64
	for _, b := range s.billboards {
		if b.StoreID == storeID {
			n++
		}
	}
	for _, c := range s.categories {
		if c.StoreID == storeID {
			n++
		}
	}
	for _, sz := range s.sizes {
		if sz.StoreID == storeID {
			n++
		}
	}
	for _, c := range s.colors {
		if c.StoreID == storeID {
			n++
		}
	}
	for _, p := range s.products {
		if p.StoreID == storeID {
			n++
		}
	}
	return n
}

// Billboards

func (s *Store) CreateBillboard(_ context.Context, billboard *model.Billboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&billboard.CreatedAt, &billboard.UpdatedAt)
	s.billboards[billboard.ID] = *billboard
	return nil
}

func (s *Store) UpdateBillboard(_ context.Context, billboard *model.Billboard) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.billboards[billboard.ID]
	if !ok || current.StoreID != billboard.StoreID {
		return 0, nil
	}
	current.Label = billboard.Label
	current.ImageURL = billboard.ImageURL
	s.stamp(&current.CreatedAt, &current.UpdatedAt)
	s.billboards[current.ID] = current
	return 1, nil
}

func (s *Store) DeleteBillboard(_ context.Context, storeID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.billboards[id]
	if !ok || current.StoreID != storeID {
		return 0, nil
	}
	for _, c := range s.categories {
		if c.BillboardID == id {
			return 0, repository.ErrReferenced
		}
	}
	delete(s.billboards, id)
	return 1, nil
}

func (s *Store) GetBillboard(_ context.Context, storeID, id string) (*model.Billboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	billboard, ok := s.billboards[id]
	if !ok || billboard.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	return &billboard, nil
}

func (s *Store) ListBillboards(_ context.Context, storeID string) ([]model.Billboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	billboards := []model.Billboard{}
	for _, b := range s.billboards {
		if b.StoreID == storeID {
			billboards = append(billboards, b)
		}
	}
	sort.Slice(billboards, newestFirst(
		func(i int) time.Time { return billboards[i].CreatedAt },
		func(i int) string { return billboards[i].ID },
	))
	return billboards, nil
}

func (s *Store) CountCategoriesByBillboard(_ context.Context, storeID, billboardID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, c := range s.categories {
		if c.StoreID == storeID && c.BillboardID == billboardID {
			n++
		}
	}
	return n, nil
}

// Categories

func (s *Store) CreateCategory(_ context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.billboards[category.BillboardID]; !ok {
		return repository.ErrReferenced
	}
	s.stamp(&category.CreatedAt, &category.UpdatedAt)
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) UpdateCategory(_ context.Context, category *model.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.categories[category.ID]
	if !ok || current.StoreID != category.StoreID {
		return 0, nil
	}
	if _, ok := s.billboards[category.BillboardID]; !ok {
		return 0, repository.ErrReferenced
	}
	current.Name = category.Name
	current.BillboardID = category.BillboardID
	s.stamp(&current.CreatedAt, &current.UpdatedAt)
	s.categories[current.ID] = current
	return 1, nil
}

func (s *Store) DeleteCategory(_ context.Context, storeID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.categories[id]
	if !ok || current.StoreID != storeID {
		return 0, nil
	}
	if s.referencedByProduct(repository.RefCategory, id) {
		return 0, repository.ErrReferenced
	}
	delete(s.categories, id)
	return 1, nil
}

func (s *Store) GetCategory(_ context.Context, storeID, id string) (*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok || category.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	return &category, nil
}

func (s *Store) ListCategories(_ context.Context, storeID string) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := []model.Category{}
	for _, c := range s.categories {
		if c.StoreID == storeID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, newestFirst(
		func(i int) time.Time { return categories[i].CreatedAt },
		func(i int) string { return categories[i].ID },
	))
	return categories, nil
}

// Sizes

func (s *Store) CreateSize(_ context.Context, size *model.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&size.CreatedAt, &size.UpdatedAt)
	s.sizes[size.ID] = *size
	return nil
}

func (s *Store) UpdateSize(_ context.Context, size *model.Size) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sizes[size.ID]
	if !ok || current.StoreID != size.StoreID {
		return 0, nil
	}
	current.Name = size.Name
	current.Value = size.Value
	s.stamp(&current.CreatedAt, &current.UpdatedAt)
	s.sizes[current.ID] = current
	return 1, nil
}

func (s *Store) DeleteSize(_ context.Context, storeID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sizes[id]
	if !ok || current.StoreID != storeID {
		return 0, nil
	}
	if s.referencedByProduct(repository.RefSize, id) {
		return 0, repository.ErrReferenced
	}
	delete(s.sizes, id)
	return 1, nil
}

func (s *Store) GetSize(_ context.Context, storeID, id string) (*model.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size, ok := s.sizes[id]
	if !ok || size.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	return &size, nil
}

func (s *Store) ListSizes(_ context.Context, storeID string) ([]model.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sizes := []model.Size{}
	for _, sz := range s.sizes {
		if sz.StoreID == storeID {
			sizes = append(sizes, sz)
		}
	}
	sort.Slice(sizes, newestFirst(
		func(i int) time.Time { return sizes[i].CreatedAt },
		func(i int) string { return sizes[i].ID },
	))
	return sizes, nil
}

// Colors

func (s *Store) CreateColor(_ context.Context, color *model.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&color.CreatedAt, &color.UpdatedAt)
	s.colors[color.ID] = *color
	return nil
}

func (s *Store) UpdateColor(_ context.Context, color *model.Color) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.colors[color.ID]
	if !ok || current.StoreID != color.StoreID {
		return 0, nil
	}
	current.Name = color.Name
	current.Value = color.Value
	s.stamp(&current.CreatedAt, &current.UpdatedAt)
	s.colors[current.ID] = current
	return 1, nil
}

func (s *Store) DeleteColor(_ context.Context, storeID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.colors[id]
	if !ok || current.StoreID != storeID {
		return 0, nil
	}
	if s.referencedByProduct(repository.RefColor, id) {
		return 0, repository.ErrReferenced
	}
	delete(s.colors, id)
	return 1, nil
}

func (s *Store) GetColor(_ context.Context, storeID, id string) (*model.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	color, ok := s.colors[id]
	if !ok || color.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	return &color, nil
}

func (s *Store) ListColors(_ context.Context, storeID string) ([]model.Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	colors := []model.Color{}
	for _, c := range s.colors {
		if c.StoreID == storeID {
			colors = append(colors, c)
		}
	}
	sort.Slice(colors, newestFirst(
		func(i int) time.Time { return colors[i].CreatedAt },
		func(i int) string { return colors[i].ID },
	))
	return colors, nil
}

// Products

func refOf(p model.Product, ref repository.ProductRef) string {
	switch ref {
	case repository.RefSize:
		return p.SizeID
	case repository.RefColor:
		return p.ColorID
	default:
		return p.CategoryID
	}
}

func (s *Store) referencedByProduct(ref repository.ProductRef, id string) bool {
	for _, p := range s.products {
		if refOf(p, ref) == id {
			return true
		}
	}
	return false
}

func (s *Store) putImages(productID string, images []model.ProductImage) {
	for _, img := range images {
		img.ProductID = productID
		s.stamp(&img.CreatedAt, &img.UpdatedAt)
		s.images[img.ID] = img
	}
}

func (s *Store) dropImages(productID string) {
	for id, img := range s.images {
		if img.ProductID == productID {
			delete(s.images, id)
		}
	}
}

func (s *Store) CreateProduct(_ context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&product.CreatedAt, &product.UpdatedAt)
	stored := *product
	stored.Category, stored.Size, stored.Color, stored.Images = nil, nil, nil, nil
	s.products[product.ID] = stored
	s.putImages(product.ID, product.Images)
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, product *model.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[product.ID]
	if !ok || current.StoreID != product.StoreID {
		return 0, nil
	}
	current.Name = product.Name
	current.Price = product.Price
	current.CategoryID = product.CategoryID
	current.SizeID = product.SizeID
	current.ColorID = product.ColorID
	current.IsFeatured = product.IsFeatured
	current.IsArchived = product.IsArchived
	s.stamp(&current.CreatedAt, &current.UpdatedAt)
	s.products[current.ID] = current

	s.dropImages(current.ID)
	s.putImages(current.ID, product.Images)
	return 1, nil
}

func (s *Store) DeleteProduct(_ context.Context, storeID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok || current.StoreID != storeID {
		return 0, nil
	}
	s.dropImages(id)
	delete(s.products, id)
	return 1, nil
}

// expand attaches the related entities a catalog read returns
func (s *Store) expand(p model.Product) model.Product {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	if sz, ok := s.sizes[p.SizeID]; ok {
		p.Size = &sz
	}
	if c, ok := s.colors[p.ColorID]; ok {
		p.Color = &c
	}
	p.Images = []model.ProductImage{}
	for _, img := range s.images {
		if img.ProductID == p.ID {
			p.Images = append(p.Images, img)
		}
	}
	sort.Slice(p.Images, func(i, j int) bool {
		return p.Images[i].Position < p.Images[j].Position
	})
	return p
}

func (s *Store) GetProduct(_ context.Context, storeID, id string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok || product.StoreID != storeID {
		return nil, repository.ErrNotFound
	}
	product = s.expand(product)
	return &product, nil
}

func (s *Store) ListProducts(_ context.Context, storeID string, filter repository.ProductFilter) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []model.Product{}
	for _, p := range s.products {
		switch {
		case p.StoreID != storeID, p.IsArchived:
			continue
		case filter.CategoryID != "" && p.CategoryID != filter.CategoryID:
			continue
		case filter.SizeID != "" && p.SizeID != filter.SizeID:
			continue
		case filter.ColorID != "" && p.ColorID != filter.ColorID:
			continue
		case filter.OnlyFeatured && !p.IsFeatured:
			continue
		}
		products = append(products, s.expand(p))
	}
	sort.Slice(products, newestFirst(
		func(i int) time.Time { return products[i].CreatedAt },
		func(i int) string { return products[i].ID },
	))
	return products, nil
}

func (s *Store) CountProducts(_ context.Context, storeID string, ref repository.ProductRef, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.products {
		if p.StoreID == storeID && refOf(p, ref) == id {
			n++
		}
	}
	return n, nil
}

// ProductImages returns the stored images of a product in position order.
// Tests use it to look for orphans without going through a catalog read.
func (s *Store) ProductImages(productID string) []model.ProductImage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	images := []model.ProductImage{}
	for _, img := range s.images {
		if img.ProductID == productID {
			images = append(images, img)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].Position < images[j].Position
	})
	return images
}

// ImageCount returns the number of stored product images across all products
func (s *Store) ImageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.images)
}
