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

// ImageInput is one entry of a product's image list
type ImageInput struct {
	URL string `json:"url"`
}

// ProductInput is the payload of product create and update. Images replace
// the product's whole image set on update.
type ProductInput struct {
	Name       string       `json:"name"`
	Price      float64      `json:"price"`
	CategoryID string       `json:"category_id"`
	SizeID     string       `json:"size_id"`
	ColorID    string       `json:"color_id"`
	Images     []ImageInput `json:"images"`
	IsFeatured bool         `json:"is_featured"`
	IsArchived bool         `json:"is_archived"`
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return apperror.Required("name")
	}
	if len(in.Images) == 0 {
		return apperror.Required("images")
	}
	for _, img := range in.Images {
		if img.URL == "" {
			return apperror.Validation("images", "every image needs a url")
		}
	}
	if in.Price == 0 {
		return apperror.Required("price")
	}
	if in.Price < 0 {
		return apperror.Validation("price", "price must be greater than 0")
	}
	return requireFields(
		field{"category_id", in.CategoryID},
		field{"color_id", in.ColorID},
		field{"size_id", in.SizeID},
	)
}

type ProductService struct {
	base
}

// resolveRefs checks that category, size and color belong to the store
func (s *ProductService) resolveRefs(ctx context.Context, storeID string, in ProductInput) error {
	checks := []struct {
		field string
		id    string
		get   func(ctx context.Context, storeID, id string) error
	}{
		{"category_id", in.CategoryID, func(ctx context.Context, storeID, id string) error {
			_, err := s.repo.GetCategory(ctx, storeID, id)
			return err
		}},
		{"size_id", in.SizeID, func(ctx context.Context, storeID, id string) error {
			_, err := s.repo.GetSize(ctx, storeID, id)
			return err
		}},
		{"color_id", in.ColorID, func(ctx context.Context, storeID, id string) error {
			_, err := s.repo.GetColor(ctx, storeID, id)
			return err
		}},
	}

	for _, c := range checks {
		notFound := apperror.Validation(c.field, c.field+" does not match an entity of this store")
		if !model.ValidID(c.id) {
			return notFound
		}
		err := c.get(ctx, storeID, c.id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound
		case err != nil:
			return storageError("failed to resolve "+c.field, err)
		}
	}
	return nil
}

// build maps the input onto a product and its positioned images
func (in ProductInput) build(productID, storeID string) *model.Product {
	product := &model.Product{
		ID:         productID,
		StoreID:    storeID,
		CategoryID: in.CategoryID,
		SizeID:     in.SizeID,
		ColorID:    in.ColorID,
		Name:       in.Name,
		Price:      in.Price,
		IsFeatured: in.IsFeatured,
		IsArchived: in.IsArchived,
		Images:     make([]model.ProductImage, 0, len(in.Images)),
	}
	for i, img := range in.Images {
		product.Images = append(product.Images, model.ProductImage{
			ID:        model.NewID(),
			ProductID: productID,
			URL:       img.URL,
			Position:  i,
		})
	}
	return product
}

// Create stores the product together with its images
func (s *ProductService) Create(ctx context.Context, callerID, storeID string, in ProductInput) (product *model.Product, err error) {
	defer func() { s.record(events.EntityProduct, "create", err) }()

	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, storeID, in); err != nil {
		return nil, err
	}

	product = in.build(model.NewID(), storeID)
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, storageError("failed to create product", err)
	}

	logger.FromContext(ctx).Info("Product created",
		zap.String("store_id", storeID),
		zap.String("product_id", product.ID),
		zap.Int("images", len(product.Images)))
	s.publish(ctx, events.EntityProduct, events.ActionCreated, storeID, product.ID, callerID)
	return product, nil
}

// Update replaces the product's fields and its whole image set atomically
func (s *ProductService) Update(ctx context.Context, callerID, storeID, productID string, in ProductInput) (effect Effect, err error) {
	defer func() { s.record(events.EntityProduct, "update", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := in.validate(); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"product_id", productID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(productID) {
		return Effect{}, nil
	}
	if err := s.resolveRefs(ctx, storeID, in); err != nil {
		return Effect{}, err
	}

	n, err := s.repo.UpdateProduct(ctx, in.build(productID, storeID))
	if err != nil {
		return Effect{}, storageError("failed to update product", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityProduct, events.ActionUpdated, storeID, productID, callerID)
	}
	return Effect{Count: n}, nil
}

// Delete removes the product and all of its images
func (s *ProductService) Delete(ctx context.Context, callerID, storeID, productID string) (effect Effect, err error) {
	defer func() { s.record(events.EntityProduct, "delete", err) }()

	if err := requireCaller(callerID); err != nil {
		return Effect{}, err
	}
	if err := requireFields(field{"product_id", productID}); err != nil {
		return Effect{}, err
	}
	if _, err := s.authorize(ctx, callerID, storeID); err != nil {
		return Effect{}, err
	}
	if !model.ValidID(productID) {
		return Effect{}, nil
	}

	n, err := s.repo.DeleteProduct(ctx, storeID, productID)
	if err != nil {
		return Effect{}, storageError("failed to delete product", err)
	}
	if n > 0 {
		s.publish(ctx, events.EntityProduct, events.ActionDeleted, storeID, productID, callerID)
	}
	return Effect{Count: n}, nil
}
