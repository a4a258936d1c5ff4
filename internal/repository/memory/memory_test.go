package memory

import (
	"context"
	"testing"
	"time"

	"store-admin-service/internal/model"
	"store-admin-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestListProductsOrdersNewestFirstAndSkipsArchived(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(tickingClock()))

	for _, p := range []model.Product{
		{ID: "p1", StoreID: "s1", Name: "first"},
		{ID: "p2", StoreID: "s1", Name: "archived", IsArchived: true},
		{ID: "p3", StoreID: "s1", Name: "third"},
		{ID: "p4", StoreID: "s2", Name: "other store"},
	} {
		p := p
		require.NoError(t, s.CreateProduct(ctx, &p))
	}

	products, err := s.ListProducts(ctx, "s1", repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p3", products[0].ID)
	assert.Equal(t, "p1", products[1].ID)
}

func TestUpdateProductReplacesImages(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := model.Product{ID: "p1", StoreID: "s1", Images: []model.ProductImage{
		{ID: "i1", URL: "a", Position: 0},
		{ID: "i2", URL: "b", Position: 1},
	}}
	require.NoError(t, s.CreateProduct(ctx, &p))

	n, err := s.UpdateProduct(ctx, &model.Product{ID: "p1", StoreID: "s1", Images: []model.ProductImage{
		{ID: "i3", URL: "c"},
	}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	images := s.ProductImages("p1")
	require.Len(t, images, 1)
	assert.Equal(t, "c", images[0].URL)
}

func TestUpdateProductInOtherStoreKeepsImages(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := model.Product{ID: "p1", StoreID: "s1", Images: []model.ProductImage{{ID: "i1", URL: "a"}}}
	require.NoError(t, s.CreateProduct(ctx, &p))

	n, err := s.UpdateProduct(ctx, &model.Product{ID: "p1", StoreID: "s2"})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, s.ProductImages("p1"), 1)
}

func TestDeleteBillboardReferencedByCategory(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateBillboard(ctx, &model.Billboard{ID: "b1", StoreID: "s1"}))
	require.NoError(t, s.CreateCategory(ctx, &model.Category{ID: "c1", StoreID: "s1", BillboardID: "b1"}))

	_, err := s.DeleteBillboard(ctx, "s1", "b1")
	assert.ErrorIs(t, err, repository.ErrReferenced)
}

func TestFindOwnedStoreChecksOwner(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateStore(ctx, &model.Store{ID: "s1", OwnerID: "alice", Name: "shop"}))

	store, err := s.FindOwnedStore(ctx, "s1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "shop", store.Name)

	_, err = s.FindOwnedStore(ctx, "s1", "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
