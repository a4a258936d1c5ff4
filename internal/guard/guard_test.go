package guard

import (
	"context"
	"errors"
	"testing"

	"store-admin-service/internal/apperror"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFinder struct{}

func (failingFinder) FindOwnedStore(context.Context, string, string) (*model.Store, error) {
	return nil, errors.New("connection refused")
}

func setup(t *testing.T) (*Guard, string) {
	t.Helper()
	repo := memory.New()
	store := &model.Store{ID: model.NewID(), OwnerID: "alice", Name: "Alice's"}
	require.NoError(t, repo.CreateStore(context.Background(), store))
	return New(repo), store.ID
}

func TestAuthorizeOwner(t *testing.T) {
	g, storeID := setup(t)

	store, err := g.Authorize(context.Background(), "alice", storeID)
	require.NoError(t, err)
	assert.Equal(t, storeID, store.ID)
}

func TestAuthorizeWithoutCaller(t *testing.T) {
	g, storeID := setup(t)

	_, err := g.Authorize(context.Background(), "", storeID)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}

func TestAuthorizeDeniesWithoutLeakingExistence(t *testing.T) {
	g, storeID := setup(t)
	ctx := context.Background()

	_, otherOwner := g.Authorize(ctx, "bob", storeID)
	_, missing := g.Authorize(ctx, "bob", model.NewID())
	_, malformed := g.Authorize(ctx, "bob", "not-a-store-id")
	_, empty := g.Authorize(ctx, "bob", "")

	for _, err := range []error{otherOwner, missing, malformed, empty} {
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	}
	assert.Equal(t, otherOwner.Error(), missing.Error())
}

func TestAuthorizeStorageFailure(t *testing.T) {
	g := New(failingFinder{})

	_, err := g.Authorize(context.Background(), "alice", model.NewID())
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
