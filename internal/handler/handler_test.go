package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mid "store-admin-service/internal/middleware"
	"store-admin-service/internal/model"
	"store-admin-service/internal/repository/memory"
	"store-admin-service/internal/service"
	"store-admin-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	tokens *jwtutil.JWTUtil
	repo   *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := memory.New()
	tokens := jwtutil.New("handler-test", 1)

	e := echo.New()
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.AuthMiddleware(tokens, nil))
	e.GET("/health", Health)
	New(service.New(repo, nil, nil)).Register(e.Group("/api"))

	return &testServer{t: t, e: e, tokens: tokens, repo: repo}
}

func (s *testServer) do(method, path, user string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var payload string
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		payload = string(b)
	}

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		token, err := s.tokens.GenerateToken(user)
		require.NoError(s.t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createStore(user string) model.Store {
	rec := s.do(http.MethodPost, "/api/stores", user, echo.Map{"name": "Main"})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Store](s.t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStoreLifecycle(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")
	assert.Equal(t, "alice", store.OwnerID)

	rec := s.do(http.MethodGet, "/api/stores", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Store](t, rec), 1)

	rec = s.do(http.MethodPatch, "/api/stores/"+store.ID, "alice", echo.Map{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[service.Effect](t, rec).Count)

	rec = s.do(http.MethodGet, "/api/stores/"+store.ID, "bob", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/stores/"+store.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[service.Effect](t, rec).Count)
}

func TestMutationWithoutTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.do(http.MethodPost, "/api/"+store.ID+"/billboards", "", echo.Map{"label": "l", "image_url": "u"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCrossTenantWriteIsForbidden(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.do(http.MethodPost, "/api/"+store.ID+"/sizes", "bob", echo.Map{"name": "Small", "value": "S"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "you don't have permission to modify this store", decode[ErrorResponse](t, rec).Error)
}

func TestValidationErrorNamesField(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.do(http.MethodPost, "/api/"+store.ID+"/colors", "alice", echo.Map{"name": "Red"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "value", body.Field)
	assert.Equal(t, "value is required", body.Error)
}

func (s *testServer) doRaw(method, path, user, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	token, err := s.tokens.GenerateToken(user)
	require.NoError(s.t, err)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestMalformedBodyWritesNothing(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	bodies := map[string]string{
		"truncated":  "{",
		"wrong type": `{"label":"L","image_url":"u","label":5}`,
	}
	for name, body := range bodies {
		rec := s.doRaw(http.MethodPost, "/api/"+store.ID+"/billboards", "alice", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)

		// exactly one JSON document in the response
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), name)
		assert.Equal(t, "Invalid request data", resp.Error, name)
	}

	rec := s.do(http.MethodGet, "/api/"+store.ID+"/billboards", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestMalformedStoreUpdateLeavesStore(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.doRaw(http.MethodPatch, "/api/stores/"+store.ID, "alice", `{"name":"Renamed","name":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/stores/"+store.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Main", decode[model.Store](t, rec).Name)
}

func TestInvalidFeaturedFilter(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.do(http.MethodGet, "/api/"+store.ID+"/products?is_featured=maybe", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is_featured", decode[ErrorResponse](t, rec).Field)
}

func TestStoreWritesByOtherUserAreForbidden(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	rec := s.do(http.MethodPatch, "/api/stores/"+store.ID, "bob", echo.Map{"name": "Mine"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/stores/"+store.ID, "bob", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCatalogFlow(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")
	base := "/api/" + store.ID

	rec := s.do(http.MethodPost, base+"/billboards", "alice", echo.Map{"label": "Summer", "image_url": "https://img/b.png"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	billboard := decode[model.Billboard](t, rec)

	rec = s.do(http.MethodPost, base+"/categories", "alice", echo.Map{"name": "Shirts", "billboard_id": billboard.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[model.Category](t, rec)

	rec = s.do(http.MethodPost, base+"/sizes", "alice", echo.Map{"name": "Medium", "value": "M"})
	require.Equal(t, http.StatusCreated, rec.Code)
	size := decode[model.Size](t, rec)

	rec = s.do(http.MethodPost, base+"/colors", "alice", echo.Map{"name": "Red", "value": "#FF0000"})
	require.Equal(t, http.StatusCreated, rec.Code)
	color := decode[model.Color](t, rec)

	product := echo.Map{
		"name":        "Tee",
		"price":       19.5,
		"category_id": category.ID,
		"size_id":     size.ID,
		"color_id":    color.ID,
		"is_featured": true,
		"images":      []echo.Map{{"url": "https://img/a.png"}, {"url": "https://img/b.png"}},
	}
	rec = s.do(http.MethodPost, base+"/products", "alice", product)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.Product](t, rec)

	// public reads need no token
	rec = s.do(http.MethodGet, base+"/products?is_featured=true&category_id="+category.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]model.Product](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	require.NotNil(t, listed[0].Category)
	assert.Equal(t, "Shirts", listed[0].Category.Name)
	assert.Len(t, listed[0].Images, 2)

	product["images"] = []echo.Map{{"url": "https://img/c.png"}}
	rec = s.do(http.MethodPatch, base+"/products/"+created.ID, "alice", product)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode[service.Effect](t, rec).Count)

	rec = s.do(http.MethodGet, base+"/products/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[model.Product](t, rec)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "https://img/c.png", got.Images[0].URL)

	rec = s.do(http.MethodDelete, base+"/billboards/"+billboard.ID, "alice", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, base+"/products/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, s.repo.ImageCount())

	rec = s.do(http.MethodDelete, base+"/products/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[service.Effect](t, rec).Count)

	rec = s.do(http.MethodGet, base+"/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEndpointsForUnknownStore(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"billboards", "categories", "sizes", "colors", "products"} {
		rec := s.do(http.MethodGet, "/api/"+model.NewID()+"/"+path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, "[]", rec.Body.String(), path)
	}
}

func TestGetUnknownEntityIsNotFound(t *testing.T) {
	s := newTestServer(t)
	store := s.createStore("alice")

	for _, path := range []string{"billboards", "categories", "sizes", "colors", "products"} {
		rec := s.do(http.MethodGet, "/api/"+store.ID+"/"+path+"/"+model.NewID(), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
