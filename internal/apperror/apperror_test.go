package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Required("name")))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("wrapped: %w", Forbidden())))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestRequiredNamesField(t *testing.T) {
	err := Required("image_url")
	assert.Equal(t, "image_url", err.Field)
	assert.Equal(t, "image_url is required", err.Message)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated: http.StatusUnauthorized,
		KindValidation:      http.StatusBadRequest,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestAsWrapsForeignErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := As(cause)
	assert.Equal(t, KindInternal, err.Kind)
	assert.ErrorIs(t, err, cause)
}
