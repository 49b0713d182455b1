package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestAPIError_Is(t *testing.T) {
	err := ErrCompanyAccessDenied.WithMessage("no access to company XYZ")
	assert.True(t, errors.Is(err, ErrCompanyAccessDenied))
	assert.False(t, errors.Is(err, ErrCompanyNotFound))

	wrapped := fmt.Errorf("resolve context: %w", err)
	assert.True(t, errors.Is(wrapped, ErrCompanyAccessDenied))
}

func TestConvert(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, Convert(ErrUnauthenticated).HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, Convert(ErrCompanyContextMissing).HTTPStatus)
	assert.Equal(t, http.StatusForbidden, Convert(ErrCompanyInactive).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, Convert(gorm.ErrRecordNotFound).HTTPStatus)

	internal := Convert(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
}
