package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/campusreg/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/colleges", nil)

	HandleAPIError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleAPIErrorValidation(t *testing.T) {
	code, body := handleError(t, apperrors.NewValidationError([]string{"code is required", "name is required"}))
	assert.Equal(t, 400, code)
	assert.Equal(t, []interface{}{"code is required", "name is required"}, body["errors"])
}

func TestHandleAPIErrorNotFound(t *testing.T) {
	code, body := handleError(t, apperrors.ErrCollegeNotFound)
	assert.Equal(t, 404, code)
	assert.Equal(t, "college not found", body["error"])
}

func TestHandleAPIErrorBadCredentials(t *testing.T) {
	code, body := handleError(t, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 401, code)
	assert.Equal(t, "Invalid username or password", body["error"])
}

func TestHandleAPIErrorDuplicateKey(t *testing.T) {
	// Race-only path: the pre-validation usually catches duplicates first
	code, body := handleError(t, apperrors.ErrProgramAlreadyExists)
	assert.Equal(t, 400, code)
	assert.Equal(t, "program code already exists", body["error"])
}

func TestHandleAPIErrorReferentialIntegrity(t *testing.T) {
	code, body := handleError(t, apperrors.NewReferentialIntegrityError("college has associated programs and cannot be deleted"))
	assert.Equal(t, 400, code)
	assert.Equal(t, "college has associated programs and cannot be deleted", body["error"])
}

func TestHandleAPIErrorCascadeFailure(t *testing.T) {
	code, body := handleError(t, apperrors.ErrCascadeFailed)
	assert.Equal(t, 500, code)
	// The client is told the transaction rolled back, not a generic message
	assert.Equal(t, apperrors.ErrCascadeFailed.Error(), body["error"])
}

func TestHandleAPIErrorStorage(t *testing.T) {
	code, body := handleError(t, apperrors.NewStorageError(errors.New("connection refused")))
	assert.Equal(t, 500, code)
	// Backend details never reach the client
	assert.Equal(t, "An unexpected error occurred", body["error"])
}

func TestHandleAPIErrorUnknown(t *testing.T) {
	code, body := handleError(t, errors.New("boom"))
	assert.Equal(t, 500, code)
	assert.Equal(t, "An unexpected error occurred", body["error"])
}
