package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storekit-backend/pkg/apperror"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("u1", "owner@shop.in", "store-1", "owner", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	claims, err := ExtractClaims(req)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "store-1", claims.StoreID)
	assert.Equal(t, "owner", claims.Role)
}

func TestExtractClaims_Cookie(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT("u2", "a@b.in", "store-2", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	claims, err := ExtractClaims(req)
	require.NoError(t, err)
	assert.Equal(t, "store-2", claims.StoreID)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	SetSecret("one")
	token, err := GenerateJWT("u1", "", "s", "owner", time.Hour)
	require.NoError(t, err)

	SetSecret("two")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestWriteAppError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	WriteAppError(rec, req, apperror.ErrInvalidZoneConfig([]string{"bad pattern"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SHP_001", body["error_code"])
	assert.Equal(t, []interface{}{"bad pattern"}, body["details"])

	rec = httptest.NewRecorder()
	WriteAppError(rec, req, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
