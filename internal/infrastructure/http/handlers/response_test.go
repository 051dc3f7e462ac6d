package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/smartrecipe/server/pkg/errors"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		profile  pageProfile
		wantPage int
		wantSize int
	}{
		{"defaults", "", standardPage, 1, 20},
		{"explicit", "page=3&page_size=40", standardPage, 3, 40},
		{"size capped", "page_size=9999", standardPage, 1, 100},
		{"small profile cap", "page_size=9999", smallPage, 1, 50},
		{"large profile default", "", largePage, 1, 50},
		{"garbage ignored", "page=abc&page_size=-5", standardPage, 1, 20},
		{"zero page ignored", "page=0", standardPage, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/recipe/?"+tt.query, nil)
			params := parsePage(r, tt.profile)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, pageParams{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 40, pageParams{Page: 3, Size: 20}.Offset())
}

func TestNewPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/recipe/?page=2&search=soup", nil)
	r.Host = "api.example.com"

	p := newPage(r, pageParams{Page: 2, Size: 20}, 55, []string{})
	assert.Equal(t, 55, p.Count)
	require.NotNil(t, p.Next)
	assert.Equal(t, "http://api.example.com/api/recipe/?page=3&search=soup", *p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://api.example.com/api/recipe/?page=1&search=soup", *p.Previous)
}

func TestNewPageBounds(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/recipe/", nil)

	// first page of one: no neighbors
	p := newPage(r, pageParams{Page: 1, Size: 20}, 15, nil)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Previous)

	// last page keeps previous only
	p = newPage(r, pageParams{Page: 3, Size: 20}, 55, nil)
	assert.Nil(t, p.Next)
	assert.NotNil(t, p.Previous)
}

func TestPageURLForwardedProto(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/recipe/", nil)
	r.Host = "api.example.com"
	r.Header.Set("X-Forwarded-Proto", "https")

	u := pageURL(r, 2)
	require.NotNil(t, u)
	assert.Equal(t, "https://api.example.com/api/recipe/?page=2", *u)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	writeData(rec, zap.NewNop(), map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Code)
	assert.Equal(t, "success", env.Message)
}

func TestWriteError(t *testing.T) {
	t.Run("app error maps status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, zap.NewNop(), apperrors.NewNotFoundError("Recipe"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, http.StatusNotFound, env.Code)
		assert.Equal(t, "Recipe not found", env.Message)
	})

	t.Run("details appended", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := apperrors.NewValidationError("name is required")
		writeError(rec, zap.NewNop(), err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Contains(t, env.Message, "name is required")
	})

	t.Run("unknown error hides internals", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, zap.NewNop(), errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.NotContains(t, env.Message, "pq")
	})
}
