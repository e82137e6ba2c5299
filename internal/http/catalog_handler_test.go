package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelbase/reelbase/internal/models"
)

func TestCatalogStudioLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/studios",
		map[string]string{"name": "Remedy", "location": "Espoo"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	// Catalog responses are bare entities, no envelope.
	var studio models.Studio
	decodeBody(t, rec, &studio)
	require.NotZero(t, studio.ID)
	require.Equal(t, "Remedy", studio.Name)
	require.Equal(t, "Espoo", studio.Location)

	path := fmt.Sprintf("/api/v1/studios/%d", studio.ID)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/studios", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listing []models.Studio
	decodeBody(t, rec, &listing)
	require.Len(t, listing, 1)

	rec = doRequest(t, srv, http.MethodPut, path, map[string]string{"location": "Helsinki"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Studio
	decodeBody(t, rec, &updated)
	require.Equal(t, "Remedy", updated.Name)
	require.Equal(t, "Helsinki", updated.Location)

	rec = doRequest(t, srv, http.MethodDelete, path, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = doRequest(t, srv, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var missing struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &missing)
	require.Equal(t, "Studio not found", missing.Message)
}

func TestCatalogGameLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/games",
		map[string]string{"name": "Control", "genre": "action"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var game models.Game
	decodeBody(t, rec, &game)
	require.NotZero(t, game.ID)

	rec = doRequest(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/games/%d", game.ID),
		map[string]string{"genre": "adventure"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Game
	decodeBody(t, rec, &updated)
	require.Equal(t, "adventure", updated.Genre)

	rec = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/games/%d", game.ID), nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/games/%d", game.ID), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var missing struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &missing)
	require.Equal(t, "Game not found", missing.Message)
}

func TestCatalogCreateRequiresFields(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/studios", map[string]string{"name": "Remedy"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/games", map[string]string{"genre": "action"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "name and genre are required", resp.Message)
}

func TestCatalogUnmatchedRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/publishers", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, "Not found", resp.Message)
}
