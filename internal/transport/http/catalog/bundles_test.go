package catalog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
)

func TestBundleRoutes(t *testing.T) {
	s := newTestServer(t)
	p1 := s.seedProduct(t, "prod-1", "CHK")
	s.seedProduct(t, "prod-2", "SAV")
	old := s.seedProduct(t, "prod-3", "OLD")
	require.NoError(t, old.Archive(now))

	w := s.do(http.MethodPost, "/v1/bundles", map[string]any{
		"code": "starter", "name": "Starter pack",
		"items": []any{
			map[string]any{"product_id": "prod-1", "mandatory": true},
			map[string]any{"product_id": "prod-2"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "STARTER", body["code"])
	assert.Equal(t, "draft", body["status"])
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].(map[string]any)["position"])
	assert.EqualValues(t, 2, items[1].(map[string]any)["position"])

	bundle := func(items ...string) map[string]any {
		list := make([]any, 0, len(items))
		for _, id := range items {
			list = append(list, map[string]any{"product_id": id})
		}
		return map[string]any{"code": "pack", "name": "Pack", "items": list}
	}
	s.run(t, []routeCase{
		{"archived product", http.MethodPost, "/v1/bundles", bundle("prod-3"), http.StatusConflict},
		{"unknown product", http.MethodPost, "/v1/bundles", bundle("missing"), http.StatusNotFound},
		{"duplicate product", http.MethodPost, "/v1/bundles", bundle("prod-1", "prod-1"), http.StatusConflict},
		{"missing code", http.MethodPost, "/v1/bundles", map[string]any{"name": "Pack"}, http.StatusBadRequest},
		{"item without product", http.MethodPost, "/v1/bundles", map[string]any{"code": "pack", "name": "Pack", "items": []any{map[string]any{}}}, http.StatusBadRequest},
	})

	b, err := domain.NewBundle("b-1", domain.BundleInput{Code: "family", Name: "Family"}, now)
	require.NoError(t, err)
	_, err = b.AddItem(p1, true, 0, now)
	require.NoError(t, err)
	b.ClearEvents()
	b.Changes().Reset()
	s.h.ReadModel.Bundles["b-1"] = b

	assert.Len(t, itemsOf(t, s.do(http.MethodGet, "/v1/bundles", nil)), 1)

	w = s.do(http.MethodGet, "/v1/bundles/b-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["items"], 1)

	w = s.do(http.MethodPatch, "/v1/bundles/b-1", map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "active", decode(t, w)["status"])
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, "/v1/bundles/b-1", map[string]any{"status": "paused"}).Code)

	w = s.do(http.MethodPost, "/v1/bundles/b-1/items", map[string]any{"product_id": "prod-2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["items"], 2)

	s.run(t, []routeCase{
		{"duplicate item", http.MethodPost, "/v1/bundles/b-1/items", map[string]any{"product_id": "prod-1"}, http.StatusConflict},
		{"archived item", http.MethodPost, "/v1/bundles/b-1/items", map[string]any{"product_id": "prod-3"}, http.StatusConflict},
		{"item of missing bundle", http.MethodPost, "/v1/bundles/nope/items", map[string]any{"product_id": "prod-1"}, http.StatusNotFound},
	})

	w = s.do(http.MethodDelete, "/v1/bundles/b-1/items/prod-1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	left := decode(t, w)["items"].([]any)
	require.Len(t, left, 1)
	assert.Equal(t, "prod-2", left[0].(map[string]any)["product_id"])

	w = s.do(http.MethodPatch, "/v1/bundles/b-1", map[string]any{"status": "retired"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/v1/bundles/b-1/items", map[string]any{"product_id": "prod-1"}).Code)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/v1/bundles/b-1", nil).Code)
	assert.Contains(t, s.h.Outbox.EventTypes(), "bundle.deleted")
}
