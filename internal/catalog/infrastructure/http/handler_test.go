package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokopasar/storefront/internal/catalog/domain"
)

type fakeBrowser struct {
	store    domain.Store
	products []domain.Product
	err      error
}

func (b *fakeBrowser) BrowseStore(context.Context, string) (domain.Store, []domain.Product, error) {
	if b.err != nil {
		return domain.Store{}, nil, b.err
	}
	return b.store, b.products, nil
}

func TestBrowseStoreEndpoint(t *testing.T) {
	h := NewHandler(slog.New(slog.DiscardHandler), &fakeBrowser{
		store: domain.Store{ID: "s1", Name: "acme"},
		products: []domain.Product{{
			ID: "p1", Name: "Kopi Susu", Price: 1000, PriceBase: 800, Stock: 5,
			Categories: []domain.Category{{ID: "c1", Name: "drinks"}},
		}},
	}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/stores/acme/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Store    map[string]string `json:"store"`
		Products []productResp     `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acme", resp.Store["name"])
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Kopi Susu", resp.Products[0].Name)
	require.Len(t, resp.Products[0].Categories, 1)
	assert.Equal(t, "drinks", resp.Products[0].Categories[0].Name)
}

func TestBrowseStoreNotFound(t *testing.T) {
	h := NewHandler(slog.New(slog.DiscardHandler), &fakeBrowser{err: domain.ErrStoreNotFound}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/stores/ghost/products", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
