package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tokopasar/storefront/internal/catalog/domain"
)

type Browser interface {
	BrowseStore(ctx context.Context, storeName string) (domain.Store, []domain.Product, error)
}

type Handler struct {
	log    *slog.Logger
	svc    Browser
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger, svc Browser) *Handler {
	return &Handler{
		log:    log,
		svc:    svc,
		tracer: otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/stores/{storeName}/products", h.browseStore)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

type categoryResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type productResp struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"imageUrl"`
	Price       int64          `json:"price"`
	PriceBase   int64          `json:"priceBase"`
	Stock       int            `json:"stock"`
	Categories  []categoryResp `json:"categories"`
}

func (h *Handler) browseStore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "BrowseStore")
	defer span.End()

	storeName := chi.URLParam(r, "storeName")
	store, products, err := h.svc.BrowseStore(ctx, storeName)
	if errors.Is(err, domain.ErrStoreNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("browse store failed", "store", storeName, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	resp := make([]productResp, 0, len(products))
	for _, p := range products {
		pr := productResp{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Price:       p.Price,
			PriceBase:   p.PriceBase,
			Stock:       p.Stock,
			Categories:  make([]categoryResp, 0, len(p.Categories)),
		}
		for _, c := range p.Categories {
			pr.Categories = append(pr.Categories, categoryResp{ID: c.ID, Name: c.Name})
		}
		resp = append(resp, pr)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"store":    map[string]string{"id": store.ID, "name": store.Name},
		"products": resp,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
