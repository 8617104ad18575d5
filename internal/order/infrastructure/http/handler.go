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

	catalogdom "github.com/tokopasar/storefront/internal/catalog/domain"
	"github.com/tokopasar/storefront/internal/order/domain"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type Handler struct {
	log    *slog.Logger
	svc    OrderService
	tracer trace.Tracer
}

func NewHandler(log *slog.Logger, svc OrderService) *Handler {
	return &Handler{
		log:    log,
		svc:    svc,
		tracer: otel.Tracer("order-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Message: "invalid request body"}})
		return
	}
	if details := validateRequest(body); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Message: "request validation failed",
			Fields:  details,
		}})
		return
	}

	order, err := h.svc.PlaceOrder(ctx, body.toDomain())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order":   toOrderResponse(order),
		"message": "Success to order",
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOrders")
	defer span.End()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UpdateOrderStatus")
	defer span.End()

	var body updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Message: "invalid request body"}})
		return
	}
	if details := validateRequest(body); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Message: "request validation failed",
			Fields:  details,
		}})
		return
	}

	orderID := chi.URLParam(r, "id")
	if err := h.svc.UpdateStatus(ctx, orderID, body.Status); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order status updated"})
}

// writeDomainError maps the error taxonomy onto status codes: not-found 404,
// stock conflicts 409, timeouts 504, bad admin input 400, the rest 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.Is(err, catalogdom.ErrStoreNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Message: err.Error()}})
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: errorDetail{Message: stockErr.Error()}})
	case errors.Is(err, domain.ErrStaleStatus):
		writeJSON(w, http.StatusConflict, errorBody{Error: errorDetail{Message: err.Error()}})
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidChange):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Message: err.Error()}})
	case errors.Is(err, domain.ErrTransactionTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: errorDetail{Message: err.Error()}})
	default:
		h.log.Error("order request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{Message: err.Error()}})
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string       `json:"message"`
	Fields  []fieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
