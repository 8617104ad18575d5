package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	customerdom "github.com/tokopasar/storefront/internal/customer/domain"
	notifdom "github.com/tokopasar/storefront/internal/notification/domain"
	"github.com/tokopasar/storefront/internal/order/domain"
	"github.com/tokopasar/storefront/pkg/tracing"
)

// Service is the checkout orchestrator. A placed order is all-or-nothing:
// stock debit, customer upsert, order insert and the email/send outbox row
// commit together or not at all.
type Service struct {
	log       *slog.Logger
	tx        TxRunner
	stores    StoreFinder
	stock     StockReserver
	customers CustomerDirectory
	orders    OrderRepository
	events    EventEnqueuer
}

func NewService(log *slog.Logger, tx TxRunner, stores StoreFinder, stock StockReserver,
	customers CustomerDirectory, orders OrderRepository, events EventEnqueuer) *Service {
	return &Service{
		log:       log,
		tx:        tx,
		stores:    stores,
		stock:     stock,
		customers: customers,
		orders:    orders,
		events:    events,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	// Store resolution happens before the transaction so an unknown or
	// soft-deleted store never touches stock.
	store, err := s.stores.FindActiveStore(ctx, req.StoreName)
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	err = s.tx.InTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		items, err := s.stock.Reserve(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		customer, err := s.customers.FindOrCreate(ctx, tx, customerdom.Customer{
			Name:        req.Orderer.Name,
			Email:       req.Orderer.Email,
			PhoneNumber: req.Orderer.PhoneNumber,
			Address:     req.Orderer.Address,
		})
		if err != nil {
			return err
		}

		order = domain.NewOrder(uuid.NewString(), store.ID, customer.ID, items)
		order.StoreName = store.Name
		order.Customer = customer
		if err := s.orders.Create(ctx, tx, &order); err != nil {
			return err
		}

		email, err := notifdom.OrderConfirmation(order)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(email)
		if err != nil {
			return fmt.Errorf("marshal email payload: %w", err)
		}
		return s.events.Enqueue(ctx, tx, "order", order.ID, notifdom.EventEmailSend,
			payload, map[string]string{"source": "storefront"}, tracing.Traceparent(ctx))
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order placed",
		"order_id", order.ID,
		"number", order.Number,
		"store", order.StoreName,
		"total", order.Total,
		"items", len(order.Items),
	)
	return order, nil
}

// ListOrders returns every order belonging to a non-deleted store, with its
// customer, line items and store name.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus applies one admin-driven state machine step. The optimistic
// `from` guard means two concurrent admins cannot both move the same order.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	to, err := domain.ParseStatus(status)
	if err != nil {
		return err
	}
	from, err := s.orders.GetStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidChange, from, to)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, from, to); err != nil {
		return err
	}
	s.log.Info("order status updated", "order_id", orderID, "from", from, "to", to)
	return nil
}
