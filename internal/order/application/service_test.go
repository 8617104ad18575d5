package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdom "github.com/tokopasar/storefront/internal/catalog/domain"
	customerdom "github.com/tokopasar/storefront/internal/customer/domain"
	notifdom "github.com/tokopasar/storefront/internal/notification/domain"
	"github.com/tokopasar/storefront/internal/order/domain"
)

type fakeTxRunner struct {
	commits int
	aborts  int
}

func (r *fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if err := fn(ctx, nil); err != nil {
		r.aborts++
		return err
	}
	r.commits++
	return nil
}

type fakeStores struct {
	stores map[string]catalogdom.Store
}

func (s *fakeStores) FindActiveStore(_ context.Context, name string) (catalogdom.Store, error) {
	st, ok := s.stores[name]
	if !ok {
		return catalogdom.Store{}, catalogdom.ErrStoreNotFound
	}
	return st, nil
}

type fakeStock struct {
	prices map[string]int64 // product id -> unit price
	stock  map[string]int
	calls  int
}

func (s *fakeStock) Reserve(_ context.Context, _ pgx.Tx, items []domain.CartItem) ([]domain.ProductOrder, error) {
	s.calls++
	reserved := make([]domain.ProductOrder, 0, len(items))
	for _, item := range items {
		price, ok := s.prices[item.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		if s.stock[item.ProductID] < item.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: item.Name, Requested: item.Quantity}
		}
		reserved = append(reserved, domain.ProductOrder{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			UnitPrice:   price,
			Quantity:    item.Quantity,
		})
	}
	for _, item := range items {
		s.stock[item.ProductID] -= item.Quantity
	}
	return reserved, nil
}

type fakeCustomers struct {
	byPhone map[string]customerdom.Customer
	created int
}

func (c *fakeCustomers) FindOrCreate(_ context.Context, _ pgx.Tx, in customerdom.Customer) (customerdom.Customer, error) {
	if existing, ok := c.byPhone[in.PhoneNumber]; ok {
		return existing, nil
	}
	in.ID = "cust-" + in.PhoneNumber
	c.byPhone[in.PhoneNumber] = in
	c.created++
	return in, nil
}

type fakeOrders struct {
	created  []domain.Order
	statuses map[string]domain.OrderStatus
	nextNum  int64
}

func (o *fakeOrders) Create(_ context.Context, _ pgx.Tx, ord *domain.Order) error {
	o.nextNum++
	ord.Number = o.nextNum
	o.created = append(o.created, *ord)
	return nil
}

func (o *fakeOrders) ListAll(context.Context) ([]domain.Order, error) {
	return o.created, nil
}

func (o *fakeOrders) GetStatus(_ context.Context, id string) (domain.OrderStatus, error) {
	st, ok := o.statuses[id]
	if !ok {
		return "", domain.ErrOrderNotFound
	}
	return st, nil
}

func (o *fakeOrders) UpdateStatus(_ context.Context, id string, _, to domain.OrderStatus) error {
	o.statuses[id] = to
	return nil
}

type enqueued struct {
	eventType string
	payload   []byte
}

type fakeEvents struct {
	events []enqueued
}

func (e *fakeEvents) Enqueue(_ context.Context, _ pgx.Tx, _, _, eventType string,
	payload []byte, _ map[string]string, _ string) error {
	e.events = append(e.events, enqueued{eventType: eventType, payload: payload})
	return nil
}

type serviceEnv struct {
	svc       *Service
	tx        *fakeTxRunner
	stock     *fakeStock
	customers *fakeCustomers
	orders    *fakeOrders
	events    *fakeEvents
}

func newServiceEnv() *serviceEnv {
	env := &serviceEnv{
		tx: &fakeTxRunner{},
		stock: &fakeStock{
			prices: map[string]int64{"p1": 1000, "p2": 2500},
			stock:  map[string]int{"p1": 5, "p2": 10},
		},
		customers: &fakeCustomers{byPhone: map[string]customerdom.Customer{}},
		orders:    &fakeOrders{statuses: map[string]domain.OrderStatus{}},
		events:    &fakeEvents{},
	}
	stores := &fakeStores{stores: map[string]catalogdom.Store{
		"acme": {ID: "store-1", Name: "acme"},
	}}
	env.svc = NewService(slog.New(slog.DiscardHandler), env.tx, stores,
		env.stock, env.customers, env.orders, env.events)
	return env
}

func checkoutRequest(qty int) domain.OrderRequest {
	return domain.OrderRequest{
		StoreName: "acme",
		Orderer: domain.Orderer{
			Name:        "Budi Santoso",
			Email:       "budi@example.com",
			PhoneNumber: "081234567890",
			Address:     "Jl. Merdeka 1",
		},
		Items: []domain.CartItem{
			{ProductID: "p1", Name: "Kopi Susu", Price: 1000, Quantity: qty},
		},
		TotalPrice: int64(qty) * 1000,
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	env := newServiceEnv()

	order, err := env.svc.PlaceOrder(context.Background(), checkoutRequest(5))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, int64(5000), order.Total)
	assert.Equal(t, int64(1), order.Number)
	assert.Equal(t, "acme", order.StoreName)
	assert.Equal(t, 0, env.stock.stock["p1"], "stock debited to zero")
	assert.Equal(t, 1, env.tx.commits)

	// Exactly one email/send event, enqueued in the same transaction.
	require.Len(t, env.events.events, 1)
	assert.Equal(t, notifdom.EventEmailSend, env.events.events[0].eventType)
	var email notifdom.EmailSendPayload
	require.NoError(t, json.Unmarshal(env.events.events[0].payload, &email))
	assert.Equal(t, "budi@example.com", email.RecipientEmail)
	assert.Contains(t, email.Subject, "#1")
	assert.Contains(t, email.HTML, "Kopi Susu")
}

func TestPlaceOrderInsufficientStockLeavesNothingBehind(t *testing.T) {
	env := newServiceEnv()

	// First order drains the stock, second must fail atomically.
	_, err := env.svc.PlaceOrder(context.Background(), checkoutRequest(5))
	require.NoError(t, err)

	_, err = env.svc.PlaceOrder(context.Background(), checkoutRequest(1))
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Kopi Susu", stockErr.ProductName)

	assert.Len(t, env.orders.created, 1)
	assert.Len(t, env.events.events, 1)
	assert.Equal(t, 1, env.tx.aborts)
}

func TestPlaceOrderReusesCustomerByPhone(t *testing.T) {
	env := newServiceEnv()

	first, err := env.svc.PlaceOrder(context.Background(), checkoutRequest(2))
	require.NoError(t, err)

	req := checkoutRequest(1)
	req.Orderer.Name = "Budi S."
	req.Orderer.Address = "Jl. Baru 99"
	second, err := env.svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, env.customers.created)
	assert.Equal(t, first.CustomerID, second.CustomerID)
	// Existing record is returned unchanged.
	assert.Equal(t, "Budi Santoso", second.Customer.Name)
	assert.Equal(t, "Jl. Merdeka 1", second.Customer.Address)
}

func TestPlaceOrderUnknownStoreTouchesNothing(t *testing.T) {
	env := newServiceEnv()

	req := checkoutRequest(1)
	req.StoreName = "ghost"
	_, err := env.svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, catalogdom.ErrStoreNotFound)

	assert.Equal(t, 0, env.stock.calls, "store resolution happens before the transaction")
	assert.Equal(t, 0, env.tx.commits+env.tx.aborts)
	assert.Empty(t, env.orders.created)
}

func TestPlaceOrderProductVanished(t *testing.T) {
	env := newServiceEnv()

	req := checkoutRequest(1)
	req.Items[0].ProductID = "deleted"
	_, err := env.svc.PlaceOrder(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, env.orders.created)
	assert.Empty(t, env.events.events)
}

func TestUpdateStatus(t *testing.T) {
	env := newServiceEnv()
	env.orders.statuses["o1"] = domain.StatusPending

	require.NoError(t, env.svc.UpdateStatus(context.Background(), "o1", "PROCESSING"))
	assert.Equal(t, domain.StatusProcessing, env.orders.statuses["o1"])

	require.NoError(t, env.svc.UpdateStatus(context.Background(), "o1", "COMPLETED"))

	err := env.svc.UpdateStatus(context.Background(), "o1", "PROCESSING")
	require.ErrorIs(t, err, domain.ErrInvalidChange)

	err = env.svc.UpdateStatus(context.Background(), "o1", "SHIPPED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	err = env.svc.UpdateStatus(context.Background(), "missing", "PROCESSING")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
