package http

import (
	"time"

	"github.com/tokopasar/storefront/internal/order/domain"
)

type createOrderRequest struct {
	StoreName  string         `json:"storeName" validate:"required"`
	Orderer    ordererBody    `json:"orderer"`
	Items      []cartItemBody `json:"items" validate:"required,min=1,dive"`
	TotalPrice int64          `json:"totalPrice" validate:"gte=0"`
}

type ordererBody struct {
	Name        string `json:"name" validate:"required,min=4,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=8,max=14"`
	Address     string `json:"address"`
}

// cartItemBody is the product snapshot the cart UI sends along. Ordering
// only consumes id, name, price and quantity; the rest is accepted so stale
// carts still parse.
type cartItemBody struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	PriceBase   int64          `json:"priceBase" validate:"gte=0"`
	Price       int64          `json:"price" validate:"gte=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	Store       storeBody      `json:"store"`
	Description string         `json:"description"`
	ImageURL    string         `json:"imageUrl"`
	Categories  []categoryBody `json:"categories"`
	Quantity    int            `json:"quantity" validate:"required,gt=0"`
}

type storeBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r createOrderRequest) toDomain() domain.OrderRequest {
	items := make([]domain.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.CartItem{
			ProductID: it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return domain.OrderRequest{
		StoreName: r.StoreName,
		Orderer: domain.Orderer{
			Name:        r.Orderer.Name,
			Email:       r.Orderer.Email,
			PhoneNumber: r.Orderer.PhoneNumber,
			Address:     r.Orderer.Address,
		},
		Items:      items,
		TotalPrice: r.TotalPrice,
	}
}

type orderResponse struct {
	ID        string             `json:"id"`
	Number    int64              `json:"number"`
	Total     int64              `json:"total"`
	Status    string             `json:"status"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
	Customer  customerResponse   `json:"customer"`
	Products  []lineItemResponse `json:"products"`
	Store     storeNameResponse  `json:"store"`
}

type customerResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type lineItemResponse struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Product  productResponse `json:"product"`
}

type productResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type storeNameResponse struct {
	Name string `json:"name"`
}

func toOrderResponse(o domain.Order) orderResponse {
	products := make([]lineItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		products = append(products, lineItemResponse{
			ID:       item.ID,
			Quantity: item.Quantity,
			Product: productResponse{
				ID:    item.ProductID,
				Name:  item.ProductName,
				Price: item.UnitPrice,
			},
		})
	}
	return orderResponse{
		ID:        o.ID,
		Number:    o.Number,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
		Customer: customerResponse{
			Name:        o.Customer.Name,
			Email:       o.Customer.Email,
			PhoneNumber: o.Customer.PhoneNumber,
			Address:     o.Customer.Address,
		},
		Products: products,
		Store:    storeNameResponse{Name: o.StoreName},
	}
}
