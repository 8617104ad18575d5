package domain

// OrderRequest is the validated checkout payload. TotalPrice is what the
// client claims; the ledger recomputes the total from database prices and
// stores that instead.
type OrderRequest struct {
	StoreName  string
	Orderer    Orderer
	Items      []CartItem
	TotalPrice int64
}

type Orderer struct {
	Name        string
	Email       string
	PhoneNumber string
	Address     string
}

// CartItem carries the product snapshot the storefront held when the cart
// was built. Only the id and quantity drive the reservation; the rest is
// display data that may already be stale.
type CartItem struct {
	ProductID string
	Name      string
	Price     int64
	Quantity  int
}
