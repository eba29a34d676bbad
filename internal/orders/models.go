package orders

import "time"

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Order struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	CustomerAddress string    `json:"customer_address,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          Status    `json:"status"`
	TotalCents      int       `json:"total_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Item is an immutable snapshot of one cart line: the size string and
// price_cents are captured at order-creation time, so the order stays
// historically accurate when the catalog changes later.
type Item struct {
	ID         int64  `json:"id"`
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	Size       string `json:"size"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

type ItemInput struct {
	ProductID  string `json:"product_id"`
	Size       string `json:"size"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

// Draft is a validated, lock-order-sorted cart ready to be persisted.
type Draft struct {
	Customer   Customer
	Notes      string
	Items      []ItemInput
	TotalCents int
}
