package order

import (
	"math"
	"time"
)

// Item is one priced line within an order. Title, price and image are a
// snapshot taken at order creation; later catalog edits never touch it.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId,omitempty"` // empty for fully custom items
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	IsCustom  bool    `json:"isCustom"`
	Notes     string  `json:"notes,omitempty"`
}

type Order struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CustomerName string    `json:"customerName"`
	Items        []Item    `json:"items"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`

	// Display copies of the first custom item; the items slice stays the
	// source of truth.
	CustomImageURL string `json:"customImageUrl,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// NewOrder builds a Pending order from a validated item set. totalPrice is
// the caller-supplied checkout total and must match sum(price*quantity) to
// the cent; it is stored as a snapshot and never recomputed.
func NewOrder(id, userID, customerName string, items []Item, totalPrice float64) (*Order, error) {
	if id == "" || userID == "" {
		return nil, ErrMissingField
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	var sum float64
	for _, item := range items {
		if item.Title == "" {
			return nil, ErrMissingField
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.Price < 0 {
			return nil, ErrInvalidPrice
		}
		sum += item.Price * float64(item.Quantity)
	}
	if math.Abs(sum-totalPrice) >= 0.005 {
		return nil, ErrTotalMismatch
	}

	o := &Order{
		ID:           id,
		UserID:       userID,
		CustomerName: customerName,
		Items:        items,
		TotalPrice:   totalPrice,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	for _, item := range items {
		if item.IsCustom {
			o.CustomImageURL = item.ImageURL
			o.Notes = item.Notes
			break
		}
	}
	return o, nil
}

// HasCustomItem reports whether any line is a custom comic.
func (o *Order) HasCustomItem() bool {
	for _, item := range o.Items {
		if item.IsCustom {
			return true
		}
	}
	return false
}
