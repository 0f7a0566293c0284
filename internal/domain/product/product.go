package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

const (
	TypeSample = "sample"
	TypeCustom = "custom"
)

// Product is a catalog comic. Orders snapshot its title/price/image at
// checkout, so editing a product never changes historical orders.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageUrl"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}
