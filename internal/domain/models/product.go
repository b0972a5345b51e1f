package models

import "time"

// Product conditions accepted on create/update.
const (
	ConditionNew     = "new"
	ConditionLikeNew = "like_new"
	ConditionUsed    = "used"
)

type Product struct {
	ID            int64     `json:"id"`
	SellerID      int64     `json:"seller_id"`
	CategoryID    int64     `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int64     `json:"stock_quantity"`
	Condition     string    `json:"condition"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
