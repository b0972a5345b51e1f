package models

import "time"

type Seller struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	StoreName   string    `json:"store_name"`
	Description string    `json:"description,omitempty"`
	Campus      string    `json:"campus,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
