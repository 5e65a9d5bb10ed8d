package models

import "time"

type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"` // 'L', 'kg', 'piece', etc.
	DefaultPrice float64   `json:"default_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	DefaultPrice float64 `json:"default_price"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	DefaultPrice float64 `json:"default_price"`
}
