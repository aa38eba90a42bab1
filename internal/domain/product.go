package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Category        string    `json:"category,omitempty"`
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	DiscountAmount  int64     `json:"discountAmount,omitempty"`
	Images          []string  `json:"images,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
