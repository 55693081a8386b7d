package model

import "time"

// Product represents a catalogue entry owned by one seller. Price is an
// integer amount in minor currency units; Stock is the currently available
// quantity.
type Product struct {
	ID        string    `json:"id" db:"id"`
	SellerID  string    `json:"sellerId" db:"seller_id"`
	Name      string    `json:"name" db:"name"`
	Price     int64     `json:"price" db:"price_minor"`
	Category  string    `json:"category" db:"category"`
	Stock     int       `json:"stock" db:"stock"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
