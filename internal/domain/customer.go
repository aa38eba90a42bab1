package domain

import "time"

// Customer represents a registered storefront account.
type Customer struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the resolved identity context for a request: either a guest
// (nil Customer) or an authenticated customer.
type Actor struct {
	Customer *Customer
}

// Guest returns the unauthenticated actor.
func Guest() Actor {
	return Actor{}
}

func (a Actor) Authenticated() bool {
	return a.Customer != nil
}

// CustomerID returns the bound customer id, or "" for guests.
func (a Actor) CustomerID() string {
	if a.Customer == nil {
		return ""
	}
	return a.Customer.ID
}

// ShippingProfile is the default address snapshot saved against a customer.
type ShippingProfile struct {
	CustomerID string          `json:"customerId"`
	Details    ShippingDetails `json:"details"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
