package models

import "time"

// Customer is a registered client of the wash. LoyaltyPoints increase by one
// on every finished ticket and can be redeemed for a free wash. A customer
// with an active membership can settle tickets with the membership payment
// method, which burns one membership use instead of charging a price.
type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	LoyaltyPoints  int       `json:"loyalty_points"`
	MembershipUses int       `json:"membership_uses"`
	CreatedAt      time.Time `json:"created_at"`
}

// Vehicle belongs to a customer and is referenced by tickets.
type Vehicle struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Plate      string `json:"plate"`
	Make       string `json:"make,omitempty"`
	Model      string `json:"model,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Service is an entry in the wash catalog: the base price charged to the
// customer and the configured commission for that service.
type Service struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Commission float64 `json:"commission"`
}
