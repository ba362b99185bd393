package models

import "time"

// Feedback is a customer review linked to a ticket. Cancelling a ticket
// removes its feedback as best-effort cleanup.
type Feedback struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"transaction_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
