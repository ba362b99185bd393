package models

import "time"

// Ticket statuses. A ticket moves waiting -> in_progress -> ready -> paid,
// with cancelled reachable from any non-terminal status and explicit
// administrative regressions allowed backward.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusReady      = "ready"
	StatusPaid       = "paid"
	StatusCancelled  = "cancelled"
)

// Payment methods accepted at settlement.
const (
	PaymentCash       = "cash"
	PaymentCard       = "card"
	PaymentTransfer   = "transfer"
	PaymentMembership = "membership"
)

// Ticket is one customer service order, the financial and state unit of the
// system. Money fields are customer-facing decimals; CommissionAmount is the
// gross commission attributable to the shared pool (extras with an assigned
// employee are excluded from it at allocation time, not here).
type Ticket struct {
	ID        string `json:"id"`
	CustomerID string `json:"customer_id,omitempty"`
	VehicleID  string `json:"vehicle_id,omitempty"`
	ServiceID  string `json:"service_id,omitempty"`

	// EmployeeID is the legacy single-employee field. It is folded into
	// Assignments when a ticket is loaded; readers should only consult
	// Assignments.
	EmployeeID string `json:"employee_id,omitempty"`

	Status           string  `json:"status"`
	Price            float64 `json:"price"`
	CommissionAmount float64 `json:"commission_amount"`
	Tip              float64 `json:"tip"`
	PaymentMethod    string  `json:"payment_method,omitempty"`

	Extras []Extra `json:"extras"`

	// Assignments is always present once loaded, possibly a singleton
	// derived from EmployeeID. Its length is the divisor for splitting the
	// shared pool and the tip.
	Assignments []Assignment `json:"assignments"`

	// Date is the customer-visible service time; it may differ from
	// CreatedAt when a ticket is backdated.
	Date        time.Time  `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	CancelledBy string     `json:"cancelled_by,omitempty"`
}

// Extra is an add-on service item attached to a ticket. Price is added to the
// customer total; Commission is the payable amount. When AssignedTo is set the
// commission is paid in full to that one employee and excluded from the
// shared pool; otherwise it is divided like the base commission.
type Extra struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Commission  float64 `json:"commission"`
	AssignedTo  string  `json:"assigned_to,omitempty"`
}

// Assignment links a ticket to one employee who performed work on it.
// Unique per (ticket, employee) pair, created when work begins, deleted only
// as part of cancellation cleanup.
type Assignment struct {
	TicketID   string `json:"transaction_id"`
	EmployeeID string `json:"employee_id"`
}

// TotalPrice is the full amount owed by the customer: base price plus every
// extra's price.
func (t *Ticket) TotalPrice() float64 {
	total := t.Price
	for _, e := range t.Extras {
		total += e.Price
	}
	return total
}

// AssignmentCount returns the divisor used for splitting the shared pool and
// the tip. Defaults to 1 when no assignment rows exist (legacy
// single-employee fallback).
func (t *Ticket) AssignmentCount() int {
	if len(t.Assignments) == 0 {
		return 1
	}
	return len(t.Assignments)
}

// IsAssigned reports whether the employee has an assignment row on the ticket.
func (t *Ticket) IsAssigned(employeeID string) bool {
	for _, a := range t.Assignments {
		if a.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// Terminal reports whether the ticket is in a terminal state. No further
// mutation of commission or tip is permitted once terminal, except through an
// explicit regression.
func (t *Ticket) Terminal() bool {
	return t.Status == StatusPaid || t.Status == StatusCancelled
}

// ValidStatus reports whether s is one of the known ticket statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusInProgress, StatusReady, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMembership:
		return true
	}
	return false
}
