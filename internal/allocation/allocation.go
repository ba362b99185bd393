// Package allocation computes each assigned employee's payable share of a
// ticket's commission, tip, and extras. Every function is pure arithmetic
// over already-validated inputs; missing or empty fields are treated as zero.
package allocation

import (
	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// Share is the calculated payable for one employee on one ticket.
type Share struct {
	// Base is this employee's cut of the shared commission pool.
	Base float64
	// Tip is this employee's cut of the ticket tip.
	Tip float64
	// Extras is the sum of extra commissions assigned solely to this
	// employee, paid in full and undivided.
	Extras float64
	// Total is Base + Tip + Extras.
	Total float64
}

// SharedPool returns the portion of the ticket's commission divided evenly
// among all assigned employees: the gross commission minus every extra
// commission claimed by an individually assigned employee, floored at zero.
func SharedPool(t *models.Ticket) float64 {
	assigned := 0.0
	for _, e := range t.Extras {
		if e.AssignedTo != "" {
			assigned += e.Commission
		}
	}
	pool := t.CommissionAmount - assigned
	if pool < 0 {
		return 0
	}
	return pool
}

// Shares computes the per-employee payable for a ticket. The shared pool and
// the tip are divided by the assignment count; extras with an assigned
// employee go entirely to that employee. Employees appear in the result only
// if they hold an assignment row or an assigned extra.
func Shares(t *models.Ticket) map[string]*Share {
	n := float64(t.AssignmentCount())
	pool := SharedPool(t)

	shares := make(map[string]*Share)
	ensure := func(id string) *Share {
		if s, ok := shares[id]; ok {
			return s
		}
		s := &Share{}
		shares[id] = s
		return s
	}

	for _, a := range t.Assignments {
		s := ensure(a.EmployeeID)
		s.Base = pool / n
		s.Tip = t.Tip / n
	}
	// Legacy single-employee fallback: no assignment rows, the primary
	// employee takes the whole pool and tip.
	if len(t.Assignments) == 0 && t.EmployeeID != "" {
		s := ensure(t.EmployeeID)
		s.Base = pool
		s.Tip = t.Tip
	}

	for _, e := range t.Extras {
		if e.AssignedTo == "" {
			continue
		}
		ensure(e.AssignedTo).Extras += e.Commission
	}

	for _, s := range shares {
		s.Total = s.Base + s.Tip + s.Extras
	}
	return shares
}

// PayableTo returns one employee's total payable for a ticket. Zero when the
// employee has neither an assignment nor an assigned extra on it.
func PayableTo(t *models.Ticket, employeeID string) float64 {
	s, ok := Shares(t)[employeeID]
	if !ok {
		return 0
	}
	return s.Total
}

// BusinessCost is the business-side total commission cost of a ticket:
// commission plus tip, independent of how many employees split it.
func BusinessCost(t *models.Ticket) float64 {
	return t.CommissionAmount + t.Tip
}

// NetPayable subtracts an employee's lunch deductions from gross payable.
// When clampNegative is set the result never goes below zero; otherwise a
// negative net (lunches exceeding earnings) is carried as-is.
func NetPayable(gross, lunches float64, clampNegative bool) float64 {
	net := gross - lunches
	if clampNegative && net < 0 {
		return 0
	}
	return net
}
