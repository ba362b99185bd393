// Package lifecycle governs ticket status transitions and the side effects
// each transition triggers: timestamps, assignment rows, commission
// recomputation, loyalty points, and the review notification link.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/allocation"
	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/notify"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
)

// Checklist is the fixed set of verification items that must all be true
// before a ticket can be marked ready.
type Checklist struct {
	ExteriorClean  bool `json:"exterior_clean"`
	InteriorClean  bool `json:"interior_clean"`
	WindowsClean   bool `json:"windows_clean"`
	DriedAndShined bool `json:"dried_and_shined"`
}

// Complete reports whether every item is checked.
func (c Checklist) Complete() bool {
	return c.ExteriorClean && c.InteriorClean && c.WindowsClean && c.DriedAndShined
}

// Machine owns tickets from creation until a terminal state. All mutation
// entry points catch their own failures and report them; the caller decides
// presentation.
type Machine struct {
	store storage.Store
	floor allocation.FloorConfig

	// loyaltyRedeemPoints is the loyalty balance burned for a free wash.
	loyaltyRedeemPoints int

	now func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithFloor overrides the minimum shared-commission rule.
func WithFloor(floor allocation.FloorConfig) Option {
	return func(m *Machine) { m.floor = floor }
}

// WithLoyaltyRedeemPoints overrides the points burned for a free wash.
func WithLoyaltyRedeemPoints(points int) Option {
	return func(m *Machine) { m.loyaltyRedeemPoints = points }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// NewMachine creates a lifecycle machine over the given store.
func NewMachine(store storage.Store, opts ...Option) *Machine {
	m := &Machine{
		store:               store,
		floor:               allocation.DefaultFloor,
		loyaltyRedeemPoints: 10,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateInput describes a new ticket at intake.
type CreateInput struct {
	CustomerID string
	VehicleID  string
	ServiceID  string
	Extras     []models.Extra
	// Date backdates the customer-visible service time; zero means now.
	Date time.Time
	// RedeemLoyalty burns loyalty points for a free base wash: the price
	// is zeroed but the commission stays payable to the employees.
	RedeemLoyalty bool
}

// Create opens a ticket in the waiting state. Price and commission come from
// the selected catalog service plus any extras chosen at intake.
func (m *Machine) Create(ctx context.Context, input CreateInput) (*models.Ticket, error) {
	if input.ServiceID == "" {
		return nil, fmt.Errorf("%w: service is required", ErrValidation)
	}

	service, err := m.store.GetService(ctx, input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	// The stored commission is the gross figure: base service commission
	// plus every intake extra's commission. Allocation subtracts assigned
	// extras back out of it when computing the shared pool.
	ticket := &models.Ticket{
		CustomerID:       input.CustomerID,
		VehicleID:        input.VehicleID,
		ServiceID:        input.ServiceID,
		Status:           models.StatusWaiting,
		Price:            service.Price,
		CommissionAmount: service.Commission + extrasCommission(input.Extras),
		Extras:           input.Extras,
		Date:             input.Date,
	}

	if input.RedeemLoyalty {
		if input.CustomerID == "" {
			return nil, fmt.Errorf("%w: loyalty redemption requires a customer", ErrValidation)
		}
		customer, err := m.store.GetCustomer(ctx, input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load customer: %w", err)
		}
		if customer.LoyaltyPoints < m.loyaltyRedeemPoints {
			return nil, fmt.Errorf("%w: not enough loyalty points", ErrValidation)
		}
		ticket.Price = 0
	}

	if err := m.store.CreateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if input.RedeemLoyalty {
		if err := m.store.AddLoyaltyPoints(ctx, input.CustomerID, -m.loyaltyRedeemPoints); err != nil {
			slog.Warn("loyalty redemption not recorded", "ticket_id", ticket.ID, "error", err)
		}
	}

	slog.Info("ticket created", "ticket_id", ticket.ID, "service_id", service.ID, "price", ticket.Price)
	return ticket, nil
}

// StartWash moves a waiting ticket to in_progress. It requires at least one
// employee, creates the assignment rows, applies the shared-commission floor
// rule once, and stamps startedAt. The floor is not recomputed afterward even
// if the assignment count later changes.
func (m *Machine) StartWash(ctx context.Context, ticketID string, employeeIDs []string) (*models.Ticket, error) {
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrNoEmployees)
	}

	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(ActionStart, ticket.Status) {
		return nil, fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, ticket.Status)
	}

	// The floor applies to the base-service commission only; extras ride
	// on top of the floored figure untouched.
	extras := extrasCommission(ticket.Extras)
	base := ticket.CommissionAmount - extras
	ticket.CommissionAmount = m.floor.Apply(ticket.Price, base, len(employeeIDs)) + extras
	ticket.Status = models.StatusInProgress
	started := m.now().Truncate(time.Second)
	ticket.StartedAt = &started

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to start wash: %w", err)
	}
	if err := m.store.AddAssignments(ctx, ticketID, employeeIDs); err != nil {
		return nil, fmt.Errorf("failed to assign employees: %w", err)
	}

	// Re-read so the returned ticket carries the assignment rows.
	updated, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	slog.Info("wash started", "ticket_id", ticketID, "employees", len(employeeIDs),
		"commission", updated.CommissionAmount)
	return updated, nil
}

// ReadyInput carries the verification data for MarkReady.
type ReadyInput struct {
	Checklist Checklist
	// Attributions assigns shared extras to employees before completion,
	// keyed by extra ID. Required for every unassigned extra when the
	// ticket is shared by more than one employee.
	Attributions map[string]string
	// FinishedAt overrides the completion timestamp. When nil, the first
	// successful MarkReady stamps the current time and later retries keep
	// the original: only the first completion time is authoritative.
	FinishedAt *time.Time
}

// MarkReady moves an in_progress ticket to ready. On success the customer
// earns a loyalty point and a review message link is returned for the
// messaging channel; an empty link means the customer cannot be notified
// (no customer or no phone), which does not fail the transition.
func (m *Machine) MarkReady(ctx context.Context, ticketID string, input ReadyInput) (*models.Ticket, string, error) {
	if !input.Checklist.Complete() {
		return nil, "", fmt.Errorf("%w: %w", ErrValidation, ErrChecklistIncomplete)
	}

	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	if ticket.Status == models.StatusReady && ticket.FinishedAt != nil {
		if input.FinishedAt == nil {
			// Retry of an already-applied transition: tolerated, and
			// the first completion time stays authoritative.
			return ticket, "", nil
		}
		// An explicit completion-time override on a ready ticket is a
		// correction; side effects already ran and do not repeat.
		finished := input.FinishedAt.Truncate(time.Second)
		ticket.FinishedAt = &finished
		if err := m.store.UpdateTicket(ctx, ticket); err != nil {
			return nil, "", fmt.Errorf("failed to mark ready: %w", err)
		}
		slog.Info("ticket completion time corrected", "ticket_id", ticketID, "finished_at", ticket.FinishedAt)
		return ticket, "", nil
	}
	if !ValidTransition(ActionReady, ticket.Status) {
		return nil, "", fmt.Errorf("%w: cannot mark ready from %s", ErrInvalidTransition, ticket.Status)
	}

	for i := range ticket.Extras {
		extra := &ticket.Extras[i]
		if extra.AssignedTo != "" {
			continue
		}
		if employeeID, ok := input.Attributions[extra.ID]; ok {
			if !ticket.IsAssigned(employeeID) {
				return nil, "", fmt.Errorf("%w: extra %q attributed to unassigned employee",
					ErrValidation, extra.Description)
			}
			extra.AssignedTo = employeeID
		}
	}

	// A shared ticket must have every extra attributed before completion.
	if len(ticket.Assignments) > 1 {
		for _, extra := range ticket.Extras {
			if extra.AssignedTo == "" {
				return nil, "", fmt.Errorf("%w: %w (%s)", ErrValidation, ErrExtrasUnattributed, extra.Description)
			}
		}
	}

	switch {
	case input.FinishedAt != nil:
		finished := input.FinishedAt.Truncate(time.Second)
		ticket.FinishedAt = &finished
	case ticket.FinishedAt == nil:
		finished := m.now().Truncate(time.Second)
		ticket.FinishedAt = &finished
	}
	ticket.Status = models.StatusReady

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, "", fmt.Errorf("failed to mark ready: %w", err)
	}

	link := m.finishSideEffects(ctx, ticket)
	slog.Info("ticket ready", "ticket_id", ticketID, "finished_at", ticket.FinishedAt)
	return ticket, link, nil
}

// finishSideEffects awards the loyalty point and builds the review link.
// Both are best-effort: failures are logged but do not fail the transition.
func (m *Machine) finishSideEffects(ctx context.Context, ticket *models.Ticket) string {
	if ticket.CustomerID == "" {
		return ""
	}

	if err := m.store.AddLoyaltyPoints(ctx, ticket.CustomerID, 1); err != nil {
		slog.Warn("loyalty point not awarded", "ticket_id", ticket.ID, "error", err)
	}

	customer, err := m.store.GetCustomer(ctx, ticket.CustomerID)
	if err != nil {
		slog.Warn("customer lookup failed for notification", "ticket_id", ticket.ID, "error", err)
		return ""
	}

	settings, err := m.store.GetSettings(ctx)
	if err != nil {
		slog.Warn("settings lookup failed for notification", "ticket_id", ticket.ID, "error", err)
		settings = &models.Settings{}
	}

	link, err := notify.WhatsAppLink(customer.Phone, notify.ReviewMessage(customer.Name, settings.ReviewLink))
	if err != nil {
		slog.Info("customer not notifiable", "ticket_id", ticket.ID, "error", err)
		return ""
	}
	return link
}

// Settle moves a ready ticket to paid, recording the payment method and the
// optional tip. Commission values are frozen for reporting from here on. A
// membership settlement burns one membership use and zeroes the base price.
func (m *Machine) Settle(ctx context.Context, ticketID, paymentMethod string, tip float64) (*models.Ticket, error) {
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: %w: unknown method %q", ErrValidation, ErrInvalidPayment, paymentMethod)
	}
	if tip < 0 {
		return nil, fmt.Errorf("%w: %w: negative tip", ErrValidation, ErrInvalidPayment)
	}

	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(ActionPay, ticket.Status) {
		return nil, fmt.Errorf("%w: cannot pay from %s", ErrInvalidTransition, ticket.Status)
	}

	if paymentMethod == models.PaymentMembership {
		if ticket.CustomerID == "" {
			return nil, fmt.Errorf("%w: membership payment requires a customer", ErrValidation)
		}
		if err := m.store.UseMembership(ctx, ticket.CustomerID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		ticket.Price = 0
	}

	ticket.PaymentMethod = paymentMethod
	ticket.Tip = tip
	ticket.Status = models.StatusPaid

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to settle ticket: %w", err)
	}

	slog.Info("ticket settled", "ticket_id", ticketID, "method", paymentMethod,
		"total", ticket.TotalPrice(), "tip", tip)
	return ticket, nil
}

// Cancel moves any non-terminal ticket to cancelled: price and commission are
// zeroed, extras cleared, finishedAt reset, and the canceller recorded. The
// status mutation is applied first, while the actor still holds the
// assignment that authorizes the write; cleanup of assignment and feedback
// rows afterward is best-effort and its failure does not revert the
// cancellation.
func (m *Machine) Cancel(ctx context.Context, ticketID, cancelledBy string) (*models.Ticket, error) {
	if cancelledBy == "" {
		return nil, fmt.Errorf("%w: cancelled_by is required", ErrValidation)
	}

	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(ActionCancel, ticket.Status) {
		return nil, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, ticket.Status)
	}

	ticket.Status = models.StatusCancelled
	ticket.Price = 0
	ticket.CommissionAmount = 0
	ticket.Tip = 0
	ticket.Extras = nil
	ticket.FinishedAt = nil
	ticket.CancelledBy = cancelledBy

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to cancel ticket: %w", err)
	}

	// Phase two: cleanup. Already committed above, so only log failures.
	if err := m.store.DeleteAssignments(ctx, ticketID); err != nil {
		slog.Warn("cancellation cleanup: assignments not removed", "ticket_id", ticketID, "error", err)
	}
	if err := m.store.DeleteFeedbackByTicket(ctx, ticketID); err != nil {
		slog.Warn("cancellation cleanup: feedback not removed", "ticket_id", ticketID, "error", err)
	}

	updated, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return ticket, nil
	}

	slog.Info("ticket cancelled", "ticket_id", ticketID, "cancelled_by", cancelledBy)
	return updated, nil
}

// RevertToWashing is the administrative correction ready -> in_progress. It
// clears finishedAt, the field being reverted; startedAt is preserved.
func (m *Machine) RevertToWashing(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(ActionRevertToWashing, ticket.Status) {
		return nil, fmt.Errorf("%w: cannot revert to washing from %s", ErrInvalidTransition, ticket.Status)
	}

	ticket.Status = models.StatusInProgress
	ticket.FinishedAt = nil

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to revert ticket: %w", err)
	}

	slog.Info("ticket reverted to washing", "ticket_id", ticketID)
	return ticket, nil
}

// RevertToReady is the administrative correction paid -> ready. The payment
// fields are cleared but finishedAt is preserved: the original completion
// time stays authoritative.
func (m *Machine) RevertToReady(ctx context.Context, ticketID string) (*models.Ticket, error) {
	ticket, err := m.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ValidTransition(ActionRevertToReady, ticket.Status) {
		return nil, fmt.Errorf("%w: cannot revert to ready from %s", ErrInvalidTransition, ticket.Status)
	}

	ticket.Status = models.StatusReady
	ticket.PaymentMethod = ""
	ticket.Tip = 0

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to revert ticket: %w", err)
	}

	slog.Info("ticket reverted to ready", "ticket_id", ticketID)
	return ticket, nil
}

func extrasCommission(extras []models.Extra) float64 {
	total := 0.0
	for _, e := range extras {
		total += e.Commission
	}
	return total
}
