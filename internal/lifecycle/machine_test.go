package lifecycle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage/sqlite"
)

// fixture wires a machine over a temp sqlite store with a catalog service
// and a customer already present.
type fixture struct {
	machine  *Machine
	store    storage.Store
	service  *models.Service
	customer *models.Customer
}

func allDone() Checklist {
	return Checklist{ExteriorClean: true, InteriorClean: true, WindowsClean: true, DriedAndShined: true}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "carwash-lifecycle-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	service := &models.Service{Name: "Full Wash", Price: 40, Commission: 10}
	if err := store.CreateService(ctx, service); err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	customer := &models.Customer{Name: "Ana", Phone: "+15550001111", MembershipUses: 1, LoyaltyPoints: 10}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	return &fixture{
		machine:  NewMachine(store, opts...),
		store:    store,
		service:  service,
		customer: customer,
	}
}

func (f *fixture) createTicket(t *testing.T) *models.Ticket {
	t.Helper()
	ticket, err := f.machine.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		ServiceID:  f.service.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return ticket
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("prices from catalog service", func(t *testing.T) {
		ticket := f.createTicket(t)
		if ticket.Status != models.StatusWaiting {
			t.Errorf("status = %q, want waiting", ticket.Status)
		}
		if ticket.Price != 40 || ticket.CommissionAmount != 10 {
			t.Errorf("price/commission = %v/%v, want 40/10", ticket.Price, ticket.CommissionAmount)
		}
	})

	t.Run("intake extras fold into the gross commission", func(t *testing.T) {
		ticket, err := f.machine.Create(ctx, CreateInput{
			ServiceID: f.service.ID,
			Extras: []models.Extra{
				{Description: "Wax", Price: 15, Commission: 5},
				{Description: "Tire shine", Price: 5, Commission: 2},
			},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if ticket.CommissionAmount != 17 {
			t.Errorf("commission = %v, want 17", ticket.CommissionAmount)
		}
		// The base price excludes extras; they are billed via TotalPrice.
		if ticket.Price != 40 || ticket.TotalPrice() != 60 {
			t.Errorf("price/total = %v/%v, want 40/60", ticket.Price, ticket.TotalPrice())
		}
	})

	t.Run("missing service rejected before mutation", func(t *testing.T) {
		_, err := f.machine.Create(ctx, CreateInput{})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("loyalty redemption zeroes price and burns points", func(t *testing.T) {
		ticket, err := f.machine.Create(ctx, CreateInput{
			CustomerID:    f.customer.ID,
			ServiceID:     f.service.ID,
			RedeemLoyalty: true,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if ticket.Price != 0 {
			t.Errorf("price = %v, want 0", ticket.Price)
		}
		// Commission stays payable on a redeemed wash.
		if ticket.CommissionAmount != 10 {
			t.Errorf("commission = %v, want 10", ticket.CommissionAmount)
		}

		customer, err := f.store.GetCustomer(ctx, f.customer.ID)
		if err != nil {
			t.Fatalf("GetCustomer failed: %v", err)
		}
		if customer.LoyaltyPoints != 0 {
			t.Errorf("loyalty points = %d, want 0", customer.LoyaltyPoints)
		}
	})
}

func TestStartWash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("requires at least one employee", func(t *testing.T) {
		ticket := f.createTicket(t)
		_, err := f.machine.StartWash(ctx, ticket.ID, nil)
		if !errors.Is(err, ErrNoEmployees) {
			t.Errorf("err = %v, want ErrNoEmployees", err)
		}
	})

	t.Run("creates assignments and stamps startedAt", func(t *testing.T) {
		ticket := f.createTicket(t)
		started, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"})
		if err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if started.Status != models.StatusInProgress {
			t.Errorf("status = %q, want in_progress", started.Status)
		}
		if len(started.Assignments) != 2 {
			t.Errorf("assignments = %d, want 2", len(started.Assignments))
		}
		if started.StartedAt == nil {
			t.Error("startedAt not stamped")
		}
	})

	t.Run("floor rule raises shared commission once", func(t *testing.T) {
		// $40 price sits in the $35-$55 band and the $10 commission is
		// below the $12 floor, so two employees trigger the raise.
		ticket := f.createTicket(t)
		started, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"})
		if err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if started.CommissionAmount != 12 {
			t.Errorf("commission = %v, want 12", started.CommissionAmount)
		}
	})

	t.Run("floor applies to the base commission, extras ride on top", func(t *testing.T) {
		ticket, err := f.machine.Create(ctx, CreateInput{
			ServiceID: f.service.ID,
			Extras:    []models.Extra{{Description: "Wax", Price: 15, Commission: 5}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		// Gross is 10 base + 5 extra; the floor raises only the base.
		started, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"})
		if err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if started.CommissionAmount != 17 {
			t.Errorf("commission = %v, want 17", started.CommissionAmount)
		}
	})

	t.Run("single employee keeps configured commission", func(t *testing.T) {
		ticket := f.createTicket(t)
		started, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"})
		if err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if started.CommissionAmount != 10 {
			t.Errorf("commission = %v, want 10", started.CommissionAmount)
		}
	})

	t.Run("cannot start twice", func(t *testing.T) {
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		_, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-b"})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestMarkReady(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete checklist blocks", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		_, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{
			Checklist: Checklist{ExteriorClean: true},
		})
		if !errors.Is(err, ErrChecklistIncomplete) {
			t.Errorf("err = %v, want ErrChecklistIncomplete", err)
		}
	})

	t.Run("shared ticket blocks on unattributed extra", func(t *testing.T) {
		f := newFixture(t)
		ticket, err := f.machine.Create(ctx, CreateInput{
			CustomerID: f.customer.ID,
			ServiceID:  f.service.ID,
			Extras:     []models.Extra{{Description: "Wax", Price: 15, Commission: 5}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}

		_, _, err = f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if !errors.Is(err, ErrExtrasUnattributed) {
			t.Errorf("err = %v, want ErrExtrasUnattributed", err)
		}

		// Attributing the extra to an assigned employee unblocks.
		loaded, err := f.store.GetTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("GetTicket failed: %v", err)
		}
		ready, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{
			Checklist:    allDone(),
			Attributions: map[string]string{loaded.Extras[0].ID: "emp-b"},
		})
		if err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
		if ready.Extras[0].AssignedTo != "emp-b" {
			t.Errorf("extra assignedTo = %q, want emp-b", ready.Extras[0].AssignedTo)
		}
	})

	t.Run("attribution to unassigned employee rejected", func(t *testing.T) {
		f := newFixture(t)
		ticket, err := f.machine.Create(ctx, CreateInput{
			ServiceID: f.service.ID,
			Extras:    []models.Extra{{Description: "Wax", Commission: 5}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		loaded, err := f.store.GetTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("GetTicket failed: %v", err)
		}

		_, _, err = f.machine.MarkReady(ctx, ticket.ID, ReadyInput{
			Checklist:    allDone(),
			Attributions: map[string]string{loaded.Extras[0].ID: "emp-z"},
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("single-employee ticket completes without attribution", func(t *testing.T) {
		f := newFixture(t)
		ticket, err := f.machine.Create(ctx, CreateInput{
			CustomerID: f.customer.ID,
			ServiceID:  f.service.ID,
			Extras:     []models.Extra{{Description: "Wax", Commission: 5}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		ready, link, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
		if ready.FinishedAt == nil {
			t.Error("finishedAt not stamped")
		}
		if !strings.HasPrefix(link, "https://wa.me/15550001111") {
			t.Errorf("review link = %q, want wa.me link", link)
		}
	})

	t.Run("awards one loyalty point", func(t *testing.T) {
		f := newFixture(t)
		before, _ := f.store.GetCustomer(ctx, f.customer.ID)

		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if _, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()}); err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}

		after, err := f.store.GetCustomer(ctx, f.customer.ID)
		if err != nil {
			t.Fatalf("GetCustomer failed: %v", err)
		}
		if after.LoyaltyPoints != before.LoyaltyPoints+1 {
			t.Errorf("loyalty points = %d, want %d", after.LoyaltyPoints, before.LoyaltyPoints+1)
		}
	})

	t.Run("retry keeps the first finish timestamp", func(t *testing.T) {
		current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		f := newFixture(t, WithClock(func() time.Time { return current }))
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}

		first, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}

		current = current.Add(time.Hour)
		second, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if err != nil {
			t.Fatalf("MarkReady retry failed: %v", err)
		}
		if !second.FinishedAt.Equal(*first.FinishedAt) {
			t.Errorf("finishedAt changed on retry: %v -> %v", first.FinishedAt, second.FinishedAt)
		}
	})

	t.Run("explicit finish time override corrects a ready ticket", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if _, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()}); err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}

		corrected := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		ready, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{
			Checklist:  allDone(),
			FinishedAt: &corrected,
		})
		if err != nil {
			t.Fatalf("MarkReady override failed: %v", err)
		}
		if ready.FinishedAt == nil || !ready.FinishedAt.Equal(corrected) {
			t.Errorf("finishedAt = %v, want %v", ready.FinishedAt, corrected)
		}

		// The correction is persisted, not just returned.
		loaded, err := f.store.GetTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("GetTicket failed: %v", err)
		}
		if loaded.FinishedAt == nil || !loaded.FinishedAt.Equal(corrected) {
			t.Errorf("stored finishedAt = %v, want %v", loaded.FinishedAt, corrected)
		}
	})
}

func TestTimestampRoundTrip(t *testing.T) {
	// Timestamp columns hold Unix seconds, so the machine truncates what it
	// stamps: the ticket a transition returns must equal a later read.
	ctx := context.Background()
	f := newFixture(t)
	ticket := f.createTicket(t)

	started, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"})
	if err != nil {
		t.Fatalf("StartWash failed: %v", err)
	}
	ready, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
	if err != nil {
		t.Fatalf("MarkReady failed: %v", err)
	}

	loaded, err := f.store.GetTicket(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("GetTicket failed: %v", err)
	}
	if !loaded.StartedAt.Equal(*started.StartedAt) {
		t.Errorf("startedAt = %v, stored %v", started.StartedAt, loaded.StartedAt)
	}
	if !loaded.FinishedAt.Equal(*ready.FinishedAt) {
		t.Errorf("finishedAt = %v, stored %v", ready.FinishedAt, loaded.FinishedAt)
	}
	if !loaded.CreatedAt.Equal(ticket.CreatedAt) {
		t.Errorf("createdAt = %v, stored %v", ticket.CreatedAt, loaded.CreatedAt)
	}
}

func TestSettle(t *testing.T) {
	ctx := context.Background()

	readyTicket := func(t *testing.T, f *fixture) *models.Ticket {
		t.Helper()
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		ready, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
		return ready
	}

	t.Run("records method and tip", func(t *testing.T) {
		f := newFixture(t)
		ticket := readyTicket(t, f)
		paid, err := f.machine.Settle(ctx, ticket.ID, models.PaymentCard, 5)
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if paid.Status != models.StatusPaid || paid.PaymentMethod != models.PaymentCard || paid.Tip != 5 {
			t.Errorf("got %q/%q/%v, want paid/card/5", paid.Status, paid.PaymentMethod, paid.Tip)
		}
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		f := newFixture(t)
		ticket := readyTicket(t, f)
		_, err := f.machine.Settle(ctx, ticket.ID, "cheque", 0)
		if !errors.Is(err, ErrInvalidPayment) {
			t.Errorf("err = %v, want ErrInvalidPayment", err)
		}
	})

	t.Run("negative tip rejected", func(t *testing.T) {
		f := newFixture(t)
		ticket := readyTicket(t, f)
		_, err := f.machine.Settle(ctx, ticket.ID, models.PaymentCash, -1)
		if !errors.Is(err, ErrInvalidPayment) {
			t.Errorf("err = %v, want ErrInvalidPayment", err)
		}
	})

	t.Run("membership burns a use and zeroes price", func(t *testing.T) {
		f := newFixture(t)
		ticket := readyTicket(t, f)
		paid, err := f.machine.Settle(ctx, ticket.ID, models.PaymentMembership, 0)
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if paid.Price != 0 {
			t.Errorf("price = %v, want 0", paid.Price)
		}

		// Second membership settlement fails: only one use existed.
		other := readyTicket(t, f)
		if _, err := f.machine.Settle(ctx, other.ID, models.PaymentMembership, 0); !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("cannot settle from waiting", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		_, err := f.machine.Settle(ctx, ticket.ID, models.PaymentCash, 0)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("zeroes money, clears extras, removes assignments", func(t *testing.T) {
		f := newFixture(t)
		ticket, err := f.machine.Create(ctx, CreateInput{
			ServiceID: f.service.ID,
			Extras:    []models.Extra{{Description: "Wax", Price: 15, Commission: 5}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a", "emp-b"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}

		cancelled, err := f.machine.Cancel(ctx, ticket.ID, "manager:luis")
		if err != nil {
			t.Fatalf("Cancel failed: %v", err)
		}
		if cancelled.Status != models.StatusCancelled {
			t.Errorf("status = %q, want cancelled", cancelled.Status)
		}
		if cancelled.Price != 0 || cancelled.CommissionAmount != 0 {
			t.Errorf("price/commission = %v/%v, want 0/0", cancelled.Price, cancelled.CommissionAmount)
		}
		if len(cancelled.Extras) != 0 {
			t.Errorf("extras = %d, want 0", len(cancelled.Extras))
		}
		if len(cancelled.Assignments) != 0 {
			t.Errorf("assignments = %d, want 0", len(cancelled.Assignments))
		}
		if cancelled.CancelledBy != "manager:luis" {
			t.Errorf("cancelledBy = %q", cancelled.CancelledBy)
		}
		if cancelled.FinishedAt != nil {
			t.Error("finishedAt should be nil after cancellation")
		}
	})

	t.Run("terminal tickets cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if _, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()}); err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
		if _, err := f.machine.Settle(ctx, ticket.ID, models.PaymentCash, 0); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}

		_, err := f.machine.Cancel(ctx, ticket.ID, "admin")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("requires attribution", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		_, err := f.machine.Cancel(ctx, ticket.ID, "")
		if !errors.Is(err, ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})
}

func TestRegressions(t *testing.T) {
	ctx := context.Background()

	t.Run("revert to washing clears finishedAt", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		if _, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()}); err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}

		reverted, err := f.machine.RevertToWashing(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("RevertToWashing failed: %v", err)
		}
		if reverted.Status != models.StatusInProgress {
			t.Errorf("status = %q, want in_progress", reverted.Status)
		}
		if reverted.FinishedAt != nil {
			t.Error("finishedAt should be cleared")
		}
		if reverted.StartedAt == nil {
			t.Error("startedAt should be preserved")
		}
	})

	t.Run("revert to ready keeps finishedAt, clears payment", func(t *testing.T) {
		f := newFixture(t)
		ticket := f.createTicket(t)
		if _, err := f.machine.StartWash(ctx, ticket.ID, []string{"emp-a"}); err != nil {
			t.Fatalf("StartWash failed: %v", err)
		}
		ready, _, err := f.machine.MarkReady(ctx, ticket.ID, ReadyInput{Checklist: allDone()})
		if err != nil {
			t.Fatalf("MarkReady failed: %v", err)
		}
		if _, err := f.machine.Settle(ctx, ticket.ID, models.PaymentCash, 7); err != nil {
			t.Fatalf("Settle failed: %v", err)
		}

		reverted, err := f.machine.RevertToReady(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("RevertToReady failed: %v", err)
		}
		if reverted.Status != models.StatusReady {
			t.Errorf("status = %q, want ready", reverted.Status)
		}
		if reverted.FinishedAt == nil || !reverted.FinishedAt.Equal(*ready.FinishedAt) {
			t.Errorf("finishedAt = %v, want %v", reverted.FinishedAt, ready.FinishedAt)
		}
		if reverted.PaymentMethod != "" || reverted.Tip != 0 {
			t.Errorf("payment not cleared: %q/%v", reverted.PaymentMethod, reverted.Tip)
		}
	})
}

func TestValidTransition(t *testing.T) {
	tests := []struct {
		action string
		from   string
		want   bool
	}{
		{ActionStart, models.StatusWaiting, true},
		{ActionStart, models.StatusReady, false},
		{ActionReady, models.StatusInProgress, true},
		{ActionPay, models.StatusReady, true},
		{ActionPay, models.StatusPaid, false},
		{ActionCancel, models.StatusWaiting, true},
		{ActionCancel, models.StatusInProgress, true},
		{ActionCancel, models.StatusReady, true},
		{ActionCancel, models.StatusPaid, false},
		{ActionCancel, models.StatusCancelled, false},
		{ActionRevertToWashing, models.StatusReady, true},
		{ActionRevertToReady, models.StatusPaid, true},
		{"unknown", models.StatusWaiting, false},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.action, tt.from); got != tt.want {
			t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.action, tt.from, got, tt.want)
		}
	}
}
