// Package reporting derives period summaries from stored tickets and
// expenses. Nothing here trusts a cached commission figure: every view
// re-runs the allocation engine over the tickets it loads.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gluislopez/carwash-v2-sub000/internal/allocation"
	"github.com/gluislopez/carwash-v2-sub000/internal/models"
	"github.com/gluislopez/carwash-v2-sub000/internal/productivity"
	"github.com/gluislopez/carwash-v2-sub000/internal/storage"
)

// Reporter computes business and payroll figures for a period.
type Reporter struct {
	store storage.Store

	// clampNegativeNet controls whether an employee's net payable floors
	// at zero when lunch deductions exceed earnings. Whether negative net
	// is debt carried forward or an oversight is an unresolved business
	// question, so it stays configurable.
	clampNegativeNet bool
}

// NewReporter creates a Reporter over the given store.
func NewReporter(store storage.Store, clampNegativeNet bool) *Reporter {
	return &Reporter{store: store, clampNegativeNet: clampNegativeNet}
}

// BusinessSummary is the admin-facing aggregate for a period.
type BusinessSummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TicketsPaid      int     `json:"tickets_paid"`
	TicketsCancelled int     `json:"tickets_cancelled"`
	TotalIncome      float64 `json:"total_income"`
	TotalTips        float64 `json:"total_tips"`
	// TotalCommissionCost is commission + tip across paid tickets,
	// independent of how many employees split each one.
	TotalCommissionCost float64 `json:"total_commission_cost"`
	ProductExpenses     float64 `json:"product_expenses"`
	LunchExpenses       float64 `json:"lunch_expenses"`
	NetProfit           float64 `json:"net_profit"`
	DailyTarget         float64 `json:"daily_target"`
}

// PayrollRow is one employee's payable for a period.
type PayrollRow struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name,omitempty"`
	Gross      float64 `json:"gross"`
	Lunches    float64 `json:"lunches"`
	Net        float64 `json:"net"`
	CarsWashed float64 `json:"cars_washed"`
	CarsLabel  string  `json:"cars_label"`
}

// LevelRow is one employee's gamification standing.
type LevelRow struct {
	EmployeeID string  `json:"employee_id"`
	Name       string  `json:"name"`
	XP         int     `json:"xp"`
	Level      string  `json:"level"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	Progress   float64 `json:"progress"`
}

// Summary computes the business aggregate for [from, to).
func (r *Reporter) Summary(ctx context.Context, from, to time.Time) (*BusinessSummary, error) {
	tickets, err := r.store.ListTickets(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	expenses, err := r.store.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	settings, err := r.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	summary := &BusinessSummary{From: from, To: to, DailyTarget: settings.DailyTarget}
	for i := range tickets {
		t := &tickets[i]
		switch t.Status {
		case models.StatusPaid:
			summary.TicketsPaid++
			summary.TotalIncome += t.TotalPrice()
			summary.TotalTips += t.Tip
			summary.TotalCommissionCost += allocation.BusinessCost(t)
		case models.StatusCancelled:
			summary.TicketsCancelled++
		}
	}
	for _, e := range expenses {
		switch e.Category {
		case models.ExpenseProduct:
			summary.ProductExpenses += e.Amount
		case models.ExpenseLunch:
			summary.LunchExpenses += e.Amount
		}
	}

	// Lunches come out of employee payables, not business profit.
	summary.NetProfit = summary.TotalIncome - summary.TotalCommissionCost - summary.ProductExpenses
	return summary, nil
}

// Payroll computes every employee's net payable for [from, to): allocation
// shares over paid tickets minus that employee's lunch expenses.
func (r *Reporter) Payroll(ctx context.Context, from, to time.Time) ([]PayrollRow, error) {
	tickets, err := r.store.ListTickets(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	expenses, err := r.store.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	gross := make(map[string]float64)
	for i := range tickets {
		t := &tickets[i]
		if t.Status != models.StatusPaid {
			continue
		}
		for employeeID, share := range allocation.Shares(t) {
			gross[employeeID] += share.Total
		}
	}

	lunches := make(map[string]float64)
	for _, e := range expenses {
		if e.Category == models.ExpenseLunch && e.EmployeeID != "" {
			lunches[e.EmployeeID] += e.Amount
		}
	}

	// An employee with lunches but no earnings still gets a row.
	for employeeID := range lunches {
		if _, ok := gross[employeeID]; !ok {
			gross[employeeID] = 0
		}
	}

	names := r.employeeNames(ctx)

	rows := make([]PayrollRow, 0, len(gross))
	for employeeID, amount := range gross {
		count := productivity.FractionalCount(tickets, employeeID)
		rows = append(rows, PayrollRow{
			EmployeeID: employeeID,
			Name:       names[employeeID],
			Gross:      amount,
			Lunches:    lunches[employeeID],
			Net:        allocation.NetPayable(amount, lunches[employeeID], r.clampNegativeNet),
			CarsWashed: count,
			CarsLabel:  productivity.FormatFraction(count),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })
	return rows, nil
}

// VisibleRows filters payroll rows for a viewer. Admins and managers see
// everything; an employee sees only their own row. The arithmetic is the
// same either way.
func VisibleRows(rows []PayrollRow, viewer *models.Employee) []PayrollRow {
	if viewer == nil || viewer.CanViewAggregates() {
		return rows
	}
	for _, row := range rows {
		if row.EmployeeID == viewer.ID {
			return []PayrollRow{row}
		}
	}
	return nil
}

// LevelBoard computes every employee's gamification standing from lifetime
// assignment counts.
func (r *Reporter) LevelBoard(ctx context.Context) ([]LevelRow, error) {
	employees, err := r.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	rows := make([]LevelRow, 0, len(employees))
	for _, employee := range employees {
		xp, err := r.store.CountAssignments(ctx, employee.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count assignments: %w", err)
		}
		level := productivity.LevelFor(xp)
		rows = append(rows, LevelRow{
			EmployeeID: employee.ID,
			Name:       employee.Name,
			XP:         xp,
			Level:      level.Name,
			Icon:       level.Icon,
			Color:      level.Color,
			Progress:   productivity.ProgressToNext(xp),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].XP > rows[j].XP })
	return rows, nil
}

func (r *Reporter) employeeNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	employees, err := r.store.ListEmployees(ctx)
	if err != nil {
		return names
	}
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names
}
