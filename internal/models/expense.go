package models

import "time"

// Expense categories. Lunch expenses reduce the attributed employee's net
// payable; product expenses reduce business net profit only and are never
// attributed to an individual employee.
const (
	ExpenseLunch   = "lunch"
	ExpenseProduct = "product"
)

// Expense is a business outlay for a given day. EmployeeID is set only for
// lunch expenses.
type Expense struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note,omitempty"`
	Date       time.Time `json:"date"`
}

// ValidExpenseCategory reports whether c is a known expense category.
func ValidExpenseCategory(c string) bool {
	return c == ExpenseLunch || c == ExpenseProduct
}
