// Package productivity derives "cars washed" counts and gamification levels
// for dashboard displays. Counts are fractional: a ticket split among N
// employees gives each of them 1/N credit, so the credit per ticket always
// sums to exactly one.
package productivity

import (
	"fmt"
	"math"

	"github.com/gluislopez/carwash-v2-sub000/internal/models"
)

// FractionalCount sums 1/assignmentCount over the given tickets for one
// employee. Only paid tickets where the employee holds an assignment (or is
// the legacy primary employee) contribute.
func FractionalCount(tickets []models.Ticket, employeeID string) float64 {
	total := 0.0
	for i := range tickets {
		t := &tickets[i]
		if t.Status != models.StatusPaid {
			continue
		}
		if t.IsAssigned(employeeID) {
			total += 1.0 / float64(t.AssignmentCount())
			continue
		}
		if len(t.Assignments) == 0 && t.EmployeeID == employeeID {
			total += 1.0
		}
	}
	return total
}

// canonical fractions rendered by the display layer, ordered for matching.
var canonicalFractions = []struct {
	value float64
	label string
}{
	{0.25, "1/4"},
	{1.0 / 3.0, "1/3"},
	{0.5, "1/2"},
	{2.0 / 3.0, "2/3"},
	{0.75, "3/4"},
}

// fractionTolerance is the nearest-fraction match window.
const fractionTolerance = 0.015

// FormatFraction renders a fractional car count using common fractions
// (halves, thirds, quarters) when the fractional part is within tolerance of
// one, falling back to a two-decimal rendering otherwise.
func FormatFraction(x float64) string {
	whole := math.Floor(x)
	frac := x - whole

	if frac < fractionTolerance {
		return fmt.Sprintf("%d", int(whole))
	}
	if frac > 1-fractionTolerance {
		return fmt.Sprintf("%d", int(whole)+1)
	}

	for _, cf := range canonicalFractions {
		if math.Abs(frac-cf.value) <= fractionTolerance {
			if whole == 0 {
				return cf.label
			}
			return fmt.Sprintf("%d %s", int(whole), cf.label)
		}
	}
	return fmt.Sprintf("%.2f", x)
}
