package allocation

// FloorConfig is the minimum shared-commission rule for multi-employee
// tickets. When the base price falls inside [BandMin, BandMax] and more than
// one employee is assigned, the shared commission is raised to Minimum if the
// configured commission for the service is lower, so each splitting employee
// receives at least a reasonable per-head amount. The band and floor are
// observed business constants, not a general formula; treat them as
// configuration.
type FloorConfig struct {
	BandMin float64
	BandMax float64
	Minimum float64
}

// DefaultFloor carries the constants in production use: $35-$55 band, $12
// minimum total.
var DefaultFloor = FloorConfig{BandMin: 35, BandMax: 55, Minimum: 12}

// Apply returns the commission to use for a ticket with base price, the
// configured commission, and n assigned employees. The rule fires only at
// assignment time (waiting -> in_progress) and is not recomputed afterward
// even if the assignment count later changes.
func (f FloorConfig) Apply(price, commission float64, n int) float64 {
	if n <= 1 {
		return commission
	}
	if price < f.BandMin || price > f.BandMax {
		return commission
	}
	if commission < f.Minimum {
		return f.Minimum
	}
	return commission
}
