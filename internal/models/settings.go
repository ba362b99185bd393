package models

// Settings is the singleton configuration record for the location, keyed by
// name in the store and mutated via upsert. Writes are rare and idempotent.
type Settings struct {
	DailyTarget float64 `json:"daily_target"`
	ReviewLink  string  `json:"review_link"`
	PaymentLink string  `json:"stripe_link"`
}
