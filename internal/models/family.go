package models

// Family groups a titular member with dependents under a discounted plan.
type Family struct {
	ID       string  `db:"id" json:"id"`
	LastName string  `db:"last_name" json:"last_name"`
	Discount float64 `db:"discount" json:"discount"`
}
