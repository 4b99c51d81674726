package domain

import "time"

// Order is the record of a settled purchase. RecipeName and Price are a
// snapshot taken at purchase time so the order survives recipe deletion.
// Complete and PickedUp only ever move from false to true.
type Order struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	RecipeName   string    `json:"recipe_name"`
	Price        int       `json:"price"`
	AmountPaid   int       `json:"amount_paid"`
	Change       int       `json:"change"`
	Complete     bool      `json:"complete"`
	PickedUp     bool      `json:"picked_up"`
	CreatedAt    time.Time `json:"created_at"`
}
