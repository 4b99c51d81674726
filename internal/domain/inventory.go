package domain

// StockEntry is one ledger line
type StockEntry struct {
	Ingredient IngredientName `json:"ingredient"`
	Quantity   int            `json:"quantity"`
}
