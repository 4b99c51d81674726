package catalog

// Log messages
const (
	LogMsgCatalogLoaded      = "Ingredient catalog loaded"
	LogMsgIngredientCreated  = "Ingredient created"
	LogMsgIngredientRenamed  = "Ingredient renamed"
	LogMsgIngredientDeleted  = "Ingredient deleted"
	LogMsgRecipesStripped    = "Ingredient removed from recipes"
	LogMsgInventoryRestocked = "Inventory restocked"
)

// Error detail formats
const (
	ErrFmtIngredientExists   = "%w: ingredient %q"
	ErrFmtIngredientNotFound = "%w: %q"
)
