package recipe

// Log messages
const (
	LogMsgBookLoaded     = "Recipe book loaded"
	LogMsgRecipeCreated  = "Recipe created"
	LogMsgRecipeUpdated  = "Recipe updated"
	LogMsgRecipeDeleted  = "Recipe deleted"
	LogMsgCapacityReject = "Recipe book is full"
)

// Error detail formats
const (
	ErrFmtRecipeExists   = "%w: recipe %q"
	ErrFmtRecipeNotFound = "%w: %q"
	ErrFmtCapacity       = "%w: recipe book holds at most %d recipes"
	ErrFmtUnknownIngr    = "%w: %s %q"
)
