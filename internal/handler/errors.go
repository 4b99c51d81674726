package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	// Mapped service error messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgAuthRequired        = "Authentication required"
	ErrMsgForbidden           = "You are not allowed to do that"
	ErrMsgNotFound            = "Resource not found"
	ErrMsgRecipeNotFound      = "Recipe not found"
	ErrMsgIngredientNotFound  = "Ingredient not found"
	ErrMsgOrderNotFound       = "Order not found"
	ErrMsgMenuFull            = "The menu is full"
	ErrMsgInsufficientPayment = "Not enough money for that recipe"
	ErrMsgInsufficientStock   = "Not enough ingredients in stock"
	ErrMsgQuantityOverflow    = "Quantity would exceed the stock limit"
	ErrMsgStorageUnavailable  = "Storage is unavailable. Please try again."

	// Action names used in logs
	ActionCreateIngredient = "Create ingredient"
	ActionRenameIngredient = "Rename ingredient"
	ActionDeleteIngredient = "Delete ingredient"
	ActionCreateRecipe     = "Create recipe"
	ActionUpdateRecipe     = "Update recipe"
	ActionDeleteRecipe     = "Delete recipe"
	ActionRestock          = "Restock"
	ActionSetStock         = "Set stock"
	ActionPurchase         = "Purchase"
	ActionListOrders       = "List orders"
	ActionGetOrder         = "Get order"
	ActionCompleteOrder    = "Complete order"
	ActionPickUpOrder      = "Pick up order"
	ActionStreamOrders     = "Stream orders"
	ActionRegisterUser     = "Register user"
	ActionRead             = "Read"
)

// Success messages for API responses
const (
	MsgRecipeDeleted = "Recipe deleted"
	MsgStockUpdated  = "Stock updated"
)

// Path parameter names
const (
	ParamName = "name"
	ParamID   = "id"
)
