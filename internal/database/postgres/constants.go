package postgres

// uniqueViolation is the SQLSTATE for a duplicate key
const uniqueViolation = "23505"

// Error Messages
const (
	ErrMsgDuplicateIngredient = "ingredient"
	ErrMsgDuplicateUser       = "user"
)
