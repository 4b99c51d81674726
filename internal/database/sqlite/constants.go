package sqlite

// DefaultPath is used when no database file is configured
const DefaultPath = "coffeepos.db"

// dsnPragmas enables foreign keys and waits on a busy database
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Error Messages
const (
	ErrMsgOpen                = "open sqlite"
	ErrMsgDuplicateIngredient = "ingredient"
	ErrMsgDuplicateUser       = "user"
)
