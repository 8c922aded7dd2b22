package models

// User represents a registered account. The password column stores a
// bcrypt hash, never the plaintext.
type User struct {
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Omit from JSON output for security
}

// Credentials defines the structure for login and registration requests.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TodoItem represents one row of the todo table.
//
// Work is optional; a nil pointer maps to NULL. StartDate and EndDate may
// be zero on input, in which case the storage layer applies its defaults
// (today and the no-deadline sentinel). UpdateDate is always assigned by
// the storage layer, never by the caller.
type TodoItem struct {
	ID         uint32  `json:"id"`
	UserName   string  `json:"user_name"`
	Title      string  `json:"title"`
	Work       *string `json:"work,omitempty"`
	UpdateDate Date    `json:"update_date"`
	StartDate  Date    `json:"start_date"`
	EndDate    Date    `json:"end_date"`
	Done       bool    `json:"done"`
}
