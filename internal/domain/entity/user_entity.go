package entity

// User is the account aggregate.
// ID is the login identifier chosen at signup, not a store-generated key.
// Password holds a bcrypt hash, never the plain text.
type User struct {
	ID       string `json:"id"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
