package models

// User represents an account in the user directory.
//
// Users are referenced by expenses (as payer), by expense shares (as debtor),
// by groups (as member) and by friendships. Deleting users is not offered:
// nothing in the schema cascades user removal into expenses or shares.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Password is stored exactly as supplied at creation.
	// It is never serialized into API responses.
	Password string `json:"-"`

	// Email is the user's contact address.
	Email string `json:"email"`

	// FirstName and LastName are optional display fields.
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// ProfilePicture is an optional reference to an avatar image.
	ProfilePicture string `json:"profilePicture,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}
