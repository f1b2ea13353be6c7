package models

// Member represents a registered account.
type Member struct {
	// ID is the unique identifier for the member.
	// Seeded members use short numeric IDs, registered members get a UUID.
	ID string

	// Name is the display name of the member.
	Name string

	// Email is the member's login address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the member's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the member registered.
	CreatedAt int64
}
