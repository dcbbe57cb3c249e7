package models

// User is a row of the users table.
type User struct {
	UserID       int64   `db:"id"`
	Email        string  `db:"email"`
	Name         *string `db:"name"`
	Role         string  `db:"role"`
	PasswordHash *string `db:"password_hash"`
	AuditFields
}

// ClientUser is a users row joined through user_clients.
type ClientUser struct {
	ClientID int64 `db:"client_id"`
	User
}
