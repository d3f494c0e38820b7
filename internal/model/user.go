package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted credential record. PasswordHash is excluded from JSON
// at the type level so no handler can leak it by serializing a User.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
