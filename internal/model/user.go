package model

import "time"

// User is an administrator account for the back office.  Accounts are
// provisioned directly in the database; there is no self-registration.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email, stored lowercased.
//  PasswordHash – bcrypt hash of the password.
//  Role         – account role (ADMIN).
//  IsActive     – soft-disable flag.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
