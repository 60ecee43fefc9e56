package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db.internal:3306)/reservations?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn("app", "secret", "db.internal", "3306", "reservations"))
}

func TestDSNWithoutPassword(t *testing.T) {
	// No colon may appear when the account has no password.
	assert.Equal(t,
		"root@tcp(localhost:3306)/reservations?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn("root", "", "localhost", "3306", "reservations"))
}
