package db

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. Accounts are created from the CLI only.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SearchEntry is one row of the append-only search log
type SearchEntry struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}
