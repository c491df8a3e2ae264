package repository

import "time"

// Account represents an account row.
type Account struct {
	ID          string
	Name        string
	Institution string
	AccountType string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Transaction statuses.
const (
	StatusPosted  = "posted"
	StatusPending = "pending"
	StatusVoid    = "void"
)

// Transaction represents a transaction row joined with its account name.
type Transaction struct {
	ID             string
	AccountID      string
	AccountName    string
	Date           time.Time
	AmountCents    int64
	RawDescription string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ViewConfig is a stored column view, encoded as JSON.
type ViewConfig struct {
	Key       string
	State     string
	UpdatedAt time.Time
}
