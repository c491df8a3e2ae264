package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/ledgergrid/internal/database/repository"
)

// DefaultAccounts are created on first start.
var DefaultAccounts = []repository.Account{
	{Name: "Everyday", Institution: "ANZ", AccountType: "checking"},
	{Name: "Credit Card", Institution: "ANZ", AccountType: "credit"},
	{Name: "Online Saver", Institution: "ING", AccountType: "savings"},
}

// AccountID derives a stable id from an account name.
func AccountID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("acct:"+name)).String()
}

// SeedDefaults ensures baseline accounts exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	accounts := repository.NewAccountRepo(db)
	existing, err := accounts.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	for _, a := range DefaultAccounts {
		a.ID = AccountID(a.Name)
		if err := accounts.Upsert(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
