package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/ledgergrid/internal/database"
	"github.com/jask/ledgergrid/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Accounts     *repository.AccountRepo
	Transactions *repository.TransactionRepo
}

var descriptions = []string{
	"UBER EATS* SUSHI",
	"AMAZON.COM*XYZ",
	"WOOLWORTHS METRO",
	"SPOTIFY P1234",
	"SALARY ACME PTY",
	"DAN MURPHY'S SPOTSWOOD",
	"PAYMENT THANKYOU",
	"COLES EXPRESS",
}

// Seed creates count sample transactions spread over the default accounts.
// The same seed always produces the same rows and ids.
func Seed(ctx context.Context, repos Repos, count int, seed int64) error {
	accounts := make([]string, len(database.DefaultAccounts))
	for i, a := range database.DefaultAccounts {
		a.ID = database.AccountID(a.Name)
		if err := repos.Accounts.Upsert(ctx, a); err != nil {
			return err
		}
		accounts[i] = a.ID
	}

	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		status := repository.StatusPosted
		switch n := rng.Intn(10); {
		case n < 2:
			status = repository.StatusPending
		case n == 2:
			status = repository.StatusVoid
		}
		amount := int64(rng.Intn(20000) + 500)
		if rng.Intn(5) > 0 {
			amount = -amount
		}
		tx := repository.Transaction{
			ID:             uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("txn:%d:%d", seed, i))).String(),
			AccountID:      accounts[rng.Intn(len(accounts))],
			Date:           start.AddDate(0, 0, rng.Intn(60)),
			AmountCents:    amount,
			RawDescription: descriptions[rng.Intn(len(descriptions))],
			Status:         status,
		}
		if err := repos.Transactions.Insert(ctx, tx); err != nil {
			return fmt.Errorf("insert sample %d: %w", i, err)
		}
	}
	return nil
}
