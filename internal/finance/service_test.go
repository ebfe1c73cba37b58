// File: internal/finance/service_test.go
package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"thrive_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFinanceRepository is an in-memory implementation of Repository.
type fakeFinanceRepository struct {
	accounts      []*Account
	transactions  []*Transaction
	snapshots     []*NetWorthSnapshot
	failSumFor    uuid.UUID
	failSnapshots bool
}

func (r *fakeFinanceRepository) CreateAccount(ctx context.Context, account *Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *fakeFinanceRepository) FindAccountByID(ctx context.Context, userID, accountID uuid.UUID) (*Account, error) {
	for _, a := range r.accounts {
		if a.ID == accountID && a.UserID == userID {
			return a, nil
		}
	}
	return nil, common.ErrNotFound.WithDetails("Account not found.")
}

func (r *fakeFinanceRepository) FindAccountsByUser(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	var out []Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeFinanceRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	r.transactions = append(r.transactions, txn)
	for _, a := range r.accounts {
		if a.ID == txn.AccountID {
			a.BalanceCents -= txn.AmountCents
		}
	}
	return nil
}

func (r *fakeFinanceRepository) FindTransactionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, *common.Pagination, error) {
	var out []Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, common.NewPagination(int64(len(out)), page, pageSize), nil
}

func (r *fakeFinanceRepository) SpendingByCategory(ctx context.Context, userID uuid.UUID, since time.Time) ([]CategoryTotal, error) {
	totals := map[string]int64{}
	var order []string
	for _, t := range r.transactions {
		if t.UserID != userID || t.AmountCents <= 0 || t.OccurredAt.Before(since) {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.AmountCents
	}
	var out []CategoryTotal
	for _, category := range order {
		out = append(out, CategoryTotal{Category: category, TotalCents: totals[category]})
	}
	return out, nil
}

func (r *fakeFinanceRepository) SumBalancesByKind(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	if userID == r.failSumFor {
		return 0, 0, errors.New("store is down")
	}
	var assets, liabilities int64
	for _, a := range r.accounts {
		if a.UserID != userID {
			continue
		}
		switch a.Kind {
		case AccountKindAsset:
			assets += a.BalanceCents
		case AccountKindLiability:
			liabilities += a.BalanceCents
		}
	}
	return assets, liabilities, nil
}

func (r *fakeFinanceRepository) CreateSnapshot(ctx context.Context, snapshot *NetWorthSnapshot) error {
	if r.failSnapshots {
		return errors.New("store is down")
	}
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func (r *fakeFinanceRepository) FindSnapshots(ctx context.Context, userID uuid.UUID, since time.Time) ([]NetWorthSnapshot, error) {
	var out []NetWorthSnapshot
	for _, s := range r.snapshots {
		if s.UserID == userID && !s.SnapshotDate.Before(since) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeFinanceRepository) UserIDsWithAccounts(ctx context.Context) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, a := range r.accounts {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			ids = append(ids, a.UserID)
		}
	}
	return ids, nil
}

func newTestFinanceService(repo Repository) *ServiceImplementation {
	return NewService(repo, zap.NewNop())
}

func TestNetWorthSeries(t *testing.T) {
	repo := &fakeFinanceRepository{}
	svc := newTestFinanceService(repo)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.CreateAccount(ctx, userID, CreateAccountRequest{Name: "Checking", Kind: "asset", BalanceCents: 500_00})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, userID, CreateAccountRequest{Name: "Card", Kind: "liability", BalanceCents: 120_00})
	require.NoError(t, err)

	repo.snapshots = append(repo.snapshots, &NetWorthSnapshot{
		UserID:       userID,
		TotalCents:   300_00,
		SnapshotDate: time.Now().UTC().AddDate(0, 0, -3),
	})

	series, err := svc.NetWorthSeries(ctx, userID, "1m")
	require.NoError(t, err)
	assert.Equal(t, "1m", series.Range)
	assert.Equal(t, int64(380_00), series.TotalCents, "assets minus liabilities")
	assert.Equal(t, int64(80_00), series.ChangeCents, "change from the oldest snapshot in range")
	require.Len(t, series.Points, 2)
	assert.Equal(t, int64(380_00), series.Points[len(series.Points)-1].TotalCents, "live total is the last point")
}

func TestNetWorthSeriesDefaultsAndRejectsRange(t *testing.T) {
	repo := &fakeFinanceRepository{}
	svc := newTestFinanceService(repo)
	ctx := context.Background()
	userID := uuid.New()

	series, err := svc.NetWorthSeries(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, RangeOneMonth, series.Range)

	_, err = svc.NetWorthSeries(ctx, userID, "6m")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestSpendingBreakdown(t *testing.T) {
	repo := &fakeFinanceRepository{}
	svc := newTestFinanceService(repo)
	ctx := context.Background()
	userID := uuid.New()

	account, err := svc.CreateAccount(ctx, userID, CreateAccountRequest{Name: "Checking", Kind: "asset", BalanceCents: 1000_00})
	require.NoError(t, err)

	spend := func(category string, cents int64, daysAgo int) {
		occurred := time.Now().UTC().AddDate(0, 0, -daysAgo)
		_, err := svc.RecordTransaction(ctx, userID, CreateTransactionRequest{
			AccountID:   account.ID,
			Category:    category,
			AmountCents: cents,
			OccurredAt:  &occurred,
			Tags:        []string{"test"},
		})
		require.NoError(t, err)
	}
	spend("groceries", 50_00, 2)
	spend("groceries", 30_00, 5)
	spend("transport", 20_00, 1)
	spend("groceries", 99_00, 200) // outside the 1m window
	spend("refund", -15_00, 1)     // inflow, not spending

	breakdown, err := svc.SpendingBreakdown(ctx, userID, "1m")
	require.NoError(t, err)
	assert.Equal(t, int64(100_00), breakdown.TotalCents)
	assert.ElementsMatch(t, []CategoryTotal{
		{Category: "groceries", TotalCents: 80_00},
		{Category: "transport", TotalCents: 20_00},
	}, breakdown.Categories)
}

func TestRecordTransactionRequiresOwnedAccount(t *testing.T) {
	repo := &fakeFinanceRepository{}
	svc := newTestFinanceService(repo)
	ctx := context.Background()

	owner := uuid.New()
	account, err := svc.CreateAccount(ctx, owner, CreateAccountRequest{Name: "Checking", Kind: "asset"})
	require.NoError(t, err)

	_, err = svc.RecordTransaction(ctx, uuid.New(), CreateTransactionRequest{
		AccountID:   account.ID,
		Category:    "groceries",
		AmountCents: 10_00,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound), "another user's account must look nonexistent")
}

func TestSnapshotAllUsersContinuesPastFailures(t *testing.T) {
	repo := &fakeFinanceRepository{}
	svc := newTestFinanceService(repo)
	ctx := context.Background()

	healthy := uuid.New()
	broken := uuid.New()
	_, err := svc.CreateAccount(ctx, broken, CreateAccountRequest{Name: "Savings", Kind: "asset", BalanceCents: 10_00})
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, healthy, CreateAccountRequest{Name: "Checking", Kind: "asset", BalanceCents: 42_00})
	require.NoError(t, err)
	repo.failSumFor = broken

	at := time.Now().UTC()
	written, err := svc.SnapshotAllUsers(ctx, at)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	require.Len(t, repo.snapshots, 1)
	assert.Equal(t, healthy, repo.snapshots[0].UserID)
	assert.Equal(t, int64(42_00), repo.snapshots[0].TotalCents)
	assert.Equal(t, at, repo.snapshots[0].SnapshotDate)
}
