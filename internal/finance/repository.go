// File: internal/finance/repository.go
package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thrive_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for finance data operations.
type Repository interface {
	CreateAccount(ctx context.Context, account *Account) error
	FindAccountByID(ctx context.Context, userID, accountID uuid.UUID) (*Account, error)
	FindAccountsByUser(ctx context.Context, userID uuid.UUID) ([]Account, error)
	CreateTransaction(ctx context.Context, txn *Transaction) error
	FindTransactionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, *common.Pagination, error)
	SpendingByCategory(ctx context.Context, userID uuid.UUID, since time.Time) ([]CategoryTotal, error)
	SumBalancesByKind(ctx context.Context, userID uuid.UUID) (assets int64, liabilities int64, err error)
	CreateSnapshot(ctx context.Context, snapshot *NetWorthSnapshot) error
	FindSnapshots(ctx context.Context, userID uuid.UUID, since time.Time) ([]NetWorthSnapshot, error)
	UserIDsWithAccounts(ctx context.Context) ([]uuid.UUID, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM finance repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateAccount(ctx context.Context, account *Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *gormRepository) FindAccountByID(ctx context.Context, userID, accountID uuid.UUID) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Account not found.")
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

func (r *gormRepository) FindAccountsByUser(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	var accounts []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateTransaction inserts the transaction and adjusts the account balance
// in a single database transaction.
func (r *gormRepository) CreateTransaction(ctx context.Context, txn *Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		// Outflows are positive, so they reduce the balance.
		err := tx.Model(&Account{}).
			Where("id = ? AND user_id = ?", txn.AccountID, txn.UserID).
			UpdateColumn("balance_cents", gorm.Expr("balance_cents - ?", txn.AmountCents)).Error
		if err != nil {
			return fmt.Errorf("failed to adjust account balance: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) FindTransactionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, *common.Pagination, error) {
	var transactions []Transaction
	var totalItems int64

	query := r.db.WithContext(ctx).Model(&Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	pagination := common.NewPagination(totalItems, page, pageSize)
	err := query.Order("occurred_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&transactions).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, pagination, nil
}

func (r *gormRepository) SpendingByCategory(ctx context.Context, userID uuid.UUID, since time.Time) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("category, SUM(amount_cents) AS total_cents").
		Where("user_id = ? AND occurred_at >= ? AND amount_cents > 0", userID, since).
		Group("category").
		Order("total_cents DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spending: %w", err)
	}
	return totals, nil
}

func (r *gormRepository) SumBalancesByKind(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	type kindTotal struct {
		Kind       AccountKind
		TotalCents int64
	}
	var rows []kindTotal
	err := r.db.WithContext(ctx).Model(&Account{}).
		Select("kind, SUM(balance_cents) AS total_cents").
		Where("user_id = ?", userID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum account balances: %w", err)
	}
	var assets, liabilities int64
	for _, row := range rows {
		switch row.Kind {
		case AccountKindAsset:
			assets = row.TotalCents
		case AccountKindLiability:
			liabilities = row.TotalCents
		}
	}
	return assets, liabilities, nil
}

func (r *gormRepository) CreateSnapshot(ctx context.Context, snapshot *NetWorthSnapshot) error {
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("failed to create net worth snapshot: %w", err)
	}
	return nil
}

func (r *gormRepository) FindSnapshots(ctx context.Context, userID uuid.UUID, since time.Time) ([]NetWorthSnapshot, error) {
	var snapshots []NetWorthSnapshot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND snapshot_date >= ?", userID, since).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list net worth snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *gormRepository) UserIDsWithAccounts(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Account{}).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list account holders: %w", err)
	}
	return ids, nil
}
