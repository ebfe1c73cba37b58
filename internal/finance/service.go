// File: internal/finance/service.go
package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thrive_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Supported dashboard ranges.
const (
	RangeOneWeek     = "1w"
	RangeOneMonth    = "1m"
	RangeThreeMonths = "3m"
	RangeYearToDate  = "ytd"
	RangeOneYear     = "1y"
)

// Service defines the interface for finance business logic.
type Service interface {
	CreateAccount(ctx context.Context, userID uuid.UUID, req CreateAccountRequest) (*Account, error)
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]Account, error)
	RecordTransaction(ctx context.Context, userID uuid.UUID, req CreateTransactionRequest) (*Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, *common.Pagination, error)
	NetWorthSeries(ctx context.Context, userID uuid.UUID, rng string) (*NetWorthSeriesResponse, error)
	SpendingBreakdown(ctx context.Context, userID uuid.UUID, rng string) (*SpendingResponse, error)
	SnapshotAllUsers(ctx context.Context, at time.Time) (int, error)
}

// ServiceImplementation provides finance business logic.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new finance service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

func (s *ServiceImplementation) CreateAccount(ctx context.Context, userID uuid.UUID, req CreateAccountRequest) (*Account, error) {
	account := &Account{
		UserID:       userID,
		Name:         req.Name,
		Kind:         AccountKind(req.Kind),
		BalanceCents: req.BalanceCents,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		s.logger.Error("Failed to create account", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not create account at this time.")
	}
	return account, nil
}

func (s *ServiceImplementation) ListAccounts(ctx context.Context, userID uuid.UUID) ([]Account, error) {
	accounts, err := s.repo.FindAccountsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list accounts", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load accounts at this time.")
	}
	return accounts, nil
}

func (s *ServiceImplementation) RecordTransaction(ctx context.Context, userID uuid.UUID, req CreateTransactionRequest) (*Transaction, error) {
	// The account must exist and belong to the caller.
	if _, err := s.repo.FindAccountByID(ctx, userID, req.AccountID); err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		s.logger.Error("Failed to check account ownership", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not record transaction at this time.")
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}
	txn := &Transaction{
		UserID:      userID,
		AccountID:   req.AccountID,
		Category:    req.Category,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Tags:        req.Tags,
		OccurredAt:  occurredAt,
	}
	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		s.logger.Error("Failed to record transaction", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not record transaction at this time.")
	}
	return txn, nil
}

func (s *ServiceImplementation) ListTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]Transaction, *common.Pagination, error) {
	transactions, pagination, err := s.repo.FindTransactionsByUser(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list transactions", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not load transactions at this time.")
	}
	return transactions, pagination, nil
}

func (s *ServiceImplementation) NetWorthSeries(ctx context.Context, userID uuid.UUID, rng string) (*NetWorthSeriesResponse, error) {
	rng, since, err := resolveRange(rng, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	assets, liabilities, err := s.repo.SumBalancesByKind(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to sum balances", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load net worth at this time.")
	}
	total := assets - liabilities

	snapshots, err := s.repo.FindSnapshots(ctx, userID, since)
	if err != nil {
		s.logger.Error("Failed to load snapshots", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load net worth at this time.")
	}

	points := make([]NetWorthPoint, 0, len(snapshots)+1)
	for _, snap := range snapshots {
		points = append(points, NetWorthPoint{Date: snap.SnapshotDate, TotalCents: snap.TotalCents})
	}
	// The live total is always the last point of the series.
	points = append(points, NetWorthPoint{Date: time.Now().UTC(), TotalCents: total})

	change := int64(0)
	if len(snapshots) > 0 {
		change = total - snapshots[0].TotalCents
	}

	return &NetWorthSeriesResponse{
		Range:            rng,
		TotalCents:       total,
		AssetsCents:      assets,
		LiabilitiesCents: liabilities,
		ChangeCents:      change,
		Points:           points,
	}, nil
}

func (s *ServiceImplementation) SpendingBreakdown(ctx context.Context, userID uuid.UUID, rng string) (*SpendingResponse, error) {
	rng, since, err := resolveRange(rng, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.SpendingByCategory(ctx, userID, since)
	if err != nil {
		s.logger.Error("Failed to aggregate spending", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, common.ErrServiceUnavailable.WithDetails("Could not load spending at this time.")
	}

	var total int64
	for _, ct := range categories {
		total += ct.TotalCents
	}
	return &SpendingResponse{Range: rng, TotalCents: total, Categories: categories}, nil
}

// SnapshotAllUsers writes one net worth snapshot per account-holding user.
// A failure for one user is logged and does not stop the others.
func (s *ServiceImplementation) SnapshotAllUsers(ctx context.Context, at time.Time) (int, error) {
	userIDs, err := s.repo.UserIDsWithAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list account holders: %w", err)
	}

	written := 0
	for _, userID := range userIDs {
		assets, liabilities, err := s.repo.SumBalancesByKind(ctx, userID)
		if err != nil {
			s.logger.Error("Snapshot: failed to sum balances", zap.Error(err), zap.String("user_id", userID.String()))
			continue
		}
		snapshot := &NetWorthSnapshot{
			UserID:           userID,
			AssetsCents:      assets,
			LiabilitiesCents: liabilities,
			TotalCents:       assets - liabilities,
			SnapshotDate:     at,
		}
		if err := s.repo.CreateSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("Snapshot: failed to write snapshot", zap.Error(err), zap.String("user_id", userID.String()))
			continue
		}
		written++
	}
	return written, nil
}

// resolveRange maps a dashboard range token to its start time. An empty
// token defaults to one month; an unknown token is a bad request.
func resolveRange(rng string, now time.Time) (string, time.Time, error) {
	if rng == "" {
		rng = RangeOneMonth
	}
	switch rng {
	case RangeOneWeek:
		return rng, now.AddDate(0, 0, -7), nil
	case RangeOneMonth:
		return rng, now.AddDate(0, -1, 0), nil
	case RangeThreeMonths:
		return rng, now.AddDate(0, -3, 0), nil
	case RangeYearToDate:
		return rng, time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	case RangeOneYear:
		return rng, now.AddDate(-1, 0, 0), nil
	default:
		return "", time.Time{}, common.ErrBadRequest.WithDetails("Unknown range. Use one of: 1w, 1m, 3m, ytd, 1y.")
	}
}
