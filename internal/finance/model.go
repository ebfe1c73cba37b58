// File: internal/finance/model.go
package finance

import (
	"time"

	"thrive_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AccountKind distinguishes what an account contributes to net worth.
type AccountKind string

const (
	AccountKindAsset     AccountKind = "asset"
	AccountKindLiability AccountKind = "liability"
)

// Account is a financial account owned by a user. Balances are stored in
// cents to avoid floating point drift.
type Account struct {
	common.BaseModel
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string      `gorm:"type:varchar(120);not null" json:"name"`
	Kind         AccountKind `gorm:"type:varchar(20);not null" json:"kind"`
	BalanceCents int64       `gorm:"not null;default:0" json:"balance_cents"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction is a single ledger entry against an account. Positive amounts
// are outflows (spending); negative amounts are inflows.
type Transaction struct {
	common.BaseModel
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Category    string         `gorm:"type:varchar(80);not null;index" json:"category"`
	Description *string        `gorm:"type:varchar(255)" json:"description,omitempty"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	OccurredAt  time.Time      `gorm:"not null;index" json:"occurred_at"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// NetWorthSnapshot is a point-in-time record of a user's net worth,
// written nightly by the snapshot job.
type NetWorthSnapshot struct {
	common.BaseModel
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_snapshots_user_date" json:"user_id"`
	AssetsCents      int64     `gorm:"not null" json:"assets_cents"`
	LiabilitiesCents int64     `gorm:"not null" json:"liabilities_cents"`
	TotalCents       int64     `gorm:"not null" json:"total_cents"`
	SnapshotDate     time.Time `gorm:"not null;index:idx_snapshots_user_date" json:"snapshot_date"`
}

// TableName specifies the table name for the NetWorthSnapshot model.
func (NetWorthSnapshot) TableName() string {
	return "net_worth_snapshots"
}

// --- DTOs ---

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required,max=120"`
	Kind         string `json:"kind" binding:"required,oneof=asset liability"`
	BalanceCents int64  `json:"balance_cents"`
}

// CreateTransactionRequest is the payload for recording a transaction.
type CreateTransactionRequest struct {
	AccountID   uuid.UUID  `json:"account_id" binding:"required"`
	Category    string     `json:"category" binding:"required,max=80"`
	Description *string    `json:"description" binding:"omitempty,max=255"`
	AmountCents int64      `json:"amount_cents" binding:"required"`
	Tags        []string   `json:"tags" binding:"omitempty,dive,max=40"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// NetWorthPoint is one entry in a net worth series.
type NetWorthPoint struct {
	Date       time.Time `json:"date"`
	TotalCents int64     `json:"total_cents"`
}

// NetWorthSeriesResponse is the dashboard net worth payload.
type NetWorthSeriesResponse struct {
	Range            string          `json:"range"`
	TotalCents       int64           `json:"total_cents"`
	AssetsCents      int64           `json:"assets_cents"`
	LiabilitiesCents int64           `json:"liabilities_cents"`
	ChangeCents      int64           `json:"change_cents"`
	Points           []NetWorthPoint `json:"points"`
}

// CategoryTotal is one category slice of a spending breakdown.
type CategoryTotal struct {
	Category   string `json:"category"`
	TotalCents int64  `json:"total_cents"`
}

// SpendingResponse is the spending page payload.
type SpendingResponse struct {
	Range      string          `json:"range"`
	TotalCents int64           `json:"total_cents"`
	Categories []CategoryTotal `json:"categories"`
}
