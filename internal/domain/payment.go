package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTypeInstallment tags a regular payment against installments. The tag
// is informational only.
const PaymentTypeInstallment = "installment"

// Payment is a receipt of money against a deal on a given date.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	DealID      int64           `json:"deal_id" db:"deal_id"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType string          `json:"payment_type" db:"payment_type"`
	Remark      string          `json:"remark" db:"remark"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	Allocations []*PaymentAllocation `json:"allocations,omitempty" db:"-"`
}

// PaymentAllocation links a slice of one payment to one installment, with the
// interest component realized in that slice. Immutable once created.
type PaymentAllocation struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PaymentID       uuid.UUID       `json:"payment_id" db:"payment_id"`
	InstallmentID   uuid.UUID       `json:"installment_id" db:"installment_id"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount" db:"allocated_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}
