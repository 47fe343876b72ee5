package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Installment is one scheduled obligation within a deal. PendingAmount starts
// equal to Amount and only ever decreases; pending <= 0 means settled.
type Installment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	DealID        int64           `json:"deal_id" db:"deal_id"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PendingAmount decimal.Decimal `json:"pending_amount" db:"pending_amount"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`

	// LastPaymentDate is the payment date of the installment's most recent
	// allocation, populated on unpaid-installment reads. It shifts the
	// installment's interest base forward as partial payments land.
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty" db:"last_payment_date"`
}

// Unpaid reports whether the installment still carries a pending balance.
func (i *Installment) Unpaid() bool {
	return i.PendingAmount.GreaterThan(decimal.Zero)
}

// InterestBase returns the date the installment's current unpaid balance has
// been accruing from: the last payment against it, else the deal start date.
func (i *Installment) InterestBase(dealDate time.Time) time.Time {
	if i.LastPaymentDate != nil {
		return *i.LastPaymentDate
	}
	return dealDate
}
