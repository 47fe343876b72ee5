package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LedgerEntryInstallment = "installment"
	LedgerEntryPayment     = "payment"
)

// LedgerEntry is one row of a deal's combined installment/payment ledger.
// Payment amounts are negative. Balance is a running figure seeded at the
// deal's total amount.
type LedgerEntry struct {
	ID          uuid.UUID        `json:"id"`
	Date        string           `json:"date"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Pending     *decimal.Decimal `json:"pending,omitempty"`
	Balance     decimal.Decimal  `json:"balance"`
}

type LedgerResponse struct {
	Deal   *Deal          `json:"deal"`
	Ledger []*LedgerEntry `json:"ledger"`
}
