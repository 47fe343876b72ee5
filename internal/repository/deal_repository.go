package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/deal-ledger/internal/domain"
)

type dealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	query := `
		INSERT INTO deals (dealer_id, customer_name, total_amount, interest_rate, deal_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING deal_id, created_at
	`

	row := ext(ctx, r.db).QueryRowxContext(ctx, query,
		deal.DealerID,
		deal.CustomerName,
		deal.TotalAmount,
		deal.InterestRate,
		deal.DealDate,
		deal.Status,
	)

	return row.Scan(&deal.DealID, &deal.CreatedAt)
}

const dealColumns = `deal_id, dealer_id, customer_name, total_amount, interest_rate, deal_date, status, created_at`

func (r *dealRepository) GetByDealID(ctx context.Context, dealID int64) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1`

	var deal domain.Deal
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &deal, query, dealID)
	if err != nil {
		return nil, err
	}

	return &deal, nil
}

func (r *dealRepository) GetByDealIDForUpdate(ctx context.Context, dealID int64) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1 FOR UPDATE`

	var deal domain.Deal
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &deal, query, dealID)
	if err != nil {
		return nil, err
	}

	return &deal, nil
}

func (r *dealRepository) GetActiveByDealerAndCustomer(ctx context.Context, dealerID uuid.UUID, customerName string) ([]*domain.Deal, error) {
	// Oldest deal first; deal_id breaks deal-date ties so the allocation
	// priority is deterministic.
	query := `
		SELECT ` + dealColumns + `
		FROM deals
		WHERE dealer_id = $1 AND customer_name = $2 AND status = $3
		ORDER BY deal_date ASC, deal_id ASC
	`

	var deals []*domain.Deal
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &deals, query, dealerID, customerName, domain.DealStatusActive)
	if err != nil {
		return nil, err
	}

	return deals, nil
}

func (r *dealRepository) ListActive(ctx context.Context) ([]*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE status = $1 ORDER BY deal_id`

	var deals []*domain.Deal
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &deals, query, domain.DealStatusActive)
	if err != nil {
		return nil, err
	}

	return deals, nil
}

func (r *dealRepository) UpdateStatus(ctx context.Context, dealID int64, status string) error {
	query := `UPDATE deals SET status = $2 WHERE deal_id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, dealID, status)
	return err
}

func (r *dealRepository) CreateInstallments(ctx context.Context, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (id, deal_id, due_date, amount, pending_amount)
		VALUES ($1, $2, $3, $4, $5)
	`

	e := ext(ctx, r.db)
	for _, inst := range installments {
		_, err := e.ExecContext(ctx, query,
			inst.ID,
			inst.DealID,
			inst.DueDate,
			inst.Amount,
			inst.PendingAmount,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// installmentQuery pulls the date of the most recent payment allocated to
// each installment; that date is the installment's interest base once any
// payment has landed on it.
const installmentQuery = `
	SELECT i.id, i.deal_id, i.due_date, i.amount, i.pending_amount, i.created_at,
	       (SELECT MAX(p.payment_date)
	          FROM payment_allocations pa
	          JOIN payments p ON p.id = pa.payment_id
	         WHERE pa.installment_id = i.id) AS last_payment_date
	FROM installments i
`

func (r *dealRepository) GetInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	query := installmentQuery + `
		WHERE i.deal_id = $1
		ORDER BY i.due_date ASC, i.created_at ASC
	`

	var installments []*domain.Installment
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &installments, query, dealID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *dealRepository) GetUnpaidInstallments(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	query := installmentQuery + `
		WHERE i.deal_id = $1 AND i.pending_amount > 0
		ORDER BY i.due_date ASC, i.created_at ASC
	`

	var installments []*domain.Installment
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &installments, query, dealID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *dealRepository) GetUnpaidInstallmentsForUpdate(ctx context.Context, dealID int64) ([]*domain.Installment, error) {
	query := installmentQuery + `
		WHERE i.deal_id = $1 AND i.pending_amount > 0
		ORDER BY i.due_date ASC, i.created_at ASC
		FOR UPDATE OF i
	`

	var installments []*domain.Installment
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &installments, query, dealID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *dealRepository) UpdateInstallmentPending(ctx context.Context, installmentID uuid.UUID, pending decimal.Decimal) error {
	query := `UPDATE installments SET pending_amount = $2 WHERE id = $1`

	_, err := ext(ctx, r.db).ExecContext(ctx, query, installmentID, pending)
	return err
}
