package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/deal-ledger/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, deal_id, payment_date, amount, payment_type, remark)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	row := ext(ctx, r.db).QueryRowxContext(ctx, query,
		payment.ID,
		payment.DealID,
		payment.PaymentDate,
		payment.Amount,
		payment.PaymentType,
		payment.Remark,
	)

	return row.Scan(&payment.CreatedAt)
}

func (r *paymentRepository) GetByDealID(ctx context.Context, dealID int64) ([]*domain.Payment, error) {
	query := `
		SELECT id, deal_id, payment_date, amount, payment_type, remark, created_at
		FROM payments
		WHERE deal_id = $1
		ORDER BY payment_date ASC, created_at ASC
	`

	var payments []*domain.Payment
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &payments, query, dealID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) CreateAllocations(ctx context.Context, allocations []*domain.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (id, payment_id, installment_id, allocated_amount, interest_amount)
		VALUES ($1, $2, $3, $4, $5)
	`

	e := ext(ctx, r.db)
	for _, alloc := range allocations {
		_, err := e.ExecContext(ctx, query,
			alloc.ID,
			alloc.PaymentID,
			alloc.InstallmentID,
			alloc.AllocatedAmount,
			alloc.InterestAmount,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *paymentRepository) GetAllocationsByDealID(ctx context.Context, dealID int64) ([]*domain.PaymentAllocation, error) {
	query := `
		SELECT pa.id, pa.payment_id, pa.installment_id, pa.allocated_amount, pa.interest_amount, pa.created_at
		FROM payment_allocations pa
		JOIN payments p ON p.id = pa.payment_id
		WHERE p.deal_id = $1
		ORDER BY pa.created_at ASC
	`

	var allocations []*domain.PaymentAllocation
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &allocations, query, dealID)
	if err != nil {
		return nil, err
	}

	return allocations, nil
}
