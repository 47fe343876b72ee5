package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/deal-ledger/internal/domain"
)

type dealerRepository struct {
	db *sqlx.DB
}

func NewDealerRepository(db *sqlx.DB) DealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	query := `
		INSERT INTO dealers (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`

	row := ext(ctx, r.db).QueryRowxContext(ctx, query, dealer.ID, dealer.Name)
	return row.Scan(&dealer.CreatedAt)
}

func (r *dealerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	query := `SELECT id, name, created_at FROM dealers WHERE id = $1`

	var dealer domain.Dealer
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &dealer, query, id)
	if err != nil {
		return nil, err
	}

	return &dealer, nil
}
