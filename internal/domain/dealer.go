package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dealer anchors cross-deal grouping together with the customer name.
type Dealer struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateDealerRequest struct {
	Name string `json:"name" validate:"required"`
}
