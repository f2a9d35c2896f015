package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BillingCustomerRepository maps application users to their billing-provider
// customer IDs. Rows are written by the checkout flow; this service only
// resolves them.
type BillingCustomerRepository struct {
	db *sqlx.DB
}

// NewBillingCustomerRepository creates a new billing customer repository
func NewBillingCustomerRepository(db *sqlx.DB) *BillingCustomerRepository {
	return &BillingCustomerRepository{db: db}
}

// GetCustomerID returns the billing customer ID for a user, or "" when the
// user has no billing record. Only infrastructure failures surface as errors.
func (r *BillingCustomerRepository) GetCustomerID(ctx context.Context, userID string) (string, error) {
	var customerID sql.NullString
	err := r.db.GetContext(ctx, &customerID, `
		SELECT stripe_customer_id FROM billing_customers WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get billing customer: %w", err)
	}
	return customerID.String, nil
}
