package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lexcongreso/registration/internal/model"
)

// PaymentRepository reads payments written by the payment webhooks
type PaymentRepository interface {
	FindByTransaction(ctx context.Context, customerID, transactionID string, method model.PaymentMethod) (*model.Payment, error)
}

type postgresPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPaymentRepository builds payment repository reading event.event_payment
func NewPostgresPaymentRepository(p *pgxpool.Pool) PaymentRepository {
	return &postgresPaymentRepository{pool: p}
}

// method aliases as stored by the different webhooks
var methodAliases = map[model.PaymentMethod][]string{
	model.PaymentMethodPayPal:   {"paypal", "PayPal"},
	model.PaymentMethodStripe:   {"stripe", "creditCard", "credit_card"},
	model.PaymentMethodTransfer: {"transfer", "bankTransfer", "bank_transfer"},
}

func (r *postgresPaymentRepository) FindByTransaction(ctx context.Context, customerID, transactionID string, method model.PaymentMethod) (*model.Payment, error) {
	q := `SELECT event_payment_id, customer_fk, amount, currency, payment_method, status,
				 paypal_transaction_id, stripe_transaction_id, other_transaction_id, response
		  FROM event.event_payment
		  WHERE customer_fk = $1 AND %s
		  ORDER BY created_at DESC
		  LIMIT 1`

	var row pgx.Row
	switch method {
	case model.PaymentMethodPayPal:
		row = r.pool.QueryRow(ctx, fmt.Sprintf(q, "paypal_transaction_id = $2 AND payment_method = ANY($3)"), customerID, transactionID, methodAliases[method])
	case model.PaymentMethodStripe:
		row = r.pool.QueryRow(ctx, fmt.Sprintf(q, "stripe_transaction_id = $2 AND payment_method = ANY($3)"), customerID, transactionID, methodAliases[method])
	case model.PaymentMethodTransfer:
		row = r.pool.QueryRow(ctx, fmt.Sprintf(q, "other_transaction_id = $2 AND payment_method = ANY($3)"), customerID, transactionID, methodAliases[method])
	default:
		row = r.pool.QueryRow(ctx, fmt.Sprintf(q, "$2 IN (paypal_transaction_id, stripe_transaction_id, other_transaction_id)"), customerID, transactionID)
	}

	var p model.Payment
	var response pgtype.JSONB
	err := row.Scan(&p.ID, &p.CustomerFK, &p.Amount, &p.Currency, &p.PaymentMethod, &p.Status,
		&p.PayPalTransactionID, &p.StripeTransactionID, &p.OtherTransactionID, &response)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if response.Status == pgtype.Present {
		p.Response = response.Bytes
	}
	return &p, nil
}
