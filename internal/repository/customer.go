package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lexcongreso/registration/internal/model"
)

const pgUniqueViolation = "23505"

// ErrDuplicateEmail is returned when a customer with the same email already exists
var ErrDuplicateEmail = errors.New("customer with this email already exists")

// CustomerRepository represents behavior for customer repositories
type CustomerRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	FindByEmail(context.Context, string) (*model.Customer, error)
	Create(context.Context, *model.Customer) error
	// UpdateLead updates customer only while its status is still Lead, false means nothing was updated
	UpdateLead(context.Context, *model.Customer) (bool, error)
}

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCustomerRepository builds customer repository on top of postgres
func NewPostgresCustomerRepository(p *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{pool: p}
}

const customerColumns = "customer_id, first_name, last_name, email, mobile_phone, status, customer_category_fk, organization_fk, rfc"

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customer WHERE customer_id = $1"
	return r.scanRow(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customer WHERE email = $1 LIMIT 1"
	return r.scanRow(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customer(customer_id, first_name, last_name, email, mobile_phone, status, customer_category_fk, organization_fk, rfc)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, c.MobilePhone, c.Status, c.CustomerCategoryFK, c.OrganizationFK, c.RFC)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) UpdateLead(ctx context.Context, c *model.Customer) (bool, error) {
	q := `UPDATE customer SET first_name = $1, last_name = $2, mobile_phone = $3, customer_category_fk = $4, rfc = $5
		  WHERE customer_id = $6 AND status = $7`
	comm, err := r.pool.Exec(ctx, q, c.FirstName, c.LastName, c.MobilePhone, c.CustomerCategoryFK, c.RFC, c.ID, model.StatusLead)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.MobilePhone, &c.Status, &c.CustomerCategoryFK, &c.OrganizationFK, &c.RFC); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
