package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/storage"
)

type CustomerRepo interface {
	AddCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomerById(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByNaap(ctx context.Context, naap string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, search string) ([]domain.Customer, error)
	CountCustomers(ctx context.Context) (int, error)
}

type CustomerRepository struct {
	store *storage.Store
}

func NewCustomerRepository(s *storage.Store) *CustomerRepository {
	return &CustomerRepository{store: s}
}

// AddCustomer inserts the customer and allocates the naap number in one
// transaction, so the per-year counter never skips or repeats.
func (r *CustomerRepository) AddCustomer(ctx context.Context, c *domain.Customer) error {
	if c.DateOfEntry == "" {
		c.DateOfEntry = time.Now().Format("2006-01-02")
	}
	year := time.Now().Year()

	tx, err := r.store.BeginTx(ctx, nil)
	if err != nil {
		logger.Warn("Error while starting transaction", "err", err)
		return err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	var next int
	err = tx.QueryRowContext(ctx, `SELECT last_number + 1 FROM counters WHERE year = ?`, year).Scan(&next)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		next = 1
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO counters (year, last_number) VALUES (?, ?)`, year, next); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if _, err = tx.ExecContext(ctx,
			`UPDATE counters SET last_number = ? WHERE year = ?`, next, year); err != nil {
			return err
		}
	}

	c.NaapNumber = fmt.Sprintf("%d-%04d", year, next)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO customers (naap_number, full_name, mobile_number, address, date_of_entry)
		 VALUES (?, ?, ?, ?, ?)`,
		c.NaapNumber, c.FullName, c.MobileNumber, c.Address, c.DateOfEntry,
	)
	if err != nil {
		logger.Warn("Error occured while working with customers table", "err", err)
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Warn("Error while commiting tx", "err", err)
		return err
	}
	tx = nil
	c.ID = id
	return nil
}

const customerCols = `id, naap_number, full_name, mobile_number, COALESCE(address, ''), date_of_entry`

func (r *CustomerRepository) GetCustomerById(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.store.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) GetCustomerByNaap(ctx context.Context, naap string) (*domain.Customer, error) {
	row := r.store.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE naap_number = ?`, naap)
	return scanCustomer(row)
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.NaapNumber, &c.FullName, &c.MobileNumber, &c.Address, &c.DateOfEntry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCustomers returns customers ordered by name; a non-empty search term
// filters by name, mobile or naap number substring.
func (r *CustomerRepository) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	query := `SELECT ` + customerCols + ` FROM customers ORDER BY full_name ASC`
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		term := "%" + s + "%"
		query = `SELECT ` + customerCols + ` FROM customers
			 WHERE full_name LIKE ? OR mobile_number LIKE ? OR naap_number LIKE ?
			 ORDER BY full_name ASC`
		args = []any{term, term, term}
	}

	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.NaapNumber, &c.FullName, &c.MobileNumber, &c.Address, &c.DateOfEntry); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) CountCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// InsertCustomerRaw inserts a customer keeping its original id and naap
// number. Used by the JSON import only.
func (r *CustomerRepository) InsertCustomerRaw(ctx context.Context, c *domain.Customer) error {
	_, err := r.store.ExecContext(ctx,
		`INSERT INTO customers (id, naap_number, full_name, mobile_number, address, date_of_entry)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.NaapNumber, c.FullName, c.MobileNumber, c.Address, c.DateOfEntry,
	)
	return err
}

func (r *CustomerRepository) ExistsMobile(ctx context.Context, mobile string) (bool, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE mobile_number = ?`, mobile).Scan(&n)
	return n > 0, err
}

func (r *CustomerRepository) DeleteAllCustomers(ctx context.Context) error {
	_, err := r.store.ExecContext(ctx, `DELETE FROM customers`)
	return err
}
