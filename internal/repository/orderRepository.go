package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/storage"
)

type OrderRepo interface {
	AddOrder(ctx context.Context, o *domain.Order) error
	GetOrderById(ctx context.Context, id int64) (*domain.Order, error)
	ListOpenOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	RecordPayment(ctx context.Context, id int64, amount float64) (*domain.Order, error)
	CountOpenOrders(ctx context.Context) (int, error)
	SumAmountPaid(ctx context.Context) (float64, error)
}

type OrderRepository struct {
	store *storage.Store
}

func NewOrderRepository(s *storage.Store) *OrderRepository {
	return &OrderRepository{store: s}
}

func (r *OrderRepository) AddOrder(ctx context.Context, o *domain.Order) error {
	if o.OrderDate == "" {
		o.OrderDate = time.Now().Format("2006-01-02 15:04:05")
	}
	if o.OrderStatus == "" {
		o.OrderStatus = domain.OrderPending
	}
	o.PaymentStatus = domain.DerivePaymentStatus(o.Price, o.AmountPaid)

	res, err := r.store.ExecContext(ctx,
		`INSERT INTO orders
			(customer_id, measurement_id, order_date, due_date, price, amount_paid,
			 payment_status, order_status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.CustomerID, o.MeasurementID, o.OrderDate, nullEmpty(o.DueDate), o.Price, o.AmountPaid,
		o.PaymentStatus, o.OrderStatus, o.Notes,
	)
	if err != nil {
		logger.Warn("Error occured while working with orders table", "err", err)
		return err
	}
	o.ID, err = res.LastInsertId()
	return err
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.measurement_id, o.order_date, COALESCE(o.due_date, ''),
	       o.price, o.amount_paid, o.payment_status, o.order_status, COALESCE(o.notes, ''),
	       c.full_name, c.mobile_number
	FROM orders o
	JOIN customers c ON o.customer_id = c.id`

func (r *OrderRepository) GetOrderById(ctx context.Context, id int64) (*domain.Order, error) {
	rows, err := r.store.QueryContext(ctx, orderSelect+` WHERE o.id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanOrder(rows)
}

// ListOpenOrders returns everything still on the rack: not delivered, not
// cancelled, soonest due date first.
func (r *OrderRepository) ListOpenOrders(ctx context.Context) ([]domain.Order, error) {
	return r.queryOrders(ctx, orderSelect+`
		WHERE o.order_status NOT IN (?, ?)
		ORDER BY o.due_date ASC, o.id DESC`,
		domain.OrderDelivered, domain.OrderCancelled)
}

func (r *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx, orderSelect+`
		WHERE o.customer_id = ?
		ORDER BY o.order_date DESC, o.id DESC`, customerID)
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOrder(rows *sql.Rows) (*domain.Order, error) {
	var o domain.Order
	var mid sql.NullInt64
	err := rows.Scan(&o.ID, &o.CustomerID, &mid, &o.OrderDate, &o.DueDate,
		&o.Price, &o.AmountPaid, &o.PaymentStatus, &o.OrderStatus, &o.Notes,
		&o.CustomerName, &o.CustomerMobile)
	if err != nil {
		return nil, err
	}
	if mid.Valid {
		o.MeasurementID = &mid.Int64
	}
	return &o, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := r.store.ExecContext(ctx,
		`UPDATE orders SET order_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordPayment adds amount to amount_paid, capped at the price, and
// re-derives the payment status. Returns the updated order.
func (r *OrderRepository) RecordPayment(ctx context.Context, id int64, amount float64) (*domain.Order, error) {
	tx, err := r.store.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	var price, paid float64
	err = tx.QueryRowContext(ctx,
		`SELECT price, amount_paid FROM orders WHERE id = ?`, id).Scan(&price, &paid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	paid += amount
	if paid > price {
		paid = price
	}
	status := domain.DerivePaymentStatus(price, paid)

	if _, err = tx.ExecContext(ctx,
		`UPDATE orders SET amount_paid = ?, payment_status = ? WHERE id = ?`,
		paid, status, id); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		logger.Warn("Error while commiting tx", "err", err)
		return nil, err
	}
	tx = nil

	return r.GetOrderById(ctx, id)
}

func (r *OrderRepository) CountOpenOrders(ctx context.Context) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE order_status NOT IN (?, ?)`,
		domain.OrderDelivered, domain.OrderCancelled).Scan(&n)
	return n, err
}

func (r *OrderRepository) SumAmountPaid(ctx context.Context) (float64, error) {
	var sum float64
	err := r.store.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM orders`).Scan(&sum)
	return sum, err
}

func (r *OrderRepository) DeleteAllOrders(ctx context.Context) error {
	_, err := r.store.ExecContext(ctx, `DELETE FROM orders`)
	return err
}
