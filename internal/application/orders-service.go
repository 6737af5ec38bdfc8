package application

import (
	"context"
	"errors"
	"strings"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/repository"
)

var ErrBadStatus = errors.New("invalid order status")

type OrdersService struct {
	repo      repository.OrderRepo
	customers *CustomersService
}

func NewOrdersService(r repository.OrderRepo, customers *CustomersService) *OrdersService {
	return &OrdersService{repo: r, customers: customers}
}

func (s *OrdersService) AddOrder(ctx context.Context, o *domain.Order) error {
	if o.CustomerID == 0 || o.Price <= 0 {
		return ErrValidation
	}
	if o.AmountPaid < 0 {
		return ErrValidation
	}
	if o.AmountPaid > o.Price {
		o.AmountPaid = o.Price
	}

	c, err := s.customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}

	if err := s.repo.AddOrder(ctx, o); err != nil {
		logger.Warn("Error while adding order", "err", err)
		return err
	}
	return nil
}

func (s *OrdersService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetOrderById(ctx, id)
}

func (s *OrdersService) ListOpen(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOpenOrders(ctx)
}

func (s *OrdersService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.repo.ListOrdersByCustomer(ctx, customerID)
}

func (s *OrdersService) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if !domain.ValidOrderStatus(status) {
		return ErrBadStatus
	}
	err := s.repo.UpdateOrderStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *OrdersService) RecordPayment(ctx context.Context, id int64, amount float64) (*domain.Order, error) {
	if amount <= 0 {
		return nil, ErrValidation
	}
	o, err := s.repo.RecordPayment(ctx, id, amount)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}
