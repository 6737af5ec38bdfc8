package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/repository"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

type CustomersService struct {
	repo repository.CustomerRepo
	mu   sync.RWMutex
	byID map[int64]*domain.Customer
}

func NewCustomersService(r repository.CustomerRepo) *CustomersService {
	return &CustomersService{
		repo: r,
		byID: make(map[int64]*domain.Customer),
	}
}

func (s *CustomersService) AddCustomer(ctx context.Context, c *domain.Customer) error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.MobileNumber = strings.TrimSpace(c.MobileNumber)
	if c.FullName == "" || c.MobileNumber == "" {
		return ErrValidation
	}

	if err := s.repo.AddCustomer(ctx, c); err != nil {
		logger.Warn("Error while adding customer", "err", err)
		return err
	}

	s.mu.Lock()
	s.byID[c.ID] = c
	s.mu.Unlock()
	return nil
}

func (s *CustomersService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	s.mu.RLock()
	if c, ok := s.byID[id]; ok {
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	c, err := s.repo.GetCustomerById(ctx, id)
	if err != nil {
		logger.Warn("customers service getbyid trouble", "err", err)
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	s.mu.Lock()
	s.byID[c.ID] = c
	s.mu.Unlock()
	return c, nil
}

func (s *CustomersService) GetByNaap(ctx context.Context, naap string) (*domain.Customer, error) {
	return s.repo.GetCustomerByNaap(ctx, naap)
}

func (s *CustomersService) List(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx, search)
}

// RestoreCache reloads the byID map from the database at boot.
func (s *CustomersService) RestoreCache(ctx context.Context) error {
	all, err := s.repo.ListCustomers(ctx, "")
	if err != nil {
		return err
	}

	// собираем в локальную мапу, чтобы держать Lock меньше
	tmp := make(map[int64]*domain.Customer, len(all))
	for i := range all {
		c := all[i]
		tmp[c.ID] = &c
	}

	s.mu.Lock()
	s.byID = tmp
	s.mu.Unlock()
	return nil
}

// InvalidateCache drops everything cached; used after restore/import.
func (s *CustomersService) InvalidateCache() {
	s.mu.Lock()
	s.byID = make(map[int64]*domain.Customer)
	s.mu.Unlock()
}
