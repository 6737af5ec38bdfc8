package application

import (
	"context"
	"errors"
	"strings"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/repository"
)

type MeasurementsService struct {
	repo      repository.MeasurementRepo
	customers *CustomersService
}

func NewMeasurementsService(r repository.MeasurementRepo, customers *CustomersService) *MeasurementsService {
	return &MeasurementsService{repo: r, customers: customers}
}

func (s *MeasurementsService) AddMeasurement(ctx context.Context, m *domain.Measurement) error {
	if err := s.validate(ctx, m); err != nil {
		return err
	}
	if err := s.repo.AddMeasurement(ctx, m); err != nil {
		logger.Warn("Error while adding measurement", "err", err)
		return err
	}
	return nil
}

func (s *MeasurementsService) UpdateMeasurement(ctx context.Context, m *domain.Measurement) error {
	if strings.TrimSpace(m.DressType) == "" {
		return ErrValidation
	}
	if !m.UrgentDelivery {
		m.ExpectedDeliveryDate = ""
	}
	err := s.repo.UpdateMeasurement(ctx, m)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *MeasurementsService) validate(ctx context.Context, m *domain.Measurement) error {
	if m.CustomerID == 0 || strings.TrimSpace(m.DressType) == "" {
		return ErrValidation
	}
	// delivery date only makes sense on urgent jobs
	if !m.UrgentDelivery {
		m.ExpectedDeliveryDate = ""
	}
	c, err := s.customers.GetByID(ctx, m.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	return nil
}

func (s *MeasurementsService) GetByID(ctx context.Context, id int64) (*domain.Measurement, error) {
	return s.repo.GetMeasurementById(ctx, id)
}

// History returns all measurements newest-first, filtered by the search term.
func (s *MeasurementsService) History(ctx context.Context, search string) ([]domain.Measurement, error) {
	return s.repo.ListMeasurements(ctx, search)
}

// Summary builds the short preview string shown in the history table: the
// first few non-empty values in sheet order.
func Summary(m *domain.Measurement, max int) string {
	parts := []string{}
	for _, key := range domain.MeasurementFields {
		if v := m.Values[key]; v != "" {
			parts = append(parts, key+": "+v)
		}
		if len(parts) == max {
			break
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
