package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/repository"
)

// Import modes: replace wipes orders, measurements and customers first,
// merge skips customers with a known mobile number and measurements with
// a known id.
const (
	ImportReplace = "replace"
	ImportMerge   = "merge"
)

type DataDump struct {
	Customers    []domain.Customer    `json:"customers"`
	Measurements []domain.Measurement `json:"measurements"`
}

type ImportResult struct {
	CustomersImported    int `json:"customers_imported"`
	CustomersSkipped     int `json:"customers_skipped"`
	MeasurementsImported int `json:"measurements_imported"`
	MeasurementsSkipped  int `json:"measurements_skipped"`
}

// TransferService handles the JSON export/import of the raw record data.
// It works on the concrete repositories because raw inserts (keeping ids)
// are an import-only concern.
type TransferService struct {
	customers    *repository.CustomerRepository
	measurements *repository.MeasurementRepository
	orders       *repository.OrderRepository
	cache        *CustomersService
}

func NewTransferService(c *repository.CustomerRepository, m *repository.MeasurementRepository, o *repository.OrderRepository, cache *CustomersService) *TransferService {
	return &TransferService{customers: c, measurements: m, orders: o, cache: cache}
}

func (s *TransferService) ExportJSON(ctx context.Context) ([]byte, error) {
	customers, err := s.customers.ListCustomers(ctx, "")
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurements.ListMeasurements(ctx, "")
	if err != nil {
		return nil, err
	}
	// strip the joined read-only fields so the dump round-trips cleanly
	for i := range measurements {
		measurements[i].CustomerName = ""
		measurements[i].CustomerNaap = ""
		measurements[i].CustomerMobile = ""
	}

	return json.MarshalIndent(DataDump{
		Customers:    customers,
		Measurements: measurements,
	}, "", "  ")
}

func (s *TransferService) ImportJSON(ctx context.Context, raw []byte, mode string) (*ImportResult, error) {
	if mode != ImportReplace && mode != ImportMerge {
		return nil, fmt.Errorf("%w: unknown import mode %q", ErrValidation, mode)
	}

	var dump DataDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if mode == ImportReplace {
		// orders reference both tables and foreign keys are enforced,
		// so they go first
		if err := s.orders.DeleteAllOrders(ctx); err != nil {
			return nil, err
		}
		if err := s.measurements.DeleteAllMeasurements(ctx); err != nil {
			return nil, err
		}
		if err := s.customers.DeleteAllCustomers(ctx); err != nil {
			return nil, err
		}
	}

	res := &ImportResult{}
	for i := range dump.Customers {
		c := dump.Customers[i]
		if mode == ImportMerge {
			exists, err := s.customers.ExistsMobile(ctx, c.MobileNumber)
			if err != nil {
				return nil, err
			}
			if exists {
				res.CustomersSkipped++
				continue
			}
		}
		if err := s.customers.InsertCustomerRaw(ctx, &c); err != nil {
			logger.Warn("import: customer insert failed, skipping", "id", c.ID, "err", err)
			res.CustomersSkipped++
			continue
		}
		res.CustomersImported++
	}

	for i := range dump.Measurements {
		m := dump.Measurements[i]
		if mode == ImportMerge {
			exists, err := s.measurements.ExistsMeasurement(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				res.MeasurementsSkipped++
				continue
			}
		}
		if err := s.measurements.InsertMeasurementRaw(ctx, &m); err != nil {
			logger.Warn("import: measurement insert failed, skipping", "id", m.ID, "err", err)
			res.MeasurementsSkipped++
			continue
		}
		res.MeasurementsImported++
	}

	s.cache.InvalidateCache()
	return res, nil
}
