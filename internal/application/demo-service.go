package application

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
)

// DemoService seeds fake-but-plausible records for trying the app out.
type DemoService struct {
	customers    *CustomersService
	measurements *MeasurementsService
	orders       *OrdersService
}

func NewDemoService(c *CustomersService, m *MeasurementsService, o *OrdersService) *DemoService {
	return &DemoService{customers: c, measurements: m, orders: o}
}

// Generate creates n customers, each with one measurement and one order.
// Returns the naap numbers of the customers created.
func (s *DemoService) Generate(ctx context.Context, n int) ([]string, error) {
	created := []string{}
	for i := 0; i < n; i++ {
		c := &domain.Customer{
			FullName:     gofakeit.Name(),
			MobileNumber: gofakeit.Phone(),
			Address:      gofakeit.Address().Address,
		}
		if err := s.customers.AddCustomer(ctx, c); err != nil {
			logger.Warn("demo: add customer failed", "err", err)
			continue
		}
		created = append(created, c.NaapNumber)

		m := demoMeasurement(c.ID)
		if err := s.measurements.AddMeasurement(ctx, m); err != nil {
			logger.Warn("demo: add measurement failed", "err", err)
			continue
		}

		price := float64(gofakeit.Number(80, 400))
		o := &domain.Order{
			CustomerID:    c.ID,
			MeasurementID: &m.ID,
			DueDate:       time.Now().AddDate(0, 0, gofakeit.Number(3, 21)).Format("2006-01-02"),
			Price:         price,
			AmountPaid:    price * float64(gofakeit.Number(0, 2)) / 2, // 0, half or full
			Notes:         gofakeit.Sentence(6),
		}
		if err := s.orders.AddOrder(ctx, o); err != nil {
			logger.Warn("demo: add order failed", "err", err)
		}
	}
	return created, nil
}

func demoMeasurement(customerID int64) *domain.Measurement {
	dress := domain.DressShalwarKameez
	if gofakeit.Bool() {
		dress = domain.DressKurta
	}

	values := map[string]string{}
	for _, key := range domain.MeasurementFields {
		values[key] = fmt.Sprintf("%.1f", gofakeit.Float64Range(8, 48))
	}

	m := &domain.Measurement{
		CustomerID:         customerID,
		DressType:          dress,
		Values:             values,
		CollarType:         gofakeit.RandomString([]string{"Ban collar", "2 Piece collar", "Other"}),
		StitchType:         gofakeit.RandomString([]string{"Single", "Double", "Designer"}),
		FabricType:         gofakeit.RandomString([]string{"Cotton", "Linen", "Wash & Wear", "Silk"}),
		TailorInstructions: gofakeit.Sentence(8),
		UrgentDelivery:     gofakeit.Bool(),
	}
	if m.UrgentDelivery {
		m.ExpectedDeliveryDate = time.Now().AddDate(0, 0, gofakeit.Number(1, 10)).Format("2006-01-02")
	}
	return m
}
