package application

import (
	"context"
	"time"

	"github.com/tmms/tailor-master-service/internal/repository"
)

type DashboardStats struct {
	Customers      int           `json:"customers"`
	Measurements   int           `json:"measurements"`
	OpenOrders     int           `json:"open_orders"`
	UrgentPending  int           `json:"urgent_pending"`
	Revenue        float64       `json:"revenue"`
	RecentActivity []RecentEntry `json:"recent_activity"`
}

type RecentEntry struct {
	CustomerName string `json:"customer_name"`
	DressType    string `json:"dress_type"`
	DateCreated  string `json:"date_created"`
}

type DashboardService struct {
	customers    repository.CustomerRepo
	measurements repository.MeasurementRepo
	orders       repository.OrderRepo
}

func NewDashboardService(c repository.CustomerRepo, m repository.MeasurementRepo, o repository.OrderRepo) *DashboardService {
	return &DashboardService{customers: c, measurements: m, orders: o}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RecentActivity: []RecentEntry{}}

	var err error
	if stats.Customers, err = s.customers.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if stats.Measurements, err = s.measurements.CountMeasurements(ctx); err != nil {
		return nil, err
	}
	if stats.OpenOrders, err = s.orders.CountOpenOrders(ctx); err != nil {
		return nil, err
	}
	today := time.Now().Format("2006-01-02")
	if stats.UrgentPending, err = s.measurements.CountUrgentPending(ctx, today); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.orders.SumAmountPaid(ctx); err != nil {
		return nil, err
	}

	recent, err := s.measurements.ListRecentMeasurements(ctx, 5)
	if err != nil {
		return nil, err
	}
	for _, m := range recent {
		stats.RecentActivity = append(stats.RecentActivity, RecentEntry{
			CustomerName: m.CustomerName,
			DressType:    m.DressType,
			DateCreated:  m.DateCreated,
		})
	}
	return stats, nil
}
