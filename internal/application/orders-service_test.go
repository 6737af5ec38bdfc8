package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/repository"
)

type mockOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[int64]*domain.Order{}}
}

func (m *mockOrderRepo) AddOrder(_ context.Context, o *domain.Order) error {
	m.nextID++
	o.ID = m.nextID
	if o.OrderStatus == "" {
		o.OrderStatus = domain.OrderPending
	}
	o.PaymentStatus = domain.DerivePaymentStatus(o.Price, o.AmountPaid)
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetOrderById(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListOpenOrders(_ context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.OrderStatus != domain.OrderDelivered && o.OrderStatus != domain.OrderCancelled {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListOrdersByCustomer(_ context.Context, customerID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) UpdateOrderStatus(_ context.Context, id int64, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.OrderStatus = status
	return nil
}

func (m *mockOrderRepo) RecordPayment(_ context.Context, id int64, amount float64) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.AmountPaid += amount
	if o.AmountPaid > o.Price {
		o.AmountPaid = o.Price
	}
	o.PaymentStatus = domain.DerivePaymentStatus(o.Price, o.AmountPaid)
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) CountOpenOrders(_ context.Context) (int, error) {
	open, _ := m.ListOpenOrders(context.Background())
	return len(open), nil
}

func (m *mockOrderRepo) SumAmountPaid(_ context.Context) (float64, error) {
	var sum float64
	for _, o := range m.orders {
		sum += o.AmountPaid
	}
	return sum, nil
}

func newOrdersFixture(t *testing.T) (*application.OrdersService, *domain.Customer) {
	t.Helper()
	customers := application.NewCustomersService(newMockCustomerRepo())
	svc := application.NewOrdersService(newMockOrderRepo(), customers)

	c := &domain.Customer{FullName: "Ahmed Khan", MobileNumber: "050-123"}
	require.NoError(t, customers.AddCustomer(context.Background(), c))
	return svc, c
}

func TestAddOrderValidation(t *testing.T) {
	svc, c := newOrdersFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddOrder(ctx, &domain.Order{CustomerID: 0, Price: 100}), application.ErrValidation)
	assert.ErrorIs(t, svc.AddOrder(ctx, &domain.Order{CustomerID: c.ID, Price: 0}), application.ErrValidation)
	assert.ErrorIs(t, svc.AddOrder(ctx, &domain.Order{CustomerID: c.ID, Price: 100, AmountPaid: -1}), application.ErrValidation)
	assert.ErrorIs(t, svc.AddOrder(ctx, &domain.Order{CustomerID: 404, Price: 100}), application.ErrNotFound)

	o := &domain.Order{CustomerID: c.ID, Price: 100, AmountPaid: 150}
	require.NoError(t, svc.AddOrder(ctx, o))
	assert.Equal(t, 100.0, o.AmountPaid, "overpayment clamped to price")
	assert.Equal(t, domain.PaymentPaid, o.PaymentStatus)
	assert.Equal(t, domain.OrderPending, o.OrderStatus)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, c := newOrdersFixture(t)
	ctx := context.Background()

	o := &domain.Order{CustomerID: c.ID, Price: 100}
	require.NoError(t, svc.AddOrder(ctx, o))

	assert.ErrorIs(t, svc.UpdateStatus(ctx, o.ID, "Shipped"), application.ErrBadStatus)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 9999, domain.OrderReady), application.ErrNotFound)
	require.NoError(t, svc.UpdateStatus(ctx, o.ID, " Ready "))

	got, err := svc.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderReady, got.OrderStatus)
}

func TestRecordPayment(t *testing.T) {
	svc, c := newOrdersFixture(t)
	ctx := context.Background()

	o := &domain.Order{CustomerID: c.ID, Price: 200}
	require.NoError(t, svc.AddOrder(ctx, o))

	_, err := svc.RecordPayment(ctx, o.ID, 0)
	assert.ErrorIs(t, err, application.ErrValidation)

	_, err = svc.RecordPayment(ctx, 9999, 50)
	assert.ErrorIs(t, err, application.ErrNotFound)

	got, err := svc.RecordPayment(ctx, o.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartially, got.PaymentStatus)
	assert.Equal(t, 80.0, got.AmountPaid)
}
