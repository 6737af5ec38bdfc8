package domain

// Order statuses. Delivered and Cancelled are terminal and drop the order
// from the open-orders listing.
const (
	OrderPending    = "Pending"
	OrderInProgress = "In Progress"
	OrderReady      = "Ready"
	OrderCompleted  = "Completed"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Payment statuses, derived from AmountPaid against Price.
const (
	PaymentUnpaid    = "Unpaid"
	PaymentPartially = "Partially Paid"
	PaymentPaid      = "Paid"
)

type Order struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customer_id"`
	MeasurementID *int64  `json:"measurement_id,omitempty"`
	OrderDate     string  `json:"order_date"`
	DueDate       string  `json:"due_date,omitempty"`
	Price         float64 `json:"price"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentStatus string  `json:"payment_status"`
	OrderStatus   string  `json:"order_status"`
	Notes         string  `json:"notes,omitempty"`

	// Joined customer fields, filled on reads only.
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerMobile string `json:"customer_mobile,omitempty"`
}

// ValidOrderStatus reports whether s is one of the allowed order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderInProgress, OrderReady, OrderCompleted, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// DerivePaymentStatus maps an amount-paid against the price.
func DerivePaymentStatus(price, paid float64) string {
	switch {
	case paid <= 0:
		return PaymentUnpaid
	case paid >= price:
		return PaymentPaid
	default:
		return PaymentPartially
	}
}
