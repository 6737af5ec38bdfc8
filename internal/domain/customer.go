package domain

// Customer is a shop client. NaapNumber is the shop's own reference,
// allocated per calendar year as YYYY-NNNN.
type Customer struct {
	ID           int64  `json:"id"`
	NaapNumber   string `json:"naap_number"`
	FullName     string `json:"full_name"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
	DateOfEntry  string `json:"date_of_entry"`
}
