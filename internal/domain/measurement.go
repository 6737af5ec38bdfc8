package domain

// Measurement is one recorded set of body measurements for a customer.
// Values holds the per-field numbers keyed by field name (length, chest, ...);
// the set of keys depends on the dress type, so it is kept free-form and
// persisted as JSON text.
type Measurement struct {
	ID                   int64             `json:"id"`
	CustomerID           int64             `json:"customer_id"`
	DressType            string            `json:"dress_type"`
	Values               map[string]string `json:"measurements"`
	CollarType           string            `json:"collar_type,omitempty"`
	StitchType           string            `json:"stitch_type,omitempty"`
	FabricType           string            `json:"fabric_type,omitempty"`
	TailorInstructions   string            `json:"tailor_instructions,omitempty"`
	UrgentDelivery       bool              `json:"urgent_delivery"`
	ExpectedDeliveryDate string            `json:"expected_delivery_date,omitempty"`
	DateCreated          string            `json:"date_created"`

	// Joined customer fields, filled on reads only.
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerNaap   string `json:"naap_number,omitempty"`
	CustomerMobile string `json:"customer_mobile,omitempty"`
}

// Dress types with a predefined measurement field set.
const (
	DressShalwarKameez = "Shalwar Kameez"
	DressKurta         = "Kurta"
)

// MeasurementFields lists the known field keys for Shalwar Kameez / Kurta,
// in the order they appear on the measurement sheet.
var MeasurementFields = []string{
	"length",
	"width",
	"chest",
	"waist",
	"sleeve",
	"neck",
	"shalwar_waist",
	"pancha",
}

// MeasurementFieldLabels maps field keys to the labels printed on sheets.
var MeasurementFieldLabels = map[string]string{
	"length":        "Length (Lambai)",
	"width":         "Width (Chorai)",
	"chest":         "Chest (Chati)",
	"waist":         "Waist (Tera)",
	"sleeve":        "Sleeve (Bazo)",
	"neck":          "Neck (Gala)",
	"shalwar_waist": "Shalwar (Waist)",
	"pancha":        "Pancha (Ankle width)",
}
