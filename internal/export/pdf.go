package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/tmms/tailor-master-service/internal/domain"
)

// MeasurementPDF renders a single measurement sheet: customer block on top,
// measurement table, style fields, delivery line.
func MeasurementPDF(m *domain.Measurement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Tailor Master Measurement Sheet", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	labelValue := func(label, value string) {
		if value == "" {
			value = "N/A"
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(50, 8, label, "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
	}

	labelValue("Naap Number:", m.CustomerNaap)
	labelValue("Customer:", m.CustomerName)
	labelValue("Mobile:", m.CustomerMobile)
	labelValue("Date:", m.DateCreated)
	labelValue("Dress Type:", m.DressType)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Measurements (inches)", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, key := range domain.MeasurementFields {
		v := m.Values[key]
		if v == "" {
			continue
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(60, 7, domain.MeasurementFieldLabels[key], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 7, v, "1", 1, "", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Style", "", 1, "", false, 0, "")
	labelValue("Collar Type:", m.CollarType)
	labelValue("Stitch Type:", m.StitchType)
	labelValue("Fabric Type:", m.FabricType)
	pdf.Ln(4)

	urgent := "No"
	delivery := "N/A"
	if m.UrgentDelivery {
		urgent = "Yes"
		delivery = m.ExpectedDeliveryDate
	}
	labelValue("Urgent Delivery:", urgent)
	labelValue("Expected Delivery:", delivery)

	if m.TailorInstructions != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 8, "Tailor Instructions", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(0, 7, m.TailorInstructions, "1", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
