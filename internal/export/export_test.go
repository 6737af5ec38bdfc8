package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/export"
)

func sampleMeasurement() *domain.Measurement {
	return &domain.Measurement{
		ID:         7,
		CustomerID: 1,
		DressType:  domain.DressShalwarKameez,
		Values: map[string]string{
			"length": "40.5",
			"chest":  "22",
		},
		CollarType:           "Ban collar",
		StitchType:           "Double",
		FabricType:           "Cotton",
		TailorInstructions:   "Loose around the waist",
		UrgentDelivery:       true,
		ExpectedDeliveryDate: "2026-09-05",
		DateCreated:          "2026-08-29",
		CustomerName:         "Ahmed Khan",
		CustomerNaap:         "2026-0001",
		CustomerMobile:       "050-123-4567",
	}
}

func TestMeasurementPDF(t *testing.T) {
	out, err := export.MeasurementPDF(sampleMeasurement())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
}

func TestMeasurementPDFEmptyValues(t *testing.T) {
	m := sampleMeasurement()
	m.Values = map[string]string{}
	m.TailorInstructions = ""
	m.UrgentDelivery = false

	out, err := export.MeasurementPDF(m)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMeasurementsExcelRoundTrip(t *testing.T) {
	first := *sampleMeasurement()
	second := *sampleMeasurement()
	second.ID = 8
	second.CustomerName = "Bilal Sheikh"
	second.Values = map[string]string{"neck": "15", "custom_cuff": "3"}

	out, err := export.MeasurementsExcel([]domain.Measurement{first, second})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Measurements")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two data rows")

	header := rows[0]
	assert.Equal(t, "MeasurementID", header[0])
	assert.Contains(t, header, "Meas_length")
	assert.Contains(t, header, "Meas_neck")
	assert.Contains(t, header, "Meas_custom_cuff")

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q not found", name)
		return -1
	}

	assert.Equal(t, "Ahmed Khan", rows[1][col("CustomerName")])
	assert.Equal(t, "40.5", rows[1][col("Meas_length")])
	assert.Equal(t, "Yes", rows[1][col("UrgentDelivery")])
	assert.Equal(t, "Bilal Sheikh", rows[2][col("CustomerName")])
	assert.Equal(t, "15", rows[2][col("Meas_neck")])
}

func TestMeasurementsExcelEmptyInput(t *testing.T) {
	out, err := export.MeasurementsExcel([]domain.Measurement{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Measurements")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
