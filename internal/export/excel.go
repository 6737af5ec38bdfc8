package export

import (
	"bytes"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/tmms/tailor-master-service/internal/domain"
)

const excelSheet = "Measurements"

// MeasurementsExcel writes every measurement joined with its customer into
// one sheet. The free-form measurement map is flattened into Meas_<key>
// columns, the union of keys across all rows.
func MeasurementsExcel(measurements []domain.Measurement) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(excelSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	measKeys := measurementKeys(measurements)
	header := []interface{}{
		"MeasurementID", "NaapNumber", "CustomerName", "MobileNumber",
		"DressType", "DateCreated",
		"CollarType", "StitchType", "FabricType", "Instructions",
		"UrgentDelivery", "DeliveryDate",
	}
	for _, k := range measKeys {
		header = append(header, "Meas_"+k)
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, m := range measurements {
		urgent := "No"
		if m.UrgentDelivery {
			urgent = "Yes"
		}
		row := []interface{}{
			m.ID, m.CustomerNaap, m.CustomerName, m.CustomerMobile,
			m.DressType, m.DateCreated,
			m.CollarType, m.StitchType, m.FabricType, m.TailorInstructions,
			urgent, m.ExpectedDeliveryDate,
		}
		for _, k := range measKeys {
			row = append(row, m.Values[k])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// measurementKeys returns known fields in sheet order first, then any extra
// keys alphabetically.
func measurementKeys(measurements []domain.Measurement) []string {
	seen := map[string]bool{}
	for _, m := range measurements {
		for k := range m.Values {
			seen[k] = true
		}
	}

	keys := []string{}
	for _, k := range domain.MeasurementFields {
		if seen[k] {
			keys = append(keys, k)
			delete(seen, k)
		}
	}
	extra := []string{}
	for k := range seen {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
