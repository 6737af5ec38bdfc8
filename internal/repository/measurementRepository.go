package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/logger"
	"github.com/tmms/tailor-master-service/internal/storage"
)

type MeasurementRepo interface {
	AddMeasurement(ctx context.Context, m *domain.Measurement) error
	GetMeasurementById(ctx context.Context, id int64) (*domain.Measurement, error)
	UpdateMeasurement(ctx context.Context, m *domain.Measurement) error
	ListMeasurements(ctx context.Context, search string) ([]domain.Measurement, error)
	ListRecentMeasurements(ctx context.Context, limit int) ([]domain.Measurement, error)
	CountMeasurements(ctx context.Context) (int, error)
	CountUrgentPending(ctx context.Context, today string) (int, error)
}

type MeasurementRepository struct {
	store *storage.Store
}

func NewMeasurementRepository(s *storage.Store) *MeasurementRepository {
	return &MeasurementRepository{store: s}
}

func (r *MeasurementRepository) AddMeasurement(ctx context.Context, m *domain.Measurement) error {
	if m.Values == nil {
		m.Values = map[string]string{}
	}
	payload, err := json.Marshal(m.Values)
	if err != nil {
		logger.Warn("Error while marshalling measurement values", "err", err)
		return err
	}
	if m.DateCreated == "" {
		m.DateCreated = time.Now().Format("2006-01-02")
	}

	res, err := r.store.ExecContext(ctx,
		`INSERT INTO measurements
			(customer_id, dress_type, measurements, collar_type, stitch_type, fabric_type,
			 tailor_instructions, urgent_delivery, expected_delivery_date, date_created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CustomerID, m.DressType, string(payload), m.CollarType, m.StitchType, m.FabricType,
		m.TailorInstructions, boolToInt(m.UrgentDelivery), nullEmpty(m.ExpectedDeliveryDate), m.DateCreated,
	)
	if err != nil {
		logger.Warn("Error occured while working with measurements table", "err", err)
		return err
	}
	m.ID, err = res.LastInsertId()
	return err
}

const measurementSelect = `
	SELECT m.id, m.customer_id, m.dress_type, m.measurements,
	       COALESCE(m.collar_type, ''), COALESCE(m.stitch_type, ''), COALESCE(m.fabric_type, ''),
	       COALESCE(m.tailor_instructions, ''), m.urgent_delivery, COALESCE(m.expected_delivery_date, ''),
	       m.date_created,
	       c.full_name, c.naap_number, c.mobile_number
	FROM measurements m
	JOIN customers c ON m.customer_id = c.id`

func (r *MeasurementRepository) GetMeasurementById(ctx context.Context, id int64) (*domain.Measurement, error) {
	rows, err := r.store.QueryContext(ctx, measurementSelect+` WHERE m.id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	m, err := scanMeasurement(rows)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MeasurementRepository) UpdateMeasurement(ctx context.Context, m *domain.Measurement) error {
	payload, err := json.Marshal(m.Values)
	if err != nil {
		return err
	}
	res, err := r.store.ExecContext(ctx,
		`UPDATE measurements SET
			dress_type = ?, measurements = ?, collar_type = ?, stitch_type = ?, fabric_type = ?,
			tailor_instructions = ?, urgent_delivery = ?, expected_delivery_date = ?
		 WHERE id = ?`,
		m.DressType, string(payload), m.CollarType, m.StitchType, m.FabricType,
		m.TailorInstructions, boolToInt(m.UrgentDelivery), nullEmpty(m.ExpectedDeliveryDate), m.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMeasurements returns the history, newest first. A search term filters
// by customer name, naap number or dress type.
func (r *MeasurementRepository) ListMeasurements(ctx context.Context, search string) ([]domain.Measurement, error) {
	query := measurementSelect + ` ORDER BY m.date_created DESC, m.id DESC`
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		term := "%" + s + "%"
		query = measurementSelect + `
			WHERE c.full_name LIKE ? OR c.naap_number LIKE ? OR m.dress_type LIKE ?
			ORDER BY m.date_created DESC, m.id DESC`
		args = []any{term, term, term}
	}
	return r.queryMeasurements(ctx, query, args...)
}

func (r *MeasurementRepository) ListRecentMeasurements(ctx context.Context, limit int) ([]domain.Measurement, error) {
	return r.queryMeasurements(ctx, measurementSelect+` ORDER BY m.id DESC LIMIT ?`, limit)
}

func (r *MeasurementRepository) queryMeasurements(ctx context.Context, query string, args ...any) ([]domain.Measurement, error) {
	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Measurement{}
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func scanMeasurement(rows *sql.Rows) (*domain.Measurement, error) {
	var m domain.Measurement
	var payload string
	var urgent int
	err := rows.Scan(&m.ID, &m.CustomerID, &m.DressType, &payload,
		&m.CollarType, &m.StitchType, &m.FabricType,
		&m.TailorInstructions, &urgent, &m.ExpectedDeliveryDate,
		&m.DateCreated,
		&m.CustomerName, &m.CustomerNaap, &m.CustomerMobile)
	if err != nil {
		return nil, err
	}
	m.UrgentDelivery = urgent != 0
	m.Values = map[string]string{}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &m.Values); err != nil {
			logger.Warn("failed to unmarshal measurement payload; leaving empty", "id", m.ID)
		}
	}
	return &m, nil
}

func (r *MeasurementRepository) CountMeasurements(ctx context.Context) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&n)
	return n, err
}

// CountUrgentPending counts urgent measurements whose expected delivery date
// has not passed yet.
func (r *MeasurementRepository) CountUrgentPending(ctx context.Context, today string) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM measurements
		 WHERE urgent_delivery = 1 AND date(expected_delivery_date) >= date(?)`, today).Scan(&n)
	return n, err
}

// InsertMeasurementRaw keeps the original id; JSON import only.
func (r *MeasurementRepository) InsertMeasurementRaw(ctx context.Context, m *domain.Measurement) error {
	payload, err := json.Marshal(m.Values)
	if err != nil {
		return err
	}
	_, err = r.store.ExecContext(ctx,
		`INSERT INTO measurements
			(id, customer_id, dress_type, measurements, collar_type, stitch_type, fabric_type,
			 tailor_instructions, urgent_delivery, expected_delivery_date, date_created)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CustomerID, m.DressType, string(payload), m.CollarType, m.StitchType, m.FabricType,
		m.TailorInstructions, boolToInt(m.UrgentDelivery), nullEmpty(m.ExpectedDeliveryDate), m.DateCreated,
	)
	return err
}

func (r *MeasurementRepository) ExistsMeasurement(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM measurements WHERE id = ?`, id).Scan(&n)
	return n > 0, err
}

func (r *MeasurementRepository) DeleteAllMeasurements(ctx context.Context) error {
	_, err := r.store.ExecContext(ctx, `DELETE FROM measurements`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
