package repositories

import (
	"io"
	"path/filepath"
	"strconv"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// MeasurementsSchema is the fixed column layout of the telemetry journal.
var MeasurementsSchema = []string{
	"Date", "Time", "OperatorEmail", "pH", "Temperature",
	"Ammonia", "Oxygen", "FeedKg", "MortalityCount", "Classification",
}

// measurementRepository implements MeasurementRepository over a CSV store.
// The journal is append-only; there is no rewrite path.
type measurementRepository struct {
	store *csvstore.Store[domain.Measurement]
}

// NewMeasurementRepository creates a telemetry repository backed by
// measurements.csv in dataDir.
func NewMeasurementRepository(dataDir string) MeasurementRepository {
	return &measurementRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "measurements.csv"),
			MeasurementsSchema,
			encodeMeasurement,
			decodeMeasurement,
		),
	}
}

func encodeMeasurement(m domain.Measurement) []string {
	return []string{
		m.Date,
		m.Time,
		m.OperatorEmail,
		strconv.FormatFloat(m.PH, 'f', -1, 64),
		strconv.FormatFloat(m.Temperature, 'f', -1, 64),
		strconv.FormatFloat(m.Ammonia, 'f', -1, 64),
		strconv.FormatFloat(m.Oxygen, 'f', -1, 64),
		strconv.FormatFloat(m.FeedKg, 'f', -1, 64),
		strconv.Itoa(m.MortalityCount),
		m.Classification,
	}
}

func decodeMeasurement(row []string) (domain.Measurement, error) {
	var m domain.Measurement
	var err error
	m.Date, m.Time, m.OperatorEmail = row[0], row[1], row[2]
	if m.PH, err = strconv.ParseFloat(row[3], 64); err != nil {
		return m, err
	}
	if m.Temperature, err = strconv.ParseFloat(row[4], 64); err != nil {
		return m, err
	}
	if m.Ammonia, err = strconv.ParseFloat(row[5], 64); err != nil {
		return m, err
	}
	if m.Oxygen, err = strconv.ParseFloat(row[6], 64); err != nil {
		return m, err
	}
	if m.FeedKg, err = strconv.ParseFloat(row[7], 64); err != nil {
		return m, err
	}
	if m.MortalityCount, err = strconv.Atoi(row[8]); err != nil {
		return m, err
	}
	m.Classification = row[9]
	return m, nil
}

func (r *measurementRepository) Append(m domain.Measurement) error {
	return r.store.Append(m)
}

func (r *measurementRepository) ByOperator(email string) ([]domain.Measurement, error) {
	email = domain.NormalizeEmail(email)
	return r.store.Scan(func(m domain.Measurement) bool {
		return domain.NormalizeEmail(m.OperatorEmail) == email
	})
}

// LastN returns the operator's n most recent measurements by insertion
// order, oldest first.
func (r *measurementRepository) LastN(email string, n int) ([]domain.Measurement, error) {
	all, err := r.ByOperator(email)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (r *measurementRepository) Name() string { return r.store.Name() }

func (r *measurementRepository) Export(w io.Writer) error { return r.store.Export(w) }
