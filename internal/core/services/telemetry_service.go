package services

import (
	"time"

	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/core/domain"
)

// TelemetryService owns the per-operator measurement journal. Every write
// passes through the classifier before being persisted; the stored record is
// immutable thereafter.
type TelemetryService struct {
	measurementRepo repositories.MeasurementRepository
	now             func() time.Time
}

// NewTelemetryService creates a new telemetry service
func NewTelemetryService(measurementRepo repositories.MeasurementRepository) *TelemetryService {
	return &TelemetryService{
		measurementRepo: measurementRepo,
		now:             time.Now,
	}
}

// MeasurementInput represents one journal submission
type MeasurementInput struct {
	PH             float64 `json:"ph" validate:"min=0,max=14"`
	Temperature    float64 `json:"temperature"`
	Ammonia        float64 `json:"ammonia" validate:"min=0"`
	Oxygen         float64 `json:"oxygen" validate:"min=0"`
	FeedKg         float64 `json:"feed_kg" validate:"min=0"`
	MortalityCount int     `json:"mortality_count" validate:"min=0"`
}

// Record classifies the readings and appends the measurement to the
// operator's journal, returning the stored record.
func (s *TelemetryService) Record(operatorEmail string, input *MeasurementInput) (*domain.Measurement, error) {
	now := s.now()
	m := domain.Measurement{
		Date:           now.Format("2006-01-02"),
		Time:           now.Format("15:04:05"),
		OperatorEmail:  domain.NormalizeEmail(operatorEmail),
		PH:             input.PH,
		Temperature:    input.Temperature,
		Ammonia:        input.Ammonia,
		Oxygen:         input.Oxygen,
		FeedKg:         input.FeedKg,
		MortalityCount: input.MortalityCount,
		Classification: Classify(input.PH, input.Ammonia, input.Oxygen),
	}
	if err := s.measurementRepo.Append(m); err != nil {
		return nil, err
	}
	return &m, nil
}

// History returns the operator's own journal, most recent limit entries in
// insertion order. limit <= 0 returns the full journal.
func (s *TelemetryService) History(operatorEmail string, limit int) ([]domain.Measurement, error) {
	all, err := s.measurementRepo.ByOperator(operatorEmail)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}
