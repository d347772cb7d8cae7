package services

import "aquamarket/internal/adapters/persistence/repositories"

// certificationWindow is how many of the most recent measurements the badge
// is derived from.
const certificationWindow = 3

// CertificationService derives the certification badge from the tail of an
// operator's telemetry ledger. The badge is recomputed on every call and is
// never cached or persisted, so it always reflects current history.
type CertificationService struct {
	measurementRepo repositories.MeasurementRepository
}

// NewCertificationService creates a new certification service
func NewCertificationService(measurementRepo repositories.MeasurementRepository) *CertificationService {
	return &CertificationService{measurementRepo: measurementRepo}
}

// IsCertified reports whether the operator currently holds the badge: at
// least one measurement exists and none of the last three carries a critical
// or warning finding. An empty history never certifies by default.
func (s *CertificationService) IsCertified(operatorEmail string) (bool, error) {
	window, err := s.measurementRepo.LastN(operatorEmail, certificationWindow)
	if err != nil {
		return false, err
	}
	if len(window) == 0 {
		return false, nil
	}
	for _, m := range window {
		if HasFinding(m.Classification) {
			return false, nil
		}
	}
	return true, nil
}
