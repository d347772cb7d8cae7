package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNominal(t *testing.T) {
	assert.Equal(t, "nominal", Classify(7.0, 0.01, 6))
}

func TestClassifyPHThresholds(t *testing.T) {
	tests := []struct {
		name string
		ph   float64
		want string
	}{
		{"below acid threshold", 5.5, "critical-acid"},
		{"just below 6.0", 5.99, "critical-acid"},
		{"exactly 6.0 is a low warning", 6.0, "warning-low"},
		{"inside warning band", 6.3, "warning-low"},
		{"just below 6.5", 6.49, "warning-low"},
		{"exactly 6.5 is nominal", 6.5, "nominal"},
		{"exactly 8.5 is nominal", 8.5, "nominal"},
		{"just above 8.5", 8.51, "warning-high"},
		{"exactly 9.0 is a high warning", 9.0, "warning-high"},
		{"above base threshold", 9.01, "critical-base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ph, 0.01, 6))
		})
	}
}

func TestClassifyAmmoniaThresholds(t *testing.T) {
	tests := []struct {
		name    string
		ammonia float64
		want    string
	}{
		{"below warning band", 0.019, "nominal"},
		{"warning band lower bound", 0.02, "warning-ammonia"},
		{"warning band upper bound", 0.05, "warning-ammonia"},
		{"above critical threshold", 0.051, "critical-ammonia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(7.0, tt.ammonia, 6))
		})
	}
}

func TestClassifyOxygenThresholds(t *testing.T) {
	tests := []struct {
		name   string
		oxygen float64
		want   string
	}{
		{"below critical threshold", 2.9, "critical-oxygen"},
		{"exactly 3 is a warning", 3, "warning-oxygen"},
		{"just below 5", 4.99, "warning-oxygen"},
		{"exactly 5 is nominal", 5, "nominal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(7.0, 0.01, tt.oxygen))
		})
	}
}

func TestClassifyCombinesFindingsInEvaluationOrder(t *testing.T) {
	got := Classify(5.5, 0.06, 2)
	assert.Equal(t, "critical-acid | critical-ammonia | critical-oxygen", got)

	got = Classify(6.2, 0.03, 4)
	assert.Equal(t, "warning-low | warning-ammonia | warning-oxygen", got)

	// Mixed severities keep evaluation order, no reordering by severity.
	got = Classify(9.5, 0.03, 2)
	assert.Equal(t, "critical-base | warning-ammonia | critical-oxygen", got)
}

func TestClassifySingleFindingScenario(t *testing.T) {
	// pH 5.5, ammonia 0.01, oxygen 6: only the acid finding fires.
	got := Classify(5.5, 0.01, 6)
	assert.Equal(t, "critical-acid", got)
}

func TestHasFinding(t *testing.T) {
	assert.False(t, HasFinding("nominal"))
	assert.True(t, HasFinding("critical-acid"))
	assert.True(t, HasFinding("warning-low | warning-oxygen"))
}
