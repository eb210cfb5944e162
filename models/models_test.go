package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pulseboard/domain/core"
)

func TestAlert_Lifecycle(t *testing.T) {
	alert := Alert{
		Type:     AlertThresholdBreach,
		Severity: SeverityHigh,
		Title:    "Throughput breached the red threshold",
	}

	if alert.IsRead || alert.IsResolved {
		t.Fatal("new alerts start unread and unresolved")
	}

	// Mark-read is idempotent
	alert.MarkRead()
	alert.MarkRead()
	if !alert.IsRead {
		t.Error("expected alert to be read")
	}
	if alert.IsResolved {
		t.Error("reading must not resolve")
	}

	// Resolve records the resolver and is terminal
	resolver := uuid.New()
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := alert.Resolve(resolver, now); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !alert.IsResolved || alert.ResolvedBy == nil || *alert.ResolvedBy != resolver {
		t.Error("resolution did not record the resolver")
	}

	err := alert.Resolve(uuid.New(), now.Add(time.Hour))
	if !errors.Is(err, core.ErrAlertResolved) {
		t.Errorf("expected ErrAlertResolved on second resolve, got %v", err)
	}
	if *alert.ResolvedBy != resolver {
		t.Error("second resolve must not overwrite the original resolver")
	}
}

func TestActual_ReviewTransitions(t *testing.T) {
	reviewer := uuid.New()
	now := time.Now()

	actual := Actual{Status: ReviewPending}
	if err := actual.Approve(reviewer, now, "verified against source"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if actual.Status != ReviewApproved || actual.ReviewedBy == nil {
		t.Error("approval did not record the reviewer")
	}

	// Any second review attempt fails
	if err := actual.Reject(reviewer, now, ""); !errors.Is(err, core.ErrActualReviewed) {
		t.Errorf("expected ErrActualReviewed, got %v", err)
	}
	if err := actual.Approve(reviewer, now, ""); !errors.Is(err, core.ErrActualReviewed) {
		t.Errorf("expected ErrActualReviewed, got %v", err)
	}

	rejected := Actual{Status: ReviewPending}
	if err := rejected.Reject(reviewer, now, "evidence missing"); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != ReviewRejected {
		t.Errorf("status = %s, want rejected", rejected.Status)
	}
}

func TestThreshold_ValidateFor(t *testing.T) {
	tests := []struct {
		name      string
		threshold Threshold
		polarity  Polarity
		wantErr   bool
	}{
		{"descending order for higher-is-better", Threshold{Green: 80, Amber: 60, Red: 40}, HigherIsBetter, false},
		{"equal cutoffs allowed", Threshold{Green: 50, Amber: 50, Red: 50}, HigherIsBetter, false},
		{"inverted order rejected", Threshold{Green: 40, Amber: 60, Red: 80}, HigherIsBetter, true},
		{"ascending order for lower-is-better", Threshold{Green: 110, Amber: 130, Red: 150}, LowerIsBetter, false},
		{"descending order rejected for lower-is-better", Threshold{Green: 150, Amber: 130, Red: 110}, LowerIsBetter, true},
		{"unknown polarity rejected", Threshold{Green: 80, Amber: 60, Red: 40}, Polarity("sideways"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.threshold.ValidateFor(tt.polarity)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKPI_Validate(t *testing.T) {
	valid := KPI{
		Name:      "Customer Satisfaction",
		Unit:      "percentage",
		DataType:  DataTypeNumeric,
		Frequency: FrequencyQuarterly,
		Polarity:  HigherIsBetter,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid KPI rejected: %v", err)
	}

	noName := valid
	noName.Name = ""
	if err := noName.Validate(); err == nil {
		t.Error("empty name accepted")
	}

	badFreq := valid
	badFreq.Frequency = "weekly"
	if err := badFreq.Validate(); !errors.Is(err, core.ErrInvalidFrequency) {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}

	badPolarity := valid
	badPolarity.Polarity = "sideways"
	if err := badPolarity.Validate(); !errors.Is(err, core.ErrInvalidPolarity) {
		t.Errorf("expected ErrInvalidPolarity, got %v", err)
	}
}
