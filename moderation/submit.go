package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/map-mark/api-go/models"
)

// Submitter validates and records new reports and applies the
// report-count escalation.
type Submitter struct {
	Profiles  ProfileStore
	Pins      PinStore
	Reports   ReportStore
	Threshold int64
}

func NewSubmitter(profiles ProfileStore, pins PinStore, reports ReportStore, threshold int64) *Submitter {
	return &Submitter{
		Profiles:  profiles,
		Pins:      pins,
		Reports:   reports,
		Threshold: threshold,
	}
}

// SubmitReport records a report by reporterID against target. A given
// reporter may hold at most one report per target. Once the target has
// accumulated Threshold active reports its status flips to "reported".
//
// The escalation is best effort: when the status update fails, the
// created report stays in the store and its id is returned alongside
// the error.
func (s *Submitter) SubmitReport(ctx context.Context, reporterID, text string, target Target) (string, error) {
	if !target.Valid() {
		return "", ErrInvalidTarget
	}
	if text == "" {
		return "", ErrMissingText
	}
	if reporterID == "" {
		return "", ErrUnauthorized
	}

	reporter, err := s.Profiles.GetProfile(ctx, reporterID)
	if err != nil {
		if err == ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("look up reporter: %w", err)
	}
	if reporter.Status == models.StatusBanned {
		return "", ErrReporterBanned
	}

	existing, err := s.Reports.ListReportsByReporter(ctx, reporterID)
	if err != nil {
		return "", fmt.Errorf("check existing reports: %w", err)
	}
	for i := range existing {
		if target.Matches(&existing[i]) {
			return "", ErrDuplicateReport
		}
	}

	report := &models.Report{
		ID:             uuid.New().String(),
		ProfileID:      reporterID,
		Text:           text,
		Date:           time.Now(),
		ReportedUserID: target.UserID,
		ReportedPinID:  target.PinID,
		Active:         true,
	}
	if err := s.Reports.InsertReport(ctx, report); err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}

	if err := s.escalate(ctx, target); err != nil {
		return report.ID, err
	}

	return report.ID, nil
}

// escalate flips the target's status to "reported" once enough active
// reports have accumulated.
func (s *Submitter) escalate(ctx context.Context, target Target) error {
	count, err := s.Reports.CountActiveReports(ctx, target)
	if err != nil {
		return fmt.Errorf("count reports for target: %w", err)
	}
	if count < s.Threshold {
		return nil
	}

	if target.UserID != "" {
		if err := s.Profiles.UpdateProfileStatus(ctx, target.UserID, models.StatusReported); err != nil {
			return fmt.Errorf("flag reported user: %w", err)
		}
		return nil
	}
	if err := s.Pins.UpdatePinStatus(ctx, target.PinID, models.PinStatusReported); err != nil {
		return fmt.Errorf("flag reported pin: %w", err)
	}
	return nil
}
