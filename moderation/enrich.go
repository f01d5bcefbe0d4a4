package moderation

import (
	"context"
	"sync"

	"github.com/map-mark/api-go/models"
)

// EnrichedReport is a report joined with the records it references.
// Missing references (e.g. a pin deleted after the report was filed)
// are left nil rather than failing the listing.
type EnrichedReport struct {
	models.Report
	Reporter     *models.Profile `json:"reporter,omitempty"`
	ReportedUser *models.Profile `json:"reported_user,omitempty"`
	ReportedPin  *models.Pin     `json:"reported_pin,omitempty"`
}

// EnrichReports returns every report with its reporter, reported user
// and reported pin attached. The per-report lookups are independent
// reads, so they fan out concurrently.
func (a *Actions) EnrichReports(ctx context.Context) ([]EnrichedReport, error) {
	reports, err := a.Reports.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedReport, len(reports))
	var wg sync.WaitGroup
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			enriched[i] = a.enrichOne(ctx, reports[i])
		}(i)
	}
	wg.Wait()

	return enriched, nil
}

func (a *Actions) enrichOne(ctx context.Context, report models.Report) EnrichedReport {
	e := EnrichedReport{Report: report}

	if reporter, err := a.Profiles.GetProfile(ctx, report.ProfileID); err == nil {
		e.Reporter = reporter
	}
	if report.ReportedUserID != "" {
		if target, err := a.Profiles.GetProfile(ctx, report.ReportedUserID); err == nil {
			e.ReportedUser = target
		}
	}
	if report.ReportedPinID != "" {
		if pin, err := a.Pins.GetPin(ctx, report.ReportedPinID); err == nil {
			e.ReportedPin = pin
		}
	}

	return e
}
