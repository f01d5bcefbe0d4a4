package moderation

import (
	"context"
	"errors"
	"sync"

	"github.com/map-mark/api-go/models"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory stand-in for the gorm store, implementing
// all three store contracts.
type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	pins     map[string]*models.Pin
	reports  map[string]*models.Report

	failProfileStatusUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]*models.Profile),
		pins:     make(map[string]*models.Pin),
		reports:  make(map[string]*models.Report),
	}
}

func (f *fakeStore) addProfile(p models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = &p
}

func (f *fakeStore) addPin(p models.Pin) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pins[p.ID] = &p
}

func (f *fakeStore) addReport(r models.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[r.ID] = &r
}

func (f *fakeStore) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) UpdateProfileStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProfileStatusUpdate {
		return errStoreDown
	}
	if p, ok := f.profiles[id]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeStore) GetPin(_ context.Context, id string) (*models.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ListPinsByOwner(_ context.Context, ownerID string) ([]models.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pins []models.Pin
	for _, p := range f.pins {
		if p.ProfileID == ownerID {
			pins = append(pins, *p)
		}
	}
	return pins, nil
}

func (f *fakeStore) UpdatePinStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pins[id]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeStore) DeletePin(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pins, id)
	return nil
}

func (f *fakeStore) DeletePinsByOwner(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.pins {
		if p.ProfileID == ownerID {
			delete(f.pins, id)
		}
	}
	return nil
}

func (f *fakeStore) InsertReport(_ context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeStore) GetReport(_ context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeStore) ListReports(_ context.Context) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reports []models.Report
	for _, r := range f.reports {
		reports = append(reports, *r)
	}
	return reports, nil
}

func (f *fakeStore) ListReportsByReporter(_ context.Context, reporterID string) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reports []models.Report
	for _, r := range f.reports {
		if r.ProfileID == reporterID {
			reports = append(reports, *r)
		}
	}
	return reports, nil
}

func (f *fakeStore) CountActiveReports(_ context.Context, target Target) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.reports {
		if r.Active && target.Matches(r) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) DeleteReport(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reports, id)
	return nil
}

func (f *fakeStore) DeleteReportsForUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.reports {
		if r.ReportedUserID == userID {
			delete(f.reports, id)
		}
	}
	return nil
}

func (f *fakeStore) DeleteReportsForPins(_ context.Context, pinIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make(map[string]bool, len(pinIDs))
	for _, id := range pinIDs {
		ids[id] = true
	}
	for id, r := range f.reports {
		if r.ReportedPinID != "" && ids[r.ReportedPinID] {
			delete(f.reports, id)
		}
	}
	return nil
}

func (f *fakeStore) DeleteReportsForUserOrPin(_ context.Context, userID, pinID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.reports {
		if r.ReportedUserID == userID || (pinID != "" && r.ReportedPinID == pinID) {
			delete(f.reports, id)
		}
	}
	return nil
}

// fakeBlobs records every RemoveByKeys call.
type fakeBlobs struct {
	mu    sync.Mutex
	calls [][]string
}

func (f *fakeBlobs) RemoveByKeys(_ context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := make([]string, len(keys))
	copy(copied, keys)
	f.calls = append(f.calls, copied)
	return nil
}

func (f *fakeBlobs) allKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for _, call := range f.calls {
		keys = append(keys, call...)
	}
	return keys
}
