package moderation

import (
	"context"

	"github.com/map-mark/api-go/models"
)

// Target names the user or pin a report concerns. Exactly one field
// must be set; Valid reports whether that holds.
type Target struct {
	UserID string
	PinID  string
}

func UserTarget(id string) Target { return Target{UserID: id} }
func PinTarget(id string) Target  { return Target{PinID: id} }

func (t Target) Valid() bool {
	return (t.UserID != "") != (t.PinID != "")
}

// Matches reports whether a stored report row points at this target.
func (t Target) Matches(r *models.Report) bool {
	if t.UserID != "" {
		return r.ReportedUserID == t.UserID
	}
	return t.PinID != "" && r.ReportedPinID == t.PinID
}

// The store interfaces below are the only persistence surface the
// moderation core sees. Lookups return ErrNotFound for missing rows;
// bulk deletes are no-ops when nothing matches.

type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfileStatus(ctx context.Context, id, status string) error
}

type PinStore interface {
	GetPin(ctx context.Context, id string) (*models.Pin, error)
	ListPinsByOwner(ctx context.Context, ownerID string) ([]models.Pin, error)
	UpdatePinStatus(ctx context.Context, id, status string) error
	DeletePin(ctx context.Context, id string) error
	DeletePinsByOwner(ctx context.Context, ownerID string) error
}

type ReportStore interface {
	InsertReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context) ([]models.Report, error)
	ListReportsByReporter(ctx context.Context, reporterID string) ([]models.Report, error)
	CountActiveReports(ctx context.Context, target Target) (int64, error)
	DeleteReport(ctx context.Context, id string) error
	DeleteReportsForUser(ctx context.Context, userID string) error
	DeleteReportsForPins(ctx context.Context, pinIDs []string) error
	DeleteReportsForUserOrPin(ctx context.Context, userID, pinID string) error
}

// BlobStore removes stored pin images by object key. Implementations
// must tolerate keys that no longer exist.
type BlobStore interface {
	RemoveByKeys(ctx context.Context, keys []string) error
}
