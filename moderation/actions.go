package moderation

import (
	"context"
	"fmt"

	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/storage"
)

// Admin moderation actions.
const (
	ActionDismiss = "dismiss"
	ActionWarn    = "warn"
	ActionBan     = "ban"
)

// ActionResult reports what an applied action deleted.
type ActionResult struct {
	Action string         `json:"action"`
	Report *models.Report `json:"report"`
	Pin    *models.Pin    `json:"pin,omitempty"`
}

// Actions applies admin moderation actions to reports: status
// transitions on the target, report cleanup and content cascades.
//
// None of the cascades run in a transaction. Every step either checks
// current state before mutating or re-applies an absolute value, so a
// failed cascade is repaired by re-invoking the same action.
type Actions struct {
	Profiles  ProfileStore
	Pins      PinStore
	Reports   ReportStore
	Blobs     BlobStore
	PublicURL string
	Threshold int64
}

func NewActions(profiles ProfileStore, pins PinStore, reports ReportStore, blobs BlobStore, publicURL string, threshold int64) *Actions {
	return &Actions{
		Profiles:  profiles,
		Pins:      pins,
		Reports:   reports,
		Blobs:     blobs,
		PublicURL: publicURL,
		Threshold: threshold,
	}
}

// ApplyAction resolves reportID and runs the requested action. A
// missing report fails with ErrNotFound, which callers treat as
// "already handled".
func (a *Actions) ApplyAction(ctx context.Context, reportID, action string) (*ActionResult, error) {
	report, err := a.Reports.GetReport(ctx, reportID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load report: %w", err)
	}

	switch action {
	case ActionDismiss:
		return a.dismiss(ctx, report)
	case ActionWarn:
		return a.warn(ctx, report)
	case ActionBan:
		return a.ban(ctx, report)
	default:
		return nil, ErrInvalidAction
	}
}

// dismiss drops the single report and reverts the target's "reported"
// flag when the remaining active reports fall below the threshold.
// The reversion only touches targets currently in "reported"; warning
// and banned statuses stay put.
func (a *Actions) dismiss(ctx context.Context, report *models.Report) (*ActionResult, error) {
	if err := a.Reports.DeleteReport(ctx, report.ID); err != nil {
		return nil, fmt.Errorf("delete report: %w", err)
	}

	if report.ReportedUserID != "" {
		count, err := a.Reports.CountActiveReports(ctx, UserTarget(report.ReportedUserID))
		if err != nil {
			return nil, fmt.Errorf("count remaining reports: %w", err)
		}
		if count < a.Threshold {
			profile, err := a.Profiles.GetProfile(ctx, report.ReportedUserID)
			if err != nil && err != ErrNotFound {
				return nil, fmt.Errorf("load reported user: %w", err)
			}
			if err == nil && profile.Status == models.StatusReported {
				if err := a.Profiles.UpdateProfileStatus(ctx, profile.ID, models.StatusPrivate); err != nil {
					return nil, fmt.Errorf("revert user status: %w", err)
				}
			}
		}
	} else {
		count, err := a.Reports.CountActiveReports(ctx, PinTarget(report.ReportedPinID))
		if err != nil {
			return nil, fmt.Errorf("count remaining reports: %w", err)
		}
		if count < a.Threshold {
			pin, err := a.Pins.GetPin(ctx, report.ReportedPinID)
			if err != nil && err != ErrNotFound {
				return nil, fmt.Errorf("load reported pin: %w", err)
			}
			if err == nil && pin.Status == models.PinStatusReported {
				if err := a.Pins.UpdatePinStatus(ctx, pin.ID, models.PinStatusPrivate); err != nil {
					return nil, fmt.Errorf("revert pin status: %w", err)
				}
			}
		}
	}

	return &ActionResult{Action: ActionDismiss, Report: report}, nil
}

// warn escalates a user to "warning", or deletes a reported pin and
// escalates its owner. Either way every report against the target is
// dropped.
func (a *Actions) warn(ctx context.Context, report *models.Report) (*ActionResult, error) {
	if report.ReportedUserID != "" {
		profile, err := a.Profiles.GetProfile(ctx, report.ReportedUserID)
		if err != nil {
			if err == ErrNotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("load reported user: %w", err)
		}
		if err := a.warnProfile(ctx, profile); err != nil {
			return nil, err
		}
		if err := a.Reports.DeleteReportsForUser(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("delete reports for user: %w", err)
		}
		return &ActionResult{Action: ActionWarn, Report: report}, nil
	}

	pin, err := a.Pins.GetPin(ctx, report.ReportedPinID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load reported pin: %w", err)
	}

	if err := a.Reports.DeleteReportsForPins(ctx, []string{pin.ID}); err != nil {
		return nil, fmt.Errorf("delete reports for pin: %w", err)
	}
	if err := a.Blobs.RemoveByKeys(ctx, storage.KeysFromURLs(a.PublicURL, pin.ImgURLs)); err != nil {
		return nil, fmt.Errorf("remove pin images: %w", err)
	}
	if err := a.Pins.DeletePin(ctx, pin.ID); err != nil {
		return nil, fmt.Errorf("delete pin: %w", err)
	}

	owner, err := a.Profiles.GetProfile(ctx, pin.ProfileID)
	if err != nil && err != ErrNotFound {
		return nil, fmt.Errorf("load pin owner: %w", err)
	}
	if err == nil {
		if err := a.warnProfile(ctx, owner); err != nil {
			return nil, err
		}
	}

	return &ActionResult{Action: ActionWarn, Report: report, Pin: pin}, nil
}

// warnProfile sets the warning status unless the profile is already
// warned or banned.
func (a *Actions) warnProfile(ctx context.Context, profile *models.Profile) error {
	if profile.Status == models.StatusWarning || profile.Status == models.StatusBanned {
		return nil
	}
	if err := a.Profiles.UpdateProfileStatus(ctx, profile.ID, models.StatusWarning); err != nil {
		return fmt.Errorf("set warning status: %w", err)
	}
	return nil
}

// ban bans the reported user, or the owner of the reported pin, and
// purges everything attached to them: all reports naming them or any
// of their pins, the pins' stored images, and the pin rows themselves.
func (a *Actions) ban(ctx context.Context, report *models.Report) (*ActionResult, error) {
	if report.ReportedUserID != "" {
		if err := a.Profiles.UpdateProfileStatus(ctx, report.ReportedUserID, models.StatusBanned); err != nil {
			return nil, fmt.Errorf("set banned status: %w", err)
		}
		if err := a.Reports.DeleteReportsForUser(ctx, report.ReportedUserID); err != nil {
			return nil, fmt.Errorf("delete reports for user: %w", err)
		}
		if err := a.purgePins(ctx, report.ReportedUserID); err != nil {
			return nil, err
		}
		return &ActionResult{Action: ActionBan, Report: report}, nil
	}

	pin, err := a.Pins.GetPin(ctx, report.ReportedPinID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load reported pin: %w", err)
	}

	if err := a.Profiles.UpdateProfileStatus(ctx, pin.ProfileID, models.StatusBanned); err != nil {
		return nil, fmt.Errorf("set banned status: %w", err)
	}
	if err := a.Reports.DeleteReportsForUserOrPin(ctx, pin.ProfileID, pin.ID); err != nil {
		return nil, fmt.Errorf("delete reports for owner and pin: %w", err)
	}
	if err := a.purgePins(ctx, pin.ProfileID); err != nil {
		return nil, err
	}

	return &ActionResult{Action: ActionBan, Report: report, Pin: pin}, nil
}

// purgePins removes every pin owned by ownerID together with the
// reports referencing those pins and their stored images. Safe to run
// with zero pins.
func (a *Actions) purgePins(ctx context.Context, ownerID string) error {
	pins, err := a.Pins.ListPinsByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list pins for owner: %w", err)
	}
	if len(pins) == 0 {
		return nil
	}

	pinIDs := make([]string, 0, len(pins))
	var urls []string
	for i := range pins {
		pinIDs = append(pinIDs, pins[i].ID)
		urls = append(urls, pins[i].ImgURLs...)
	}

	if err := a.Reports.DeleteReportsForPins(ctx, pinIDs); err != nil {
		return fmt.Errorf("delete reports for pins: %w", err)
	}
	if err := a.Blobs.RemoveByKeys(ctx, storage.KeysFromURLs(a.PublicURL, urls)); err != nil {
		return fmt.Errorf("remove pin images: %w", err)
	}
	if err := a.Pins.DeletePinsByOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("delete pins: %w", err)
	}
	return nil
}

// AcknowledgeWarning is the "seen" flow: a warned profile confirms the
// warning and drops back to private.
func (a *Actions) AcknowledgeWarning(ctx context.Context, profileID string) error {
	profile, err := a.Profiles.GetProfile(ctx, profileID)
	if err != nil {
		if err == ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("load profile: %w", err)
	}
	if profile.Status != models.StatusWarning {
		return ErrNotWarned
	}
	if err := a.Profiles.UpdateProfileStatus(ctx, profileID, models.StatusPrivate); err != nil {
		return fmt.Errorf("clear warning status: %w", err)
	}
	return nil
}
