package moderation

import "errors"

var (
	// ErrUnauthorized means no subject was supplied or the subject is
	// unknown to the profile store.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the subject exists but its role does not
	// satisfy the requirement.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTarget means a report target named both a user and a
	// pin, or neither.
	ErrInvalidTarget = errors.New("report must target exactly one of a user or a pin")

	// ErrMissingText means the report reason was empty.
	ErrMissingText = errors.New("report text is required")

	// ErrReporterBanned means a banned profile tried to file a report.
	ErrReporterBanned = errors.New("reporter is banned")

	// ErrDuplicateReport means the reporter already has a report
	// against the same target.
	ErrDuplicateReport = errors.New("duplicate report for target")

	// ErrNotFound covers missing reports, profiles and pins. Callers
	// re-applying a moderation action treat it as "already handled".
	ErrNotFound = errors.New("not found")

	// ErrInvalidAction means the action was not dismiss, warn or ban.
	ErrInvalidAction = errors.New("invalid moderation action")

	// ErrNotWarned means a warning acknowledgement was attempted by a
	// profile that is not currently in the warning status.
	ErrNotWarned = errors.New("profile is not in warning status")
)
