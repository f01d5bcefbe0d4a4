package config

import (
	"os"
	"strconv"
)

// DefaultReportThreshold is the number of active reports that flips a
// target's status to "reported" when no override is configured.
const DefaultReportThreshold = 5

type ModerationConfig struct {
	// ReportThreshold is the Maxnumber escalation limit. Injected so
	// tests can run with a small value.
	ReportThreshold int64
	// APIKey guards the /reports router as a whole (x-api-key header).
	APIKey string
}

func GetModerationConfig() *ModerationConfig {
	threshold := int64(DefaultReportThreshold)
	if raw := os.Getenv("REPORT_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			threshold = parsed
		}
	}

	return &ModerationConfig{
		ReportThreshold: threshold,
		APIKey:          os.Getenv("MODERATION_API_KEY"),
	}
}
