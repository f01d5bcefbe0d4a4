package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/map-mark/api-go/models"
	"github.com/map-mark/api-go/moderation"
	"github.com/map-mark/api-go/utils"
)

type ReportController struct {
	Gate      *moderation.Gate
	Submitter *moderation.Submitter
	Actions   *moderation.Actions
}

type SubmitReportRequest struct {
	Text           string `json:"text"`
	ReportedUserID string `json:"reported_user_id"`
	ReportedPinID  string `json:"reported_pin_id"`
}

type ApplyActionRequest struct {
	Action string `json:"action" binding:"required"`
}

func NewReportController(gate *moderation.Gate, submitter *moderation.Submitter, actions *moderation.Actions) *ReportController {
	return &ReportController{
		Gate:      gate,
		Submitter: submitter,
		Actions:   actions,
	}
}

// authorizeSubject checks the path-supplied subject against the
// verified caller, then against the stored role. The path id is the
// target of the operation; only the token identifies the caller.
func (rc *ReportController) authorizeSubject(c *gin.Context, subjectID, requiredRole string) *moderation.Capability {
	caller := utils.GetUser(c)
	if caller == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return nil
	}
	if caller.ProfileID != subjectID && caller.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot act on behalf of another profile"})
		return nil
	}

	capability, err := rc.Gate.Authorize(c.Request.Context(), subjectID, requiredRole)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown profile"})
		case errors.Is(err, moderation.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		default:
			log.Printf("authorize %s: %v", subjectID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization failed"})
		}
		return nil
	}
	return capability
}

// SubmitReport handles POST /reports/:profileId.
func (rc *ReportController) SubmitReport(c *gin.Context) {
	profileID := c.Param("profileId")
	if rc.authorizeSubject(c, profileID, models.RoleUser) == nil {
		return
	}

	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := moderation.Target{UserID: req.ReportedUserID, PinID: req.ReportedPinID}
	reportID, err := rc.Submitter.SubmitReport(c.Request.Context(), profileID, req.Text, target)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidTarget), errors.Is(err, moderation.ErrMissingText):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, moderation.ErrReporterBanned):
			c.JSON(http.StatusForbidden, gin.H{"error": "Banned profiles cannot submit reports"})
		case errors.Is(err, moderation.ErrDuplicateReport):
			c.JSON(http.StatusForbidden, gin.H{"error": "You already reported this target"})
		case errors.Is(err, moderation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reporter not found"})
		default:
			// The report may exist even when escalation failed;
			// surface the failure and let the client retry.
			log.Printf("submit report by %s: %v", profileID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Report submitted successfully",
		"report_id": reportID,
	})
}

// ApplyAction handles POST /reports/:profileId/:reportId.
func (rc *ReportController) ApplyAction(c *gin.Context) {
	adminID := c.Param("profileId")
	reportID := c.Param("reportId")
	if rc.authorizeSubject(c, adminID, models.RoleAdmin) == nil {
		return
	}

	var req ApplyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action is required"})
		return
	}

	result, err := rc.Actions.ApplyAction(c.Request.Context(), reportID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be dismiss, warn or ban"})
		case errors.Is(err, moderation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		default:
			log.Printf("apply %s to report %s: %v", req.Action, reportID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Moderation action failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Action applied successfully",
		"result":  result,
	})
}

// ListReports handles GET /reports/all/:adminId.
func (rc *ReportController) ListReports(c *gin.Context) {
	adminID := c.Param("adminId")
	if rc.authorizeSubject(c, adminID, models.RoleAdmin) == nil {
		return
	}

	reports, err := rc.Actions.EnrichReports(c.Request.Context())
	if err != nil {
		log.Printf("list reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    reports,
	})
}

// SeenWarning handles POST /reports/seen/:profileId.
func (rc *ReportController) SeenWarning(c *gin.Context) {
	profileID := c.Param("profileId")
	if rc.authorizeSubject(c, profileID, models.RoleUser) == nil {
		return
	}

	if err := rc.Actions.AcknowledgeWarning(c.Request.Context(), profileID); err != nil {
		switch {
		case errors.Is(err, moderation.ErrNotWarned):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Profile is not in warning status"})
		case errors.Is(err, moderation.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			log.Printf("acknowledge warning for %s: %v", profileID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to acknowledge warning"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Warning acknowledged"})
}
