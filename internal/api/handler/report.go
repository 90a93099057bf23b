package handler

import (
	"net/http"

	"festago/backend/internal/models"
	"festago/backend/internal/report"

	"github.com/gin-gonic/gin"
)

type reportRequest struct {
	ReporterRole   string   `json:"reporter_role"`
	ReportedID     string   `json:"reported_id" binding:"required"`
	ReportedRole   string   `json:"reported_role"`
	Category       string   `json:"category" binding:"required"`
	Reason         string   `json:"reason"`
	EvidenceRefs   []string `json:"evidence_refs"`
	BookingID      string   `json:"booking_id"`
	ReviewID       string   `json:"review_id"`
	ConversationID string   `json:"conversation_id"`
}

// SubmitReport files an abuse report. The reporter identity comes from the
// token, never from the body; severity is derived from the category.
func (h *Handler) SubmitReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.Reports.Submit(report.Submission{
		ReporterID:     c.GetString("actor_id"),
		ReporterRole:   models.ActorRole(req.ReporterRole),
		ReportedID:     req.ReportedID,
		ReportedRole:   models.ActorRole(req.ReportedRole),
		Category:       models.ReportCategory(req.Category),
		Reason:         req.Reason,
		EvidenceRefs:   req.EvidenceRefs,
		BookingID:      req.BookingID,
		ReviewID:       req.ReviewID,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

type reviewAction struct {
	ReviewerID string   `json:"reviewer_id" binding:"required"`
	Note       string   `json:"note"`
	Actions    []string `json:"actions"`
}

// InvestigateReport moves a pending report into investigation.
func (h *Handler) InvestigateReport(c *gin.Context) {
	var req reviewAction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.Reports.StartInvestigation(c.Param("id"), req.ReviewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ResolveReport closes a report; non-empty actions confirm the infraction
// and record a violation against the reported actor.
func (h *Handler) ResolveReport(c *gin.Context) {
	var req reviewAction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.Reports.Resolve(c.Param("id"), req.ReviewerID, req.Note, req.Actions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// DismissReport closes a report without action.
func (h *Handler) DismissReport(c *gin.Context) {
	var req reviewAction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.Reports.Dismiss(c.Param("id"), req.ReviewerID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// EscalateReport routes a report out of the normal queue.
func (h *Handler) EscalateReport(c *gin.Context) {
	var req reviewAction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.Reports.Escalate(c.Param("id"), req.ReviewerID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
