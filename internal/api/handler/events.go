package handler

import (
	"log"
	"net/http"

	"festago/backend/internal/models"
	"festago/backend/internal/trust"

	"github.com/gin-gonic/gin"
)

type messageEvent struct {
	SenderID string `json:"sender_id" binding:"required"`
	Text     string `json:"text"`
	Lang     string `json:"lang"`
}

// MessageSubmitted analyzes a chat message before delivery. High severity
// blocks the message and records a contact-sharing violation; medium severity
// lets it through with a warning; low severity is informational only.
func (h *Handler) MessageSubmitted(c *gin.Context) {
	var ev messageEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev.Lang == "" {
		ev.Lang = "en"
	}

	canMessage, err := h.Trust.CanMessage(ev.SenderID)
	if err == nil && !canMessage {
		c.JSON(http.StatusForbidden, gin.H{
			"allowed": false,
			"reason":  "suspended",
			"warning": h.Localizer.GetString(ev.Lang, "suspension.notice"),
		})
		return
	}

	detection := h.Scanner.Analyze(ev.Text)
	resp := gin.H{
		"allowed":  true,
		"category": detection.Category,
		"severity": detection.Severity,
	}

	switch {
	case detection.Blocks():
		if _, err := h.Trust.RecordViolation(ev.SenderID, models.ViolationContactSharing,
			detection.Severity, "blocked message: "+string(detection.Category), detection.MatchedText); err != nil {
			respondError(c, err)
			return
		}
		resp["allowed"] = false
		resp["warning"] = h.Localizer.GetString(ev.Lang, "warning.high")
		c.JSON(http.StatusOK, resp)

	case detection.Warns():
		// Delivered, but logged for repeat-offender tracking.
		log.Printf("INFO: medium-severity contact signal from %s (%s: %q)",
			ev.SenderID, detection.Category, detection.MatchedText)
		resp["warning"] = h.Localizer.GetString(ev.Lang, "warning.medium")
		c.JSON(http.StatusOK, resp)

	case detection.Severity == models.SeverityLow:
		resp["warning"] = h.Localizer.GetString(ev.Lang, "warning.low")
		c.JSON(http.StatusOK, resp)

	default:
		c.JSON(http.StatusOK, resp)
	}
}

type bookingEvent struct {
	ActorID string `json:"actor_id" binding:"required"`
	Outcome string `json:"outcome" binding:"required"`
}

// BookingOutcomeChanged folds a finished booking into the actor's behavioral
// aggregates.
func (h *Handler) BookingOutcomeChanged(c *gin.Context) {
	var ev bookingEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := h.Trust.ApplyBookingOutcome(ev.ActorID, trust.BookingOutcome(ev.Outcome))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor_id": actor.ID, "score": actor.SafetyScore, "status": actor.Status})
}

type reviewEvent struct {
	TargetID string   `json:"target_id" binding:"required"`
	Rating   *float64 `json:"rating" binding:"required"`
}

// ReviewSubmitted folds a review into the target's rating aggregate.
func (h *Handler) ReviewSubmitted(c *gin.Context) {
	var ev reviewEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, err := h.Trust.ApplyReview(ev.TargetID, *ev.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor_id": actor.ID, "score": actor.SafetyScore, "status": actor.Status})
}
