package handler

import (
	"net/http"

	"festago/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetSafetyStatus returns score, status and badges for one actor. The
// surrounding application uses it to gate booking and messaging in the UI.
func (h *Handler) GetSafetyStatus(c *gin.Context) {
	status, err := h.Trust.GetSafetyStatus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CanMessage reports whether the actor may use the chat.
func (h *Handler) CanMessage(c *gin.Context) {
	ok, err := h.Trust.CanMessage(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor_id": c.Param("id"), "can_message": ok})
}

type suspendRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details"`
}

// SuspendActor is the explicit ops suspension path.
func (h *Handler) SuspendActor(c *gin.Context) {
	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	susp, err := h.Trust.Suspend(c.Param("id"), models.SuspensionReason(req.Reason), req.Details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, susp)
}

type reactivateRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Note       string `json:"note"`
}

// ReactivateActor lifts an active suspension.
func (h *Handler) ReactivateActor(c *gin.Context) {
	var req reactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Trust.Reactivate(c.Param("id"), req.ReviewerID, req.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actor_id": c.Param("id"), "reactivated": true})
}
