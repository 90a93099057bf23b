package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type appealRequest struct {
	Message string `json:"message" binding:"required"`
	Lang    string `json:"lang"`
}

// SubmitAppeal opens an appeal against the caller's active suspension.
func (h *Handler) SubmitAppeal(c *gin.Context) {
	var req appealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Lang == "" {
		req.Lang = "en"
	}

	appeal, err := h.Trust.SubmitAppeal(c.GetString("actor_id"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"appeal_id": appeal.ID,
		"status":    appeal.Status,
		"notice":    h.Localizer.GetString(req.Lang, "appeal.received"),
	})
}

type appealReview struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Note       string `json:"note"`
}

// ApproveAppeal approves a pending appeal, which reactivates the actor.
func (h *Handler) ApproveAppeal(c *gin.Context) {
	h.resolveAppeal(c, true)
}

// RejectAppeal rejects a pending appeal; the suspension stands.
func (h *Handler) RejectAppeal(c *gin.Context) {
	h.resolveAppeal(c, false)
}

func (h *Handler) resolveAppeal(c *gin.Context, approve bool) {
	var req appealReview
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appeal, err := h.Trust.ResolveAppeal(c.Param("id"), req.ReviewerID, approve, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appeal)
}
