// Package handler wires the trust engine to its HTTP surface: inbound events
// from the chat, booking and review subsystems, the report and appeal intake,
// the read-only safety gates, and the ops review endpoints.
package handler

import (
	"errors"
	"net/http"

	"festago/backend/internal/incident"
	"festago/backend/internal/localization"
	"festago/backend/internal/report"
	"festago/backend/internal/scanner"
	"festago/backend/internal/storage"
	"festago/backend/internal/trust"

	"github.com/gin-gonic/gin"
)

// Handler holds the engine services the HTTP layer dispatches into.
type Handler struct {
	Trust     *trust.Service
	Reports   *report.Service
	Scanner   *scanner.Scanner
	Localizer *localization.Localizer
	Feed      *incident.FeedHub
}

func NewHandler(t *trust.Service, r *report.Service, sc *scanner.Scanner, loc *localization.Localizer, feed *incident.FeedHub) *Handler {
	return &Handler{Trust: t, Reports: r, Scanner: sc, Localizer: loc, Feed: feed}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrSelfReport),
		errors.Is(err, report.ErrUnknownCategory),
		errors.Is(err, report.ErrInvalidTransition),
		errors.Is(err, trust.ErrInvalidActor),
		errors.Is(err, trust.ErrEmptyMessage),
		errors.Is(err, trust.ErrNotAppealable),
		errors.Is(err, trust.ErrUnknownOutcome):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, trust.ErrAppealAlreadyPending),
		errors.Is(err, report.ErrTerminalReport),
		errors.Is(err, trust.ErrAppealNotPending),
		errors.Is(err, storage.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, trust.ErrNoActiveSuspension):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
