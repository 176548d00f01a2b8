package api

import (
	"errors"
	"net/http"

	"asanaflow/yoga-app/internal/playback"
	"asanaflow/yoga-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaybackHandler exposes the per-session playback state machine.
type PlaybackHandler struct {
	manager *service.PlaybackManager
}

// NewPlaybackHandler creates a new PlaybackHandler.
func NewPlaybackHandler(manager *service.PlaybackManager) *PlaybackHandler {
	return &PlaybackHandler{manager: manager}
}

// Start godoc
// @Summary Start playback for a session
// @Tags Playback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} playback.Status "Playback status"
// @Failure 404 {object} gin.H "Session not found"
// @Failure 409 {object} gin.H "Invalid playback state"
// @Router /sessions/{id}/playback/start [post]
func (h *PlaybackHandler) Start(c *gin.Context) {
	status, err := h.manager.Start(c.Request.Context(), c.Param("id"))
	h.respond(c, status, err)
}

// Pause halts the countdown for a running session.
func (h *PlaybackHandler) Pause(c *gin.Context) {
	status, err := h.manager.Pause(c.Param("id"))
	h.respond(c, status, err)
}

// Resume continues a paused session.
func (h *PlaybackHandler) Resume(c *gin.Context) {
	status, err := h.manager.Resume(c.Param("id"))
	h.respond(c, status, err)
}

// Next skips forward one pose.
func (h *PlaybackHandler) Next(c *gin.Context) {
	status, err := h.manager.Next(c.Param("id"))
	h.respond(c, status, err)
}

// Previous skips back one pose.
func (h *PlaybackHandler) Previous(c *gin.Context) {
	status, err := h.manager.Previous(c.Param("id"))
	h.respond(c, status, err)
}

// Reset returns playback to idle.
func (h *PlaybackHandler) Reset(c *gin.Context) {
	status, err := h.manager.Reset(c.Param("id"))
	h.respond(c, status, err)
}

// Status reports current playback state.
func (h *PlaybackHandler) Status(c *gin.Context) {
	status, err := h.manager.Status(c.Param("id"))
	h.respond(c, status, err)
}

func (h *PlaybackHandler) respond(c *gin.Context, status playback.Status, err error) {
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, playback.ErrNotIdle),
			errors.Is(err, playback.ErrNotRunning),
			errors.Is(err, playback.ErrNotPaused),
			errors.Is(err, playback.ErrComplete),
			errors.Is(err, playback.ErrNoPoses):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Playback operation failed.")
		}
		return
	}
	c.JSON(http.StatusOK, status)
}
