package api

import (
	"errors"
	"net/http"

	"asanaflow/yoga-app/internal/domain"
	"asanaflow/yoga-app/internal/generator"
	"asanaflow/yoga-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs for API (Data Transfer Objects) ---

// GenerateSessionRequest defines the expected JSON for generating a session.
type GenerateSessionRequest struct {
	Description string   `json:"description"`
	Goal        string   `json:"goal" binding:"omitempty,oneof=relaxation energy strength flexibility balance focus"`
	FocusAreas  []string `json:"focusAreas" binding:"omitempty"`
	Duration    int      `json:"duration" binding:"required,min=5,max=60"`
	Level       string   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	PainPoints  []string `json:"painPoints" binding:"omitempty"`
	Energy      string   `json:"energy" binding:"omitempty,oneof=low medium high"`
}

func (r GenerateSessionRequest) toUserInput() domain.UserInput {
	return domain.UserInput{
		Description:     r.Description,
		Goal:            domain.Goal(r.Goal),
		FocusAreas:      r.FocusAreas,
		DurationMinutes: r.Duration,
		Level:           domain.Difficulty(r.Level),
		PainPoints:      r.PainPoints,
		Energy:          domain.Energy(r.Energy),
	}
}

// --- Handler Methods ---

// GenerateSession godoc
// @Summary Generate a personalized yoga session
// @Description Builds a timed pose sequence from the user's needs and persists it.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body GenerateSessionRequest true "Session request"
// @Success 201 {object} domain.YogaSession "Session generated"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 422 {object} gin.H "No poses available"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [post]
func (h *SessionHandler) GenerateSession(c *gin.Context) {
	var req GenerateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.sessionService.Generate(c.Request.Context(), req.toUserInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, generator.ErrEmptyCatalog):
			// Retryable from the caller's perspective: the catalog may load
			// on a later restart.
			abortWithError(c, http.StatusUnprocessableEntity, "Failed to generate session. Please try again.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate session.")
		}
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List all generated sessions
// @Description Retrieves every stored session, newest first.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.YogaSession "List of sessions"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions.")
		return
	}

	if sessions == nil {
		c.JSON(http.StatusOK, []domain.YogaSession{})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GetSession godoc
// @Summary Get a session by id
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} domain.YogaSession "Session"
// @Failure 404 {object} gin.H "Session not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve session.")
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session by id
// @Description Removes the session from the store. Deleting an unknown id succeeds.
// @Tags Sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204 "Deleted"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessionService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete session.")
		return
	}
	c.Status(http.StatusNoContent)
}
