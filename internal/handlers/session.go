package handlers

import (
	"net/http"

	"github.com/katarmal-ram/huntqr/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type CreateSessionRequest struct {
	Name         string `json:"name" binding:"required" example:"Friday Hunt"`
	TimerSeconds int    `json:"timer_seconds" example:"900"`
}

// GetSession godoc
// @Summary      Get the current session
// @Description  Returns the active session, or the newest one still in setup
// @Tags         sessions
// @Produce      json
// @Success      200 {object} models.Session
// @Failure      404 {object} ErrorResponse
// @Router       /api/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CreateSession godoc
// @Summary      Create a game session
// @Description  Creates a session in setup with the default five teams. Fails while another session is open.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Param        request body CreateSessionRequest true "Session data"
// @Success      201 {object} models.Session
// @Failure      409 {object} ErrorResponse
// @Router       /api/admin/session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Create(req.Name, req.TimerSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// StartSession godoc
// @Summary      Start the current session
// @Description  Transitions the session from setup to active and starts the game timer
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Success      200 {object} models.Session
// @Failure      400 {object} ErrorResponse
// @Router       /api/admin/session/start [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	started, err := h.sessionService.Start(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, started)
}

// EndSession godoc
// @Summary      End the current session
// @Description  Transitions the session to ended. Ending an ended session is a no-op.
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Success      200 {object} models.Session
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/session/end [post]
func (h *SessionHandler) EndSession(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	ended, err := h.sessionService.End(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ended)
}
