package handlers

import (
	"net/http"

	"github.com/katarmal-ram/huntqr/internal/services"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService    *services.TeamService
	sessionService *services.SessionService
}

func NewTeamHandler(teamService *services.TeamService, sessionService *services.SessionService) *TeamHandler {
	return &TeamHandler{teamService: teamService, sessionService: sessionService}
}

type CreateTeamRequest struct {
	Name  string `json:"name" binding:"required" example:"Team Zeta"`
	Color string `json:"color" binding:"required" example:"team-6"`
}

// ListTeams godoc
// @Summary      List teams for the current session
// @Tags         teams
// @Produce      json
// @Success      200 {array} models.Team
// @Router       /api/teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	teams, err := h.teamService.List(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

// CreateTeam godoc
// @Summary      Add a team to the current session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Param        request body CreateTeamRequest true "Team data"
// @Success      201 {object} models.Team
// @Failure      400 {object} ErrorResponse
// @Router       /api/admin/teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	team, err := h.teamService.Create(session.ID, req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, team)
}
