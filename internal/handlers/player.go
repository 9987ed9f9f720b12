package handlers

import (
	"net/http"

	"github.com/katarmal-ram/huntqr/internal/models"
	"github.com/katarmal-ram/huntqr/internal/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	gameService *services.GameService
	authService *services.AuthService
}

func NewPlayerHandler(gameService *services.GameService, authService *services.AuthService) *PlayerHandler {
	return &PlayerHandler{gameService: gameService, authService: authService}
}

type JoinRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100" example:"Sam"`
	TeamID string `json:"team_id" binding:"required" example:"b9f8..."`
}

type JoinResponse struct {
	Player models.Player `json:"player"`
	Token  string        `json:"token"`
}

type RedeemRequest struct {
	CodeString string `json:"code_string" binding:"required" example:"alpha1"`
}

// Join godoc
// @Summary      Join the current session
// @Description  Creates a player on a team and returns the token used for subsequent calls. Team membership is permanent.
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        request body JoinRequest true "Join data"
// @Success      200 {object} JoinResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/player/join [post]
func (h *PlayerHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.gameService.Join(req.Name, req.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(player.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, JoinResponse{Player: *player, Token: token})
}

// Me godoc
// @Summary      Get the calling player
// @Tags         players
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.Player
// @Failure      404 {object} ErrorResponse
// @Router       /api/player/me [get]
func (h *PlayerHandler) Me(c *gin.Context) {
	player, err := h.gameService.Player(c.GetString("player_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// Redeem godoc
// @Summary      Redeem a code for the player's team
// @Description  Claims the code, rolls the payout and applies it to the team total. Each code can be redeemed once.
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RedeemRequest true "Code to redeem"
// @Success      200 {object} services.RedeemResult
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/player/scan [post]
func (h *PlayerHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.gameService.RedeemCode(c.GetString("player_id"), req.CodeString)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
