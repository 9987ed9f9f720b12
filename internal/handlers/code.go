package handlers

import (
	"net/http"

	"github.com/katarmal-ram/huntqr/internal/services"

	"github.com/gin-gonic/gin"
)

type CodeHandler struct {
	codeService    *services.CodeService
	sessionService *services.SessionService
}

func NewCodeHandler(codeService *services.CodeService, sessionService *services.SessionService) *CodeHandler {
	return &CodeHandler{codeService: codeService, sessionService: sessionService}
}

type AddCodeRequest struct {
	CodeString string `json:"code_string" binding:"required" example:"ALPHA1"`
}

// ListCodes godoc
// @Summary      List codes for the current session
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Success      200 {array} models.Code
// @Router       /api/admin/codes [get]
func (h *CodeHandler) ListCodes(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	codes, err := h.codeService.List(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, codes)
}

// AddCode godoc
// @Summary      Add a redemption code to the current session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Param        request body AddCodeRequest true "Code data"
// @Success      201 {object} models.Code
// @Failure      400 {object} ErrorResponse
// @Router       /api/admin/codes [post]
func (h *CodeHandler) AddCode(c *gin.Context) {
	var req AddCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	code, err := h.codeService.Add(session.ID, req.CodeString)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// DeleteCode godoc
// @Summary      Delete an unredeemed code
// @Description  Redeemed codes are part of the audit trail and cannot be deleted
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Param        id path string true "Code ID"
// @Success      200 {object} MessageResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/admin/codes/{id} [delete]
func (h *CodeHandler) DeleteCode(c *gin.Context) {
	if err := h.codeService.Remove(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "code deleted"})
}
