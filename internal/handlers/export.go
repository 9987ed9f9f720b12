package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/katarmal-ram/huntqr/internal/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	gameService    *services.GameService
	sessionService *services.SessionService
}

func NewExportHandler(gameService *services.GameService, sessionService *services.SessionService) *ExportHandler {
	return &ExportHandler{gameService: gameService, sessionService: sessionService}
}

// ListScans godoc
// @Summary      List scans for the current session
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key header string true "Admin key"
// @Success      200 {array} models.Scan
// @Router       /api/admin/scans [get]
func (h *ExportHandler) ListScans(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	scans, err := h.gameService.Scans(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scans)
}

// ExportCSV godoc
// @Summary      Export the session scan ledger as CSV
// @Description  Replays the session's scans in order with running team totals
// @Tags         admin
// @Produce      text/csv
// @Param        X-Admin-Key header string true "Admin key"
// @Success      200 {string} string "CSV data"
// @Failure      404 {object} ErrorResponse
// @Router       /api/admin/export-csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	session, err := h.sessionService.Active()
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.gameService.Ledger(session.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := strings.ReplaceAll(session.Name, " ", "_")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"huntqr-%s.csv\"", filename))

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"Timestamp", "Team", "Player", "Points", "Cumulative Points"})
	for _, row := range rows {
		w.Write([]string{
			row.Timestamp.Format(time.RFC3339),
			row.Team,
			row.Player,
			strconv.Itoa(row.Points),
			strconv.Itoa(row.Cumulative),
		})
	}
	w.Flush()
}
