package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenrate/screenrate-backend/internal/services"
)

// AdminHandler exposes the external-catalog import surface. Routes using it
// sit behind the admin role check.
type AdminHandler struct {
	importService services.ImportService
}

func NewAdminHandler(importService services.ImportService) *AdminHandler {
	return &AdminHandler{importService: importService}
}

func (ah *AdminHandler) ExternalStatus(c *gin.Context) {
	RespondOK(c, ah.importService.Status(c.Request.Context()))
}

func (ah *AdminHandler) ImportMovie(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	content, err := ah.importService.ImportMovie(c.Request.Context(), tmdbID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "movie imported", "content": content})
}

func (ah *AdminHandler) ImportTVShow(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	content, err := ah.importService.ImportTVShow(c.Request.Context(), tmdbID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "tv show imported", "content": content})
}

func (ah *AdminHandler) ImportGame(c *gin.Context) {
	igdbID, err := strconv.Atoi(c.Param("igdbId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	content, err := ah.importService.ImportGame(c.Request.Context(), igdbID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "game imported", "content": content})
}

func (ah *AdminHandler) BulkImportMovies(c *gin.Context) {
	var req struct {
		TmdbIDs []int `json:"tmdbIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.TmdbIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tmdbIds array is required"})
		return
	}
	RespondOK(c, ah.importService.BulkImportMovies(c.Request.Context(), req.TmdbIDs))
}

func (ah *AdminHandler) BulkImportGames(c *gin.Context) {
	var req struct {
		IgdbIDs []int `json:"igdbIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IgdbIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "igdbIds array is required"})
		return
	}
	RespondOK(c, ah.importService.BulkImportGames(c.Request.Context(), req.IgdbIDs))
}
