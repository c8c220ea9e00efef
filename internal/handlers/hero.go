package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/services"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type HeroHandler struct {
	heroService services.HeroService
}

func NewHeroHandler(heroService services.HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

func (hh *HeroHandler) ListActive(c *gin.Context) {
	slides, err := hh.heroService.ListActiveSlides(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"slides": slides})
}

func (hh *HeroHandler) ListAll(c *gin.Context) {
	slides, err := hh.heroService.ListAllSlides(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"slides": slides})
}

func (hh *HeroHandler) Create(c *gin.Context) {
	var slide types.HeroSlide
	if err := c.ShouldBindJSON(&slide); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := hh.heroService.CreateSlide(c.Request.Context(), &slide); err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, slide)
}

func (hh *HeroHandler) Update(c *gin.Context) {
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var slide types.HeroSlide
	if err := c.ShouldBindJSON(&slide); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	slide.ID = slideID
	if err := hh.heroService.UpdateSlide(c.Request.Context(), &slide); err != nil {
		RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	RespondOK(c, slide)
}

func (hh *HeroHandler) Delete(c *gin.Context) {
	slideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := hh.heroService.DeleteSlide(c.Request.Context(), slideID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": slideID})
}
