package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/screenrate/screenrate-backend/internal/requestdata"
	"github.com/screenrate/screenrate-backend/internal/services"
)

type GamificationHandler struct {
	gamificationService services.GamificationService
}

func NewGamificationHandler(gamificationService services.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService}
}

func (gh *GamificationHandler) GetMyLevel(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	level := gh.gamificationService.GetUserLevel(c.Request.Context(), rd.UserID)
	RespondOK(c, level)
}

func (gh *GamificationHandler) GetMyAchievements(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	achievements := gh.gamificationService.GetAchievements(c.Request.Context(), rd.UserID)
	RespondOK(c, gin.H{"achievements": achievements})
}
