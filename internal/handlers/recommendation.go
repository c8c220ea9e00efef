package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenrate/screenrate-backend/internal/requestdata"
	"github.com/screenrate/screenrate-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// List returns personalized picks for the caller. The service degrades to an
// empty list instead of failing, so this endpoint always answers 200.
func (rh *RecommendationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	limit, _ := strconv.Atoi(c.Query("limit"))
	recommendations := rh.recommendationService.GetRecommendations(c.Request.Context(), rd.UserID, limit)
	RespondOK(c, gin.H{"recommendations": recommendations})
}
