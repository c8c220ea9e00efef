package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/screenrate/screenrate-backend/internal/requestdata"
	"github.com/screenrate/screenrate-backend/internal/services"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type reviewBody struct {
	ContentID string         `json:"content_id"`
	Body      string         `json:"body"`
	Rating    *float64       `json:"rating"`
	Aspects   datatypes.JSON `json:"aspects"`
	Emotions  datatypes.JSON `json:"emotions"`
}

func (rh *ReviewHandler) Create(c *gin.Context) {
	var req reviewBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	review := types.Review{
		UserID:    rd.UserID,
		ContentID: contentID,
		Body:      req.Body,
		Rating:    req.Rating,
		Aspects:   req.Aspects,
		Emotions:  req.Emotions,
	}
	if err := rh.reviewService.CreateReview(c.Request.Context(), &review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (rh *ReviewHandler) ListByContent(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	reviews, err := rh.reviewService.ListByContent(c.Request.Context(), contentID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (rh *ReviewHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	reviews, err := rh.reviewService.ListByUser(c.Request.Context(), rd.UserID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (rh *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	var req reviewBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	review := types.Review{
		ID:       reviewID,
		Body:     req.Body,
		Rating:   req.Rating,
		Aspects:  req.Aspects,
		Emotions: req.Emotions,
	}
	if err := rh.reviewService.UpdateReview(c.Request.Context(), rd.UserID, &review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review updated"})
}

func (rh *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if err := rh.reviewService.DeleteReview(c.Request.Context(), rd.UserID, reviewID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
