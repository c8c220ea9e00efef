package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/requestdata"
	"github.com/screenrate/screenrate-backend/internal/services"
)

type UserHandler struct {
	userService         services.UserService
	tasteProfileService services.TasteProfileService
}

func NewUserHandler(userService services.UserService, tasteProfileService services.TasteProfileService) *UserHandler {
	return &UserHandler{userService: userService, tasteProfileService: tasteProfileService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	me, err := uh.userService.GetUser(c.Request.Context(), rd.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	me, err := uh.userService.UpdateProfile(c.Request.Context(), rd.UserID, req.Bio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

func (uh *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	user, err := uh.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("user not found: %s", userID)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetMyTasteProfile returns the caller's aggregated taste profile. The
// profile is derived on demand, an unreviewed account gets an empty one.
func (uh *UserHandler) GetMyTasteProfile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	profile := uh.tasteProfileService.GetTasteProfile(c.Request.Context(), rd.UserID)
	c.JSON(http.StatusOK, profile)
}
