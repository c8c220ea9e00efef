package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/services"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) Get(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	content, err := ch.contentService.GetContent(c.Request.Context(), contentID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondOK(c, content)
}

func (ch *ContentHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	q := repos.ContentSearch{
		Query:       c.Query("q"),
		Genre:       c.Query("genre"),
		ContentType: types.ContentType(c.Query("type")),
		Limit:       limit,
		Offset:      offset,
	}
	results, total, err := ch.contentService.SearchContent(c.Request.Context(), q)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "search_failed", err)
		return
	}
	RespondOK(c, gin.H{"results": results, "total": total})
}

func (ch *ContentHandler) Create(c *gin.Context) {
	var content types.Content
	if err := c.ShouldBindJSON(&content); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ch.contentService.CreateContent(c.Request.Context(), &content); err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, content)
}

func (ch *ContentHandler) Update(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var content types.Content
	if err := c.ShouldBindJSON(&content); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	content.ID = contentID
	if err := ch.contentService.UpdateContent(c.Request.Context(), &content); err != nil {
		RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	RespondOK(c, content)
}

func (ch *ContentHandler) Delete(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.contentService.DeleteContent(c.Request.Context(), contentID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": contentID})
}

func (ch *ContentHandler) ComingSoon(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := ch.contentService.ListComingSoon(c.Request.Context(), limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func (ch *ContentHandler) CreateComingSoon(c *gin.Context) {
	var item types.ComingSoonItem
	if err := c.ShouldBindJSON(&item); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := ch.contentService.CreateComingSoon(c.Request.Context(), &item); err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, item)
}

func (ch *ContentHandler) DeleteComingSoon(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.contentService.DeleteComingSoon(c.Request.Context(), itemID); err != nil {
		RespondError(c, http.StatusBadRequest, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": itemID})
}
