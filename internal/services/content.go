package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type ContentService interface {
	CreateContent(ctx context.Context, content *types.Content) error
	GetContent(ctx context.Context, contentID uuid.UUID) (*types.Content, error)
	UpdateContent(ctx context.Context, content *types.Content) error
	DeleteContent(ctx context.Context, contentID uuid.UUID) error
	SearchContent(ctx context.Context, q repos.ContentSearch) ([]*types.Content, int64, error)
	ListComingSoon(ctx context.Context, limit int) ([]*types.ComingSoonItem, error)
	CreateComingSoon(ctx context.Context, item *types.ComingSoonItem) error
	DeleteComingSoon(ctx context.Context, itemID uuid.UUID) error
}

type contentService struct {
	db             *gorm.DB
	log            *logger.Logger
	contentRepo    repos.ContentRepo
	comingSoonRepo repos.ComingSoonRepo
}

func NewContentService(db *gorm.DB, log *logger.Logger, contentRepo repos.ContentRepo, comingSoonRepo repos.ComingSoonRepo) ContentService {
	return &contentService{
		db:             db,
		log:            log.With("service", "ContentService"),
		contentRepo:    contentRepo,
		comingSoonRepo: comingSoonRepo,
	}
}

func (cs *contentService) CreateContent(ctx context.Context, content *types.Content) error {
	if content.Title == "" {
		return fmt.Errorf("a title is required")
	}
	if content.ContentType == "" {
		content.ContentType = types.ContentTypeMovie
	}
	content.ID = uuid.New()
	if err := cs.contentRepo.Create(ctx, nil, content); err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

func (cs *contentService) GetContent(ctx context.Context, contentID uuid.UUID) (*types.Content, error) {
	content, err := cs.contentRepo.GetByID(ctx, nil, contentID)
	if err != nil {
		return nil, fmt.Errorf("content not found: %w", err)
	}
	return content, nil
}

func (cs *contentService) UpdateContent(ctx context.Context, content *types.Content) error {
	if content.ID == uuid.Nil {
		return fmt.Errorf("a content id is required")
	}
	if err := cs.contentRepo.Update(ctx, nil, content); err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

func (cs *contentService) DeleteContent(ctx context.Context, contentID uuid.UUID) error {
	if err := cs.contentRepo.Delete(ctx, nil, contentID); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

func (cs *contentService) SearchContent(ctx context.Context, q repos.ContentSearch) ([]*types.Content, int64, error) {
	results, total, err := cs.contentRepo.Search(ctx, nil, q)
	if err != nil {
		return nil, 0, fmt.Errorf("content search failed: %w", err)
	}
	return results, total, nil
}

func (cs *contentService) ListComingSoon(ctx context.Context, limit int) ([]*types.ComingSoonItem, error) {
	if limit <= 0 {
		limit = 20
	}
	items, err := cs.comingSoonRepo.ListUpcoming(ctx, nil, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list coming soon items: %w", err)
	}
	return items, nil
}

func (cs *contentService) CreateComingSoon(ctx context.Context, item *types.ComingSoonItem) error {
	if item.Title == "" {
		return fmt.Errorf("a title is required")
	}
	if item.ReleaseDate.IsZero() {
		return fmt.Errorf("a release date is required")
	}
	item.ID = uuid.New()
	if err := cs.comingSoonRepo.Create(ctx, nil, item); err != nil {
		return fmt.Errorf("failed to create coming soon item: %w", err)
	}
	return nil
}

func (cs *contentService) DeleteComingSoon(ctx context.Context, itemID uuid.UUID) error {
	if err := cs.comingSoonRepo.Delete(ctx, nil, itemID); err != nil {
		return fmt.Errorf("failed to delete coming soon item: %w", err)
	}
	return nil
}
