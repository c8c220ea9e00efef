package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type HeroService interface {
	ListActiveSlides(ctx context.Context) ([]*types.HeroSlide, error)
	ListAllSlides(ctx context.Context) ([]*types.HeroSlide, error)
	CreateSlide(ctx context.Context, slide *types.HeroSlide) error
	UpdateSlide(ctx context.Context, slide *types.HeroSlide) error
	DeleteSlide(ctx context.Context, slideID uuid.UUID) error
}

type heroService struct {
	db       *gorm.DB
	log      *logger.Logger
	heroRepo repos.HeroRepo
}

func NewHeroService(db *gorm.DB, log *logger.Logger, heroRepo repos.HeroRepo) HeroService {
	return &heroService{
		db:       db,
		log:      log.With("service", "HeroService"),
		heroRepo: heroRepo,
	}
}

func (hs *heroService) ListActiveSlides(ctx context.Context) ([]*types.HeroSlide, error) {
	return hs.heroRepo.ListActive(ctx, nil)
}

func (hs *heroService) ListAllSlides(ctx context.Context) ([]*types.HeroSlide, error) {
	return hs.heroRepo.ListAll(ctx, nil)
}

func (hs *heroService) CreateSlide(ctx context.Context, slide *types.HeroSlide) error {
	if slide.Title == "" {
		return fmt.Errorf("a title is required")
	}
	slide.ID = uuid.New()
	return hs.heroRepo.Create(ctx, nil, slide)
}

func (hs *heroService) UpdateSlide(ctx context.Context, slide *types.HeroSlide) error {
	if slide.ID == uuid.Nil {
		return fmt.Errorf("a slide id is required")
	}
	return hs.heroRepo.Update(ctx, nil, slide)
}

func (hs *heroService) DeleteSlide(ctx context.Context, slideID uuid.UUID) error {
	return hs.heroRepo.Delete(ctx, nil, slideID)
}
