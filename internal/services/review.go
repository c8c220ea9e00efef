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

type ReviewService interface {
	CreateReview(ctx context.Context, review *types.Review) error
	GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, limit, offset int) ([]*types.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Review, error)
	UpdateReview(ctx context.Context, userID uuid.UUID, review *types.Review) error
	DeleteReview(ctx context.Context, userID uuid.UUID, reviewID uuid.UUID) error
}

type reviewService struct {
	db          *gorm.DB
	log         *logger.Logger
	reviewRepo  repos.ReviewRepo
	contentRepo repos.ContentRepo
	userRepo    repos.UserRepo
}

func NewReviewService(db *gorm.DB, log *logger.Logger, reviewRepo repos.ReviewRepo, contentRepo repos.ContentRepo, userRepo repos.UserRepo) ReviewService {
	return &reviewService{
		db:          db,
		log:         log.With("service", "ReviewService"),
		reviewRepo:  reviewRepo,
		contentRepo: contentRepo,
		userRepo:    userRepo,
	}
}

func (rs *reviewService) CreateReview(ctx context.Context, review *types.Review) error {
	if review.ContentID == uuid.Nil {
		return fmt.Errorf("a content id is required")
	}
	if review.UserID == uuid.Nil {
		return fmt.Errorf("a user id is required")
	}
	if review.Rating != nil && (*review.Rating < 0 || *review.Rating > 10) {
		return fmt.Errorf("rating must be between 0 and 10")
	}
	if _, err := rs.contentRepo.GetByID(ctx, nil, review.ContentID); err != nil {
		return fmt.Errorf("content not found: %w", err)
	}
	if existing, err := rs.reviewRepo.GetByUserAndContent(ctx, nil, review.UserID, review.ContentID); err == nil && existing != nil {
		return fmt.Errorf("you have already reviewed this content")
	}

	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review.ID = uuid.New()
		if err := rs.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		if err := rs.contentRepo.RecalcAggregates(ctx, tx, review.ContentID); err != nil {
			return fmt.Errorf("failed to recalc content aggregates: %w", err)
		}
		return rs.bumpUserCounters(ctx, tx, review.UserID)
	})
	return err
}

func (rs *reviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error) {
	review, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return nil, fmt.Errorf("review not found: %w", err)
	}
	return review, nil
}

func (rs *reviewService) ListByContent(ctx context.Context, contentID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	return rs.reviewRepo.ListByContent(ctx, nil, contentID, limit, offset)
}

func (rs *reviewService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	return rs.reviewRepo.ListByUser(ctx, nil, userID, limit, offset)
}

func (rs *reviewService) UpdateReview(ctx context.Context, userID uuid.UUID, review *types.Review) error {
	existing, err := rs.reviewRepo.GetByID(ctx, nil, review.ID)
	if err != nil {
		return fmt.Errorf("review not found: %w", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("you can only edit your own reviews")
	}
	if review.Rating != nil && (*review.Rating < 0 || *review.Rating > 10) {
		return fmt.Errorf("rating must be between 0 and 10")
	}

	existing.Body = review.Body
	existing.Rating = review.Rating
	existing.Aspects = review.Aspects
	existing.Emotions = review.Emotions

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.reviewRepo.Update(ctx, tx, existing); err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		return rs.contentRepo.RecalcAggregates(ctx, tx, existing.ContentID)
	})
}

func (rs *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, reviewID uuid.UUID) error {
	existing, err := rs.reviewRepo.GetByID(ctx, nil, reviewID)
	if err != nil {
		return fmt.Errorf("review not found: %w", err)
	}
	if existing.UserID != userID {
		return fmt.Errorf("you can only delete your own reviews")
	}
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.reviewRepo.Delete(ctx, tx, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if err := rs.contentRepo.RecalcAggregates(ctx, tx, existing.ContentID); err != nil {
			return fmt.Errorf("failed to recalc content aggregates: %w", err)
		}
		return rs.bumpUserCounters(ctx, tx, userID)
	})
}

// bumpUserCounters refreshes the denormalized review counter on the user row.
func (rs *reviewService) bumpUserCounters(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	count, err := rs.reviewRepo.CountByUser(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("failed to count user reviews: %w", err)
	}
	return rs.userRepo.UpdateFields(ctx, tx, userID, map[string]interface{}{"total_reviews": count})
}
