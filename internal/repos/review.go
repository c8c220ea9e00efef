package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
)

// GenreStat is the per-genre aggregate over a user's rated reviews, joined
// through the reviewed content's genre tag.
type GenreStat struct {
	Genre     string  `json:"genre"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// TypeStat is the per-content-type aggregate over a user's rated reviews.
type TypeStat struct {
	ContentType types.ContentType `json:"content_type"`
	Count       int               `json:"count"`
	AvgRating   float64           `json:"avg_rating"`
}

// RatingStats is the rating-distribution aggregate over a user's rated
// reviews. Bucket bounds: harsh < 5, 5 <= balanced <= 7, generous > 7.
type RatingStats struct {
	Average       float64 `json:"average"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	HarshCount    int     `json:"harsh_count"`
	BalancedCount int     `json:"balanced_count"`
	GenerousCount int     `json:"generous_count"`
	TotalReviews  int     `json:"total_reviews"`
}

// ReviewRepo is the review-store port. The aggregate queries are all scoped to
// one user and restricted to rows with a non-null rating.
type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.Review) error
	GetByID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (*types.Review, error)
	GetByUserAndContent(ctx context.Context, tx *gorm.DB, userID, contentID uuid.UUID) (*types.Review, error)
	ListByContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, limit, offset int) ([]*types.Review, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Review, error)
	Update(ctx context.Context, tx *gorm.DB, review *types.Review) error
	Delete(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) error
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)

	GenreStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]GenreStat, error)
	TypeStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]TypeStat, error)
	AspectRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error)
	EmotionRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error)
	RatingStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (RatingStats, error)
	LatestReviewAt(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*time.Time, error)

	DistinctGenres(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
	DistinctContentTypes(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
	DetailedReviewCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (rr *reviewRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	return rr.conn(tx).WithContext(ctx).Create(review).Error
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) (*types.Review, error) {
	var review types.Review
	if err := rr.conn(tx).WithContext(ctx).
		Where("id = ?", reviewID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (rr *reviewRepo) GetByUserAndContent(ctx context.Context, tx *gorm.DB, userID, contentID uuid.UUID) (*types.Review, error) {
	var review types.Review
	if err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (rr *reviewRepo) ListByContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	var reviews []*types.Review
	if err := rr.conn(tx).WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (rr *reviewRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit, offset int) ([]*types.Review, error) {
	var reviews []*types.Review
	if err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (rr *reviewRepo) Update(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	return rr.conn(tx).WithContext(ctx).Save(review).Error
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewID uuid.UUID) error {
	return rr.conn(tx).WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&types.Review{}).Error
}

func (rr *reviewRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *reviewRepo) GenreStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]GenreStat, error) {
	var stats []GenreStat
	if err := rr.conn(tx).WithContext(ctx).Raw(`
		SELECT c.genre AS genre, COUNT(*) AS count, AVG(r.rating) AS avg_rating
		FROM reviews r
		JOIN content c ON c.id = r.content_id
		WHERE r.user_id = ? AND c.genre <> '' AND r.rating IS NOT NULL
		GROUP BY c.genre
		ORDER BY count DESC, avg_rating DESC
		LIMIT ?
	`, userID, limit).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (rr *reviewRepo) TypeStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]TypeStat, error) {
	var stats []TypeStat
	if err := rr.conn(tx).WithContext(ctx).Raw(`
		SELECT c.content_type AS content_type, COUNT(*) AS count, AVG(r.rating) AS avg_rating
		FROM reviews r
		JOIN content c ON c.id = r.content_id
		WHERE r.user_id = ? AND r.rating IS NOT NULL
		GROUP BY c.content_type
		ORDER BY count DESC
	`, userID).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (rr *reviewRepo) AspectRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error) {
	var rows []datatypes.JSON
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ? AND aspects IS NOT NULL AND rating IS NOT NULL", userID).
		Pluck("aspects", &rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (rr *reviewRepo) EmotionRows(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]datatypes.JSON, error) {
	var rows []datatypes.JSON
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ? AND emotions IS NOT NULL AND rating IS NOT NULL", userID).
		Pluck("emotions", &rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (rr *reviewRepo) RatingStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (RatingStats, error) {
	var stats RatingStats
	if err := rr.conn(tx).WithContext(ctx).Raw(`
		SELECT
			COALESCE(AVG(rating), 0) AS average,
			COALESCE(MIN(rating), 0) AS min,
			COALESCE(MAX(rating), 0) AS max,
			COALESCE(SUM(CASE WHEN rating < 5 THEN 1 ELSE 0 END), 0) AS harsh_count,
			COALESCE(SUM(CASE WHEN rating >= 5 AND rating <= 7 THEN 1 ELSE 0 END), 0) AS balanced_count,
			COALESCE(SUM(CASE WHEN rating > 7 THEN 1 ELSE 0 END), 0) AS generous_count,
			COUNT(*) AS total_reviews
		FROM reviews
		WHERE user_id = ? AND rating IS NOT NULL
	`, userID).Scan(&stats).Error; err != nil {
		return RatingStats{}, err
	}
	return stats, nil
}

func (rr *reviewRepo) LatestReviewAt(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*time.Time, error) {
	var review types.Review
	err := rr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&review).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &review.CreatedAt, nil
}

func (rr *reviewRepo) DistinctGenres(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	var count int
	if err := rr.conn(tx).WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT c.genre) AS count
		FROM reviews r
		JOIN content c ON c.id = r.content_id
		WHERE r.user_id = ? AND c.genre <> ''
	`, userID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *reviewRepo) DistinctContentTypes(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	var count int
	if err := rr.conn(tx).WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT c.content_type) AS count
		FROM reviews r
		JOIN content c ON c.id = r.content_id
		WHERE r.user_id = ?
	`, userID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *reviewRepo) DetailedReviewCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ? AND aspects IS NOT NULL AND emotions IS NOT NULL AND rating IS NOT NULL", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
