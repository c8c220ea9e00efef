package repos

import (
	"context"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
)

// ContentSearch holds optional catalog search filters.
type ContentSearch struct {
	Query       string
	Genre       string
	ContentType types.ContentType
	Limit       int
	Offset      int
}

// ContentRepo is the content-catalog port. Popular and CandidatesForUser are
// the two queries the recommendation engine depends on.
type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, content *types.Content) error
	GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.Content, error)
	GetByTitleAndType(ctx context.Context, tx *gorm.DB, title string, contentType types.ContentType) (*types.Content, error)
	Update(ctx context.Context, tx *gorm.DB, content *types.Content) error
	Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
	Search(ctx context.Context, tx *gorm.DB, q ContentSearch) ([]*types.Content, int64, error)

	// Popular returns the top catalog items with avg_rating >= minRating,
	// ordered by reviews_count desc then avg_rating desc.
	Popular(ctx context.Context, tx *gorm.DB, minRating float64, limit int) ([]*types.Content, error)

	// CandidatesForUser returns content the user has not reviewed, optionally
	// restricted to a genre set and a minimum average rating, ordered by
	// avg_rating desc then reviews_count desc.
	CandidatesForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, genres []string, minAvgRating float64, limit int) ([]*types.Content, error)

	// RecalcAggregates recomputes the review-derived columns of one catalog
	// row (avg/critics/audience rating, reviews_count, positive/mixed/negative).
	RecalcAggregates(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (cr *contentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *contentRepo) Create(ctx context.Context, tx *gorm.DB, content *types.Content) error {
	return cr.conn(tx).WithContext(ctx).Create(content).Error
}

func (cr *contentRepo) GetByID(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) (*types.Content, error) {
	var content types.Content
	if err := cr.conn(tx).WithContext(ctx).
		Where("id = ?", contentID).
		First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (cr *contentRepo) GetByTitleAndType(ctx context.Context, tx *gorm.DB, title string, contentType types.ContentType) (*types.Content, error) {
	var content types.Content
	if err := cr.conn(tx).WithContext(ctx).
		Where("title = ? AND content_type = ?", title, contentType).
		First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (cr *contentRepo) Update(ctx context.Context, tx *gorm.DB, content *types.Content) error {
	return cr.conn(tx).WithContext(ctx).Save(content).Error
}

func (cr *contentRepo) Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	return cr.conn(tx).WithContext(ctx).
		Where("id = ?", contentID).
		Delete(&types.Content{}).Error
}

func (cr *contentRepo) Search(ctx context.Context, tx *gorm.DB, q ContentSearch) ([]*types.Content, int64, error) {
	query := cr.conn(tx).WithContext(ctx).Model(&types.Content{})
	if q.Query != "" {
		query = query.Where("title LIKE ?", "%"+q.Query+"%")
	}
	if q.Genre != "" {
		query = query.Where("genre = ?", q.Genre)
	}
	if q.ContentType != "" {
		query = query.Where("content_type = ?", q.ContentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	var results []*types.Content
	if err := query.
		Order("avg_rating DESC").
		Order("reviews_count DESC").
		Limit(limit).Offset(q.Offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (cr *contentRepo) Popular(ctx context.Context, tx *gorm.DB, minRating float64, limit int) ([]*types.Content, error) {
	var results []*types.Content
	if err := cr.conn(tx).WithContext(ctx).
		Where("avg_rating >= ?", minRating).
		Order("reviews_count DESC").
		Order("avg_rating DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contentRepo) CandidatesForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, genres []string, minAvgRating float64, limit int) ([]*types.Content, error) {
	conn := cr.conn(tx)
	reviewed := conn.Model(&types.Review{}).
		Select("content_id").
		Where("user_id = ?", userID)

	query := conn.WithContext(ctx).
		Where("id NOT IN (?)", reviewed).
		Where("avg_rating >= ?", minAvgRating)
	if len(genres) > 0 {
		query = query.Where("genre IN ?", genres)
	}

	var results []*types.Content
	if err := query.
		Order("avg_rating DESC").
		Order("reviews_count DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type contentAggregates struct {
	AvgRating       float64
	CriticsRating   float64
	AudienceRating  float64
	ReviewsCount    int
	PositiveReviews int
	MixedReviews    int
	NegativeReviews int
}

func (cr *contentRepo) RecalcAggregates(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	conn := cr.conn(tx)

	var agg contentAggregates
	if err := conn.WithContext(ctx).Raw(`
		SELECT
			COALESCE(AVG(r.rating), 0) AS avg_rating,
			COALESCE(AVG(CASE WHEN u.role = 'CRITIC' THEN r.rating END), 0) AS critics_rating,
			COALESCE(AVG(CASE WHEN u.role = 'USER' THEN r.rating END), 0) AS audience_rating,
			COUNT(*) AS reviews_count,
			COALESCE(SUM(CASE WHEN r.rating > 7 THEN 1 ELSE 0 END), 0) AS positive_reviews,
			COALESCE(SUM(CASE WHEN r.rating >= 5 AND r.rating <= 7 THEN 1 ELSE 0 END), 0) AS mixed_reviews,
			COALESCE(SUM(CASE WHEN r.rating < 5 THEN 1 ELSE 0 END), 0) AS negative_reviews
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.content_id = ? AND r.rating IS NOT NULL
	`, contentID).Scan(&agg).Error; err != nil {
		return err
	}

	return conn.WithContext(ctx).
		Model(&types.Content{}).
		Where("id = ?", contentID).
		Updates(map[string]interface{}{
			"avg_rating":       round2(agg.AvgRating),
			"critics_rating":   round2(agg.CriticsRating),
			"audience_rating":  round2(agg.AudienceRating),
			"reviews_count":    agg.ReviewsCount,
			"positive_reviews": agg.PositiveReviews,
			"mixed_reviews":    agg.MixedReviews,
			"negative_reviews": agg.NegativeReviews,
		}).Error
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
