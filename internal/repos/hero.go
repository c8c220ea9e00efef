package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
)

type HeroRepo interface {
	Create(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) error
	Update(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) error
	Delete(ctx context.Context, tx *gorm.DB, slideID uuid.UUID) error
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error)
}

type heroRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHeroRepo(db *gorm.DB, baseLog *logger.Logger) HeroRepo {
	return &heroRepo{db: db, log: baseLog.With("repo", "HeroRepo")}
}

func (hr *heroRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return hr.db
}

func (hr *heroRepo) Create(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) error {
	return hr.conn(tx).WithContext(ctx).Create(slide).Error
}

func (hr *heroRepo) Update(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) error {
	return hr.conn(tx).WithContext(ctx).Save(slide).Error
}

func (hr *heroRepo) Delete(ctx context.Context, tx *gorm.DB, slideID uuid.UUID) error {
	return hr.conn(tx).WithContext(ctx).
		Where("id = ?", slideID).
		Delete(&types.HeroSlide{}).Error
}

func (hr *heroRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	var slides []*types.HeroSlide
	if err := hr.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

func (hr *heroRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	var slides []*types.HeroSlide
	if err := hr.conn(tx).WithContext(ctx).
		Order("display_order ASC").
		Find(&slides).Error; err != nil {
		return nil, err
	}
	return slides, nil
}

type ComingSoonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.ComingSoonItem) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time, limit int) ([]*types.ComingSoonItem, error)
}

type comingSoonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComingSoonRepo(db *gorm.DB, baseLog *logger.Logger) ComingSoonRepo {
	return &comingSoonRepo{db: db, log: baseLog.With("repo", "ComingSoonRepo")}
}

func (cs *comingSoonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cs.db
}

func (cs *comingSoonRepo) Create(ctx context.Context, tx *gorm.DB, item *types.ComingSoonItem) error {
	return cs.conn(tx).WithContext(ctx).Create(item).Error
}

func (cs *comingSoonRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	return cs.conn(tx).WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.ComingSoonItem{}).Error
}

func (cs *comingSoonRepo) ListUpcoming(ctx context.Context, tx *gorm.DB, after time.Time, limit int) ([]*types.ComingSoonItem, error) {
	var items []*types.ComingSoonItem
	if err := cs.conn(tx).WithContext(ctx).
		Where("release_date >= ?", after).
		Order("release_date ASC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
