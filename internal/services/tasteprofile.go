package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/screenrate/screenrate-backend/internal/clients/redisx"
	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

const (
	favoriteGenreCap   = 5
	dominantEmotionCap = 5

	profileCacheTTL = 10 * time.Minute
)

// TasteProfileService distills a user's review history into a TasteProfile.
// It never fails outward: every data-access error degrades to the affected
// aggregate's empty value, and a failed rating-tendency fetch yields an
// all-zero profile, which downstream treats as a cold start.
type TasteProfileService interface {
	GetTasteProfile(ctx context.Context, userID uuid.UUID) types.TasteProfile
}

type tasteProfileService struct {
	log        *logger.Logger
	reviewRepo repos.ReviewRepo
	cache      *redisx.Client
}

// NewTasteProfileService wires the builder. cache may be nil; when present,
// profiles are cached keyed by (userID, latest review timestamp) so any new
// review naturally invalidates the entry.
func NewTasteProfileService(log *logger.Logger, reviewRepo repos.ReviewRepo, cache *redisx.Client) TasteProfileService {
	return &tasteProfileService{
		log:        log.With("service", "TasteProfileService"),
		reviewRepo: reviewRepo,
		cache:      cache,
	}
}

func (ts *tasteProfileService) GetTasteProfile(ctx context.Context, userID uuid.UUID) types.TasteProfile {
	cacheKey := ""
	if ts.cache != nil {
		if latest, err := ts.reviewRepo.LatestReviewAt(ctx, nil, userID); err == nil {
			var stamp int64
			if latest != nil {
				stamp = latest.UnixNano()
			}
			cacheKey = fmt.Sprintf("tasteprofile:%s:%d", userID, stamp)
			if raw, ok := ts.cache.Get(ctx, cacheKey); ok {
				var cached types.TasteProfile
				if err := json.Unmarshal(raw, &cached); err == nil {
					return cached
				}
			}
		}
	}

	profile := ts.buildProfile(ctx, userID)

	if ts.cache != nil && cacheKey != "" {
		if raw, err := json.Marshal(profile); err == nil {
			ts.cache.Set(ctx, cacheKey, raw, profileCacheTTL)
		}
	}
	return profile
}

// buildProfile issues the five independent aggregate fetches concurrently and
// joins them. Each fetch degrades on its own; the goroutines never return an
// error so one failing aggregate cannot cancel the others.
func (ts *tasteProfileService) buildProfile(ctx context.Context, userID uuid.UUID) types.TasteProfile {
	profile := types.EmptyTasteProfile(userID)

	var (
		genreStats  []repos.GenreStat
		typeStats   []repos.TypeStat
		aspectRows  []datatypes.JSON
		emotionRows []datatypes.JSON
		ratingStats repos.RatingStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := ts.reviewRepo.GenreStats(gctx, nil, userID, favoriteGenreCap)
		if err != nil {
			ts.log.Warn("Genre aggregate failed, degrading to empty", "user_id", userID, "error", err)
			return nil
		}
		genreStats = stats
		return nil
	})
	g.Go(func() error {
		stats, err := ts.reviewRepo.TypeStats(gctx, nil, userID)
		if err != nil {
			ts.log.Warn("Content-type aggregate failed, degrading to empty", "user_id", userID, "error", err)
			return nil
		}
		typeStats = stats
		return nil
	})
	g.Go(func() error {
		rows, err := ts.reviewRepo.AspectRows(gctx, nil, userID)
		if err != nil {
			ts.log.Warn("Aspect rows fetch failed, degrading to empty", "user_id", userID, "error", err)
			return nil
		}
		aspectRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := ts.reviewRepo.EmotionRows(gctx, nil, userID)
		if err != nil {
			ts.log.Warn("Emotion rows fetch failed, degrading to empty", "user_id", userID, "error", err)
			return nil
		}
		emotionRows = rows
		return nil
	})
	g.Go(func() error {
		stats, err := ts.reviewRepo.RatingStats(gctx, nil, userID)
		if err != nil {
			ts.log.Warn("Rating aggregate failed, degrading to empty", "user_id", userID, "error", err)
			return nil
		}
		ratingStats = stats
		return nil
	})
	_ = g.Wait()

	for _, gs := range genreStats {
		profile.FavoriteGenres = append(profile.FavoriteGenres, types.GenreAffinity{
			Genre:     gs.Genre,
			Count:     gs.Count,
			AvgRating: gs.AvgRating,
		})
	}
	for _, tstat := range typeStats {
		profile.PreferredContentTypes = append(profile.PreferredContentTypes, types.TypeAffinity{
			Type:      tstat.ContentType,
			Count:     tstat.Count,
			AvgRating: tstat.AvgRating,
		})
	}

	for aspect, acc := range foldNumericRows(aspectRows, false) {
		profile.FavoriteAspects[aspect] = roundTo2(acc.sum / float64(acc.count))
	}

	emotionAverages := foldNumericRows(emotionRows, true)
	for emotion, acc := range emotionAverages {
		profile.DominantEmotions = append(profile.DominantEmotions, types.EmotionAffinity{
			Emotion:   emotion,
			Intensity: roundTo2(acc.sum / float64(acc.count)),
			Count:     acc.count,
		})
	}
	sort.Slice(profile.DominantEmotions, func(i, j int) bool {
		a, b := profile.DominantEmotions[i], profile.DominantEmotions[j]
		if a.Intensity != b.Intensity {
			return a.Intensity > b.Intensity
		}
		return a.Emotion < b.Emotion
	})
	if len(profile.DominantEmotions) > dominantEmotionCap {
		profile.DominantEmotions = profile.DominantEmotions[:dominantEmotionCap]
	}

	total := ratingStats.TotalReviews
	profile.TotalReviews = total
	profile.RatingTendency = types.RatingTendency{
		Average: ratingStats.Average,
		Min:     ratingStats.Min,
		Max:     ratingStats.Max,
	}
	if total > 0 {
		profile.RatingTendency.Distribution = types.RatingDistribution{
			Harsh:    percentOf(ratingStats.HarshCount, total),
			Balanced: percentOf(ratingStats.BalancedCount, total),
			Generous: percentOf(ratingStats.GenerousCount, total),
		}
	}
	return profile
}

type runningSum struct {
	sum   float64
	count int
}

// foldNumericRows accumulates per-key running sums across a set of jsonb
// rows. Malformed rows and non-numeric entries contribute nothing. With
// positiveOnly set, entries with a non-positive value are skipped as well
// (emotion intensities of zero carry no signal).
func foldNumericRows(rows []datatypes.JSON, positiveOnly bool) map[string]runningSum {
	acc := map[string]runningSum{}
	for _, row := range rows {
		for key, val := range types.DecodeNumericMap(row) {
			if positiveOnly && val <= 0 {
				continue
			}
			entry := acc[key]
			entry.sum += val
			entry.count++
			acc[key] = entry
		}
	}
	return acc
}

func percentOf(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
