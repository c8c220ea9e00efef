package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/clients/igdb"
	"github.com/screenrate/screenrate-backend/internal/clients/tmdb"
	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/types"
)

// BulkImportResult reports the per-id outcome of a bulk import. Failures of
// individual ids never abort the batch.
type BulkImportResult struct {
	Imported []BulkImportItem `json:"imported"`
	Skipped  []BulkImportItem `json:"skipped"`
	Failed   []BulkImportItem `json:"failed"`
}

type BulkImportItem struct {
	ExternalID int    `json:"externalId"`
	Title      string `json:"title,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type ExternalAPIStatus struct {
	TMDB ExternalAPIState `json:"tmdb"`
	IGDB ExternalAPIState `json:"igdb"`
}

type ExternalAPIState struct {
	Configured bool `json:"configured"`
	Available  bool `json:"available"`
}

// ImportService pulls titles from TMDB and IGDB into the local catalog.
// Imports are admin-only and deduplicated on (title, content_type).
type ImportService interface {
	ImportMovie(ctx context.Context, tmdbID int) (*types.Content, error)
	ImportTVShow(ctx context.Context, tmdbID int) (*types.Content, error)
	ImportGame(ctx context.Context, igdbID int) (*types.Content, error)
	BulkImportMovies(ctx context.Context, tmdbIDs []int) BulkImportResult
	BulkImportGames(ctx context.Context, igdbIDs []int) BulkImportResult
	Status(ctx context.Context) ExternalAPIStatus
}

type importService struct {
	db          *gorm.DB
	log         *logger.Logger
	tmdbClient  *tmdb.Client
	igdbClient  *igdb.Client
	contentRepo repos.ContentRepo
}

func NewImportService(db *gorm.DB, log *logger.Logger, tmdbClient *tmdb.Client, igdbClient *igdb.Client, contentRepo repos.ContentRepo) ImportService {
	return &importService{
		db:          db,
		log:         log.With("service", "ImportService"),
		tmdbClient:  tmdbClient,
		igdbClient:  igdbClient,
		contentRepo: contentRepo,
	}
}

func (is *importService) ImportMovie(ctx context.Context, tmdbID int) (*types.Content, error) {
	details, err := is.tmdbClient.GetMovieDetails(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("movie %d not found in TMDB: %w", tmdbID, err)
	}
	content := tmdb.MovieToContent(details)
	if err := is.saveNew(ctx, content); err != nil {
		return nil, err
	}
	is.log.Info("Imported movie from TMDB", "tmdb_id", tmdbID, "title", content.Title, "content_id", content.ID)
	return content, nil
}

func (is *importService) ImportTVShow(ctx context.Context, tmdbID int) (*types.Content, error) {
	details, err := is.tmdbClient.GetTVShowDetails(ctx, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("tv show %d not found in TMDB: %w", tmdbID, err)
	}
	content := tmdb.TVShowToContent(details)
	if err := is.saveNew(ctx, content); err != nil {
		return nil, err
	}
	is.log.Info("Imported TV show from TMDB", "tmdb_id", tmdbID, "title", content.Title, "content_id", content.ID)
	return content, nil
}

func (is *importService) ImportGame(ctx context.Context, igdbID int) (*types.Content, error) {
	game, err := is.igdbClient.GetGameDetails(ctx, igdbID)
	if err != nil {
		return nil, fmt.Errorf("game %d not found in IGDB: %w", igdbID, err)
	}
	content := igdb.GameToContent(game)
	if err := is.saveNew(ctx, content); err != nil {
		return nil, err
	}
	is.log.Info("Imported game from IGDB", "igdb_id", igdbID, "title", content.Title, "content_id", content.ID)
	return content, nil
}

var errAlreadyExists = fmt.Errorf("content already exists in the catalog")

func (is *importService) saveNew(ctx context.Context, content *types.Content) error {
	if existing, err := is.contentRepo.GetByTitleAndType(ctx, nil, content.Title, content.ContentType); err == nil && existing != nil {
		return errAlreadyExists
	}
	content.ID = uuid.New()
	if err := is.contentRepo.Create(ctx, nil, content); err != nil {
		return fmt.Errorf("failed to save imported content: %w", err)
	}
	return nil
}

func (is *importService) BulkImportMovies(ctx context.Context, tmdbIDs []int) BulkImportResult {
	var result BulkImportResult
	for _, id := range tmdbIDs {
		content, err := is.ImportMovie(ctx, id)
		switch {
		case err == nil:
			result.Imported = append(result.Imported, BulkImportItem{ExternalID: id, Title: content.Title})
		case isAlreadyExists(err):
			result.Skipped = append(result.Skipped, BulkImportItem{ExternalID: id, Reason: "already exists"})
		default:
			result.Failed = append(result.Failed, BulkImportItem{ExternalID: id, Reason: err.Error()})
		}
	}
	return result
}

func (is *importService) BulkImportGames(ctx context.Context, igdbIDs []int) BulkImportResult {
	var result BulkImportResult
	for _, id := range igdbIDs {
		content, err := is.ImportGame(ctx, id)
		switch {
		case err == nil:
			result.Imported = append(result.Imported, BulkImportItem{ExternalID: id, Title: content.Title})
		case isAlreadyExists(err):
			result.Skipped = append(result.Skipped, BulkImportItem{ExternalID: id, Reason: "already exists"})
		default:
			result.Failed = append(result.Failed, BulkImportItem{ExternalID: id, Reason: err.Error()})
		}
	}
	return result
}

func isAlreadyExists(err error) bool {
	return err == errAlreadyExists
}

func (is *importService) Status(ctx context.Context) ExternalAPIStatus {
	return ExternalAPIStatus{
		TMDB: ExternalAPIState{
			Configured: is.tmdbClient.Configured(),
			Available:  is.tmdbClient.Available(ctx),
		},
		IGDB: ExternalAPIState{
			Configured: is.igdbClient.Configured(),
			Available:  is.igdbClient.Available(ctx),
		},
	}
}
