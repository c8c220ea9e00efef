// Package tmdb is a thin client for The Movie Database v3 API. It covers the
// handful of endpoints the catalog importer needs, not the full API surface.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
	"github.com/screenrate/screenrate-backend/internal/utils"
)

const (
	baseURL      = "https://api.themoviedb.org/3"
	imageBaseURL = "https://image.tmdb.org/t/p"

	// TMDB allows 40 requests per 10 seconds.
	rateLimitMax    = 40
	rateLimitWindow = 10 * time.Second
)

type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
}

type TVShow struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	GenreIDs     []int   `json:"genre_ids"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type Video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type MovieDetails struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	PosterPath  string  `json:"poster_path"`
	Genres      []Genre `json:"genres"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Credits     Credits `json:"credits"`
	Videos      struct {
		Results []Video `json:"results"`
	} `json:"videos"`
}

type TVShowDetails struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	FirstAirDate   string  `json:"first_air_date"`
	EpisodeRunTime []int   `json:"episode_run_time"`
	PosterPath     string  `json:"poster_path"`
	Genres         []Genre `json:"genres"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int     `json:"vote_count"`
	CreatedBy      []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Credits Credits `json:"credits"`
	Videos  struct {
		Results []Video `json:"results"`
	} `json:"videos"`
}

type SearchResult[T any] struct {
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Results      []T `json:"results"`
}

var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10765: "Sci-Fi & Fantasy",
	10768: "War & Politics",
}

type Client struct {
	log        *logger.Logger
	apiKey     string
	httpClient *http.Client

	mu          sync.Mutex
	windowStart time.Time
	requests    int
}

func NewClient(log *logger.Logger) *Client {
	clientLog := log.With("client", "tmdb")
	apiKey := utils.GetEnv("TMDB_API_KEY", "", clientLog)
	if apiKey == "" {
		clientLog.Warn("TMDB_API_KEY not configured, TMDB lookups will fail")
	}
	return &Client{
		log:        clientLog,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) waitForSlot(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	if now.Sub(c.windowStart) >= rateLimitWindow {
		c.windowStart = now
		c.requests = 0
	}
	if c.requests < rateLimitMax {
		c.requests++
		c.mu.Unlock()
		return nil
	}
	wait := rateLimitWindow - now.Sub(c.windowStart)
	c.mu.Unlock()

	c.log.Debug("Rate limit reached, waiting", "wait", wait)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	return c.waitForSlot(ctx)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("tmdb api key not configured")
	}
	if err := c.waitForSlot(ctx); err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build tmdb request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned status %d for %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}
	return nil
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResult[Movie], error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	var result SearchResult[Movie]
	if err := c.get(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SearchTVShows(ctx context.Context, query string, page int) (*SearchResult[TVShow], error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	var result SearchResult[TVShow]
	if err := c.get(ctx, "/search/tv", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")
	var details MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) GetTVShowDetails(ctx context.Context, tvID int) (*TVShowDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,videos")
	var details TVShowDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", tvID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) GetPopularMovies(ctx context.Context, page int) (*SearchResult[Movie], error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	var result SearchResult[Movie]
	if err := c.get(ctx, "/movie/popular", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetUpcomingMovies(ctx context.Context, page int) (*SearchResult[Movie], error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	var result SearchResult[Movie]
	if err := c.get(ctx, "/movie/upcoming", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return imageBaseURL + "/w500" + posterPath
}

// GenreLabels resolves search-result genre ids to display names. Unknown ids
// are dropped.
func GenreLabels(genreIDs []int) string {
	names := make([]string, 0, len(genreIDs))
	for _, id := range genreIDs {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func trailerURL(videos []Video) string {
	var fallback string
	for _, v := range videos {
		if v.Site != "YouTube" {
			continue
		}
		if v.Type == "Trailer" && v.Official {
			return "https://www.youtube.com/watch?v=" + v.Key
		}
		if fallback == "" {
			fallback = "https://www.youtube.com/watch?v=" + v.Key
		}
	}
	return fallback
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func genreString(genres []Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		if name, ok := genreNames[g.ID]; ok {
			names = append(names, name)
		} else if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return strings.Join(names, ", ")
}

func topCast(cast []CastMember, n int) string {
	if len(cast) > n {
		cast = cast[:n]
	}
	names := make([]string, 0, len(cast))
	for _, m := range cast {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

// MovieToContent maps a TMDB movie onto a catalog row. The id is left nil so
// the caller decides identity.
func MovieToContent(movie *MovieDetails) *types.Content {
	var director string
	for _, crew := range movie.Credits.Crew {
		if crew.Job == "Director" {
			director = crew.Name
			break
		}
	}
	return &types.Content{
		ID:          uuid.Nil,
		Title:       movie.Title,
		ContentType: types.ContentTypeMovie,
		ReleaseYear: releaseYear(movie.ReleaseDate),
		Genre:       genreString(movie.Genres),
		Description: movie.Overview,
		Runtime:     movie.Runtime,
		PosterURL:   PosterURL(movie.PosterPath),
		TrailerURL:  trailerURL(movie.Videos.Results),
		Director:    director,
		Cast:        topCast(movie.Credits.Cast, 10),
	}
}

func TVShowToContent(show *TVShowDetails) *types.Content {
	creators := make([]string, 0, len(show.CreatedBy))
	for _, c := range show.CreatedBy {
		creators = append(creators, c.Name)
	}
	runtime := 0
	if len(show.EpisodeRunTime) > 0 {
		runtime = show.EpisodeRunTime[0]
	}
	return &types.Content{
		ID:          uuid.Nil,
		Title:       show.Name,
		ContentType: types.ContentTypeTVSeries,
		ReleaseYear: releaseYear(show.FirstAirDate),
		Genre:       genreString(show.Genres),
		Description: show.Overview,
		Runtime:     runtime,
		PosterURL:   PosterURL(show.PosterPath),
		TrailerURL:  trailerURL(show.Videos.Results),
		Director:    strings.Join(creators, ", "),
		Cast:        topCast(show.Credits.Cast, 10),
	}
}

// Available probes the configuration endpoint.
func (c *Client) Available(ctx context.Context) bool {
	if c.apiKey == "" {
		return false
	}
	var out map[string]interface{}
	return c.get(ctx, "/configuration", nil, &out) == nil
}
