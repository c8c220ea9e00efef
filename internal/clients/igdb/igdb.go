// Package igdb is a client for the Internet Game Database v4 API. IGDB
// authenticates through Twitch OAuth client credentials and queries are
// written in its Apicalypse body format.
package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
	"github.com/screenrate/screenrate-backend/internal/utils"
)

const (
	baseURL  = "https://api.igdb.com/v4"
	tokenURL = "https://id.twitch.tv/oauth2/token"

	// IGDB allows 4 requests per second.
	rateLimitMax    = 4
	rateLimitWindow = time.Second
)

type Image struct {
	ImageID string `json:"image_id"`
}

type Video struct {
	VideoID string `json:"video_id"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Platform struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type Company struct {
	Name string `json:"name"`
}

type InvolvedCompany struct {
	Company   Company `json:"company"`
	Developer bool    `json:"developer"`
	Publisher bool    `json:"publisher"`
}

type Game struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Summary          string            `json:"summary"`
	Storyline        string            `json:"storyline"`
	FirstReleaseDate int64             `json:"first_release_date"`
	Rating           float64           `json:"rating"`
	TotalRating      float64           `json:"total_rating"`
	Hypes            int               `json:"hypes"`
	Cover            Image             `json:"cover"`
	Videos           []Video           `json:"videos"`
	Genres           []Genre           `json:"genres"`
	Platforms        []Platform        `json:"platforms"`
	InvolvedComps    []InvolvedCompany `json:"involved_companies"`
}

type Client struct {
	log          *logger.Logger
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
	windowStart time.Time
	requests    int
}

func NewClient(log *logger.Logger) *Client {
	clientLog := log.With("client", "igdb")
	clientID := utils.GetEnv("IGDB_CLIENT_ID", "", clientLog)
	clientSecret := utils.GetEnv("IGDB_CLIENT_SECRET", "", clientLog)
	if clientID == "" || clientSecret == "" {
		clientLog.Warn("IGDB credentials not configured, IGDB lookups will fail")
	}
	return &Client{
		log:          clientLog,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ensureToken refreshes the Twitch OAuth token when it is missing or within a
// minute of expiry.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		token := c.accessToken
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	if !c.Configured() {
		return "", fmt.Errorf("igdb credentials not configured")
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twitch token request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("twitch token endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("twitch token response contained no token")
	}

	c.mu.Lock()
	c.accessToken = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.mu.Unlock()
	c.log.Info("Obtained IGDB access token")
	return payload.AccessToken, nil
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

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
	}
	return c.waitForSlot(ctx)
}

func (c *Client) query(ctx context.Context, endpoint, body string, out interface{}) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}
	if err := c.waitForSlot(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+endpoint, bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("failed to build igdb request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("igdb request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.Lock()
		c.accessToken = ""
		c.tokenExpiry = time.Time{}
		c.mu.Unlock()
		return fmt.Errorf("igdb rejected the access token")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("igdb returned status %d for %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode igdb response: %w", err)
	}
	return nil
}

const gameFields = `fields name, summary, storyline, first_release_date, rating, total_rating, hypes,
cover.image_id, videos.video_id, genres.id, genres.name,
platforms.id, platforms.name, platforms.abbreviation,
involved_companies.company.name, involved_companies.developer, involved_companies.publisher;`

func (c *Client) SearchGames(ctx context.Context, search string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 20
	}
	body := fmt.Sprintf("search %q;\n%s\nlimit %d;", search, gameFields, limit)
	var games []Game
	if err := c.query(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetGameDetails(ctx context.Context, gameID int) (*Game, error) {
	body := fmt.Sprintf("%s\nwhere id = %d;", gameFields, gameID)
	var games []Game
	if err := c.query(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game %d not found", gameID)
	}
	return &games[0], nil
}

func (c *Client) GetPopularGames(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 20
	}
	body := fmt.Sprintf("%s\nwhere total_rating_count > 50 & cover != null;\nsort hypes desc;\nlimit %d;", gameFields, limit)
	var games []Game
	if err := c.query(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GetUpcomingGames(ctx context.Context, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 20
	}
	now := time.Now().Unix()
	body := fmt.Sprintf("%s\nwhere first_release_date > %d & cover != null;\nsort first_release_date asc;\nlimit %d;", gameFields, now, limit)
	var games []Game
	if err := c.query(ctx, "/games", body, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func CoverURL(imageID string) string {
	if imageID == "" {
		return ""
	}
	return "https://images.igdb.com/igdb/image/upload/t_cover_big/" + imageID + ".jpg"
}

func releaseYear(unix int64) int {
	if unix == 0 {
		return 0
	}
	return time.Unix(unix, 0).UTC().Year()
}

// GameToContent maps an IGDB game onto a catalog row. The id is left nil so
// the caller decides identity.
func GameToContent(game *Game) *types.Content {
	var developer, publisher string
	for _, ic := range game.InvolvedComps {
		if ic.Developer && developer == "" {
			developer = ic.Company.Name
		}
		if ic.Publisher && publisher == "" {
			publisher = ic.Company.Name
		}
	}

	genres := make([]string, 0, len(game.Genres))
	for _, g := range game.Genres {
		genres = append(genres, g.Name)
	}
	platforms := make([]string, 0, len(game.Platforms))
	for _, p := range game.Platforms {
		if p.Abbreviation != "" {
			platforms = append(platforms, p.Abbreviation)
		} else {
			platforms = append(platforms, p.Name)
		}
	}
	platformsJSON, _ := json.Marshal(platforms)

	description := game.Summary
	if description == "" {
		description = game.Storyline
	}
	trailer := ""
	if len(game.Videos) > 0 {
		trailer = "https://www.youtube.com/watch?v=" + game.Videos[0].VideoID
	}

	return &types.Content{
		ID:          uuid.Nil,
		Title:       game.Name,
		ContentType: types.ContentTypeGame,
		ReleaseYear: releaseYear(game.FirstReleaseDate),
		Genre:       strings.Join(genres, ", "),
		Description: description,
		HypeIndex:   game.Hypes,
		PosterURL:   CoverURL(game.Cover.ImageID),
		TrailerURL:  trailer,
		Developer:   developer,
		Publisher:   publisher,
		Platforms:   platformsJSON,
	}
}

// Rating100To10 rescales IGDB's 0-100 ratings to the catalog's 0-10 scale.
func Rating100To10(rating float64) float64 {
	return math.Round(rating) / 10
}

func (c *Client) Available(ctx context.Context) bool {
	if !c.Configured() {
		return false
	}
	_, err := c.ensureToken(ctx)
	return err == nil
}
