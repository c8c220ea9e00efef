package igdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/screenrate/screenrate-backend/internal/types"
)

func TestGameToContent(t *testing.T) {
	game := &Game{
		ID:               1942,
		Name:             "The Witcher 3: Wild Hunt",
		Summary:          "An open world RPG.",
		FirstReleaseDate: time.Date(2015, 5, 19, 0, 0, 0, 0, time.UTC).Unix(),
		Hypes:            120,
		Cover:            Image{ImageID: "abc123"},
		Videos:           []Video{{VideoID: "trailer1"}},
		Genres:           []Genre{{ID: 12, Name: "Role-playing (RPG)"}, {ID: 31, Name: "Adventure"}},
		Platforms: []Platform{
			{ID: 6, Name: "PC (Microsoft Windows)", Abbreviation: "PC"},
			{ID: 48, Name: "PlayStation 4"},
		},
		InvolvedComps: []InvolvedCompany{
			{Company: Company{Name: "CD Projekt Red"}, Developer: true},
			{Company: Company{Name: "CD Projekt"}, Publisher: true},
		},
	}

	content := GameToContent(game)
	if content.ContentType != types.ContentTypeGame {
		t.Fatalf("expected GAME, got %s", content.ContentType)
	}
	if content.ReleaseYear != 2015 {
		t.Fatalf("expected 2015, got %d", content.ReleaseYear)
	}
	if content.Developer != "CD Projekt Red" || content.Publisher != "CD Projekt" {
		t.Fatalf("unexpected companies: %q / %q", content.Developer, content.Publisher)
	}
	if content.HypeIndex != 120 {
		t.Fatalf("expected hype 120, got %d", content.HypeIndex)
	}
	if content.PosterURL != "https://images.igdb.com/igdb/image/upload/t_cover_big/abc123.jpg" {
		t.Fatalf("unexpected cover url: %q", content.PosterURL)
	}
	if content.TrailerURL != "https://www.youtube.com/watch?v=trailer1" {
		t.Fatalf("unexpected trailer url: %q", content.TrailerURL)
	}

	var platforms []string
	if err := json.Unmarshal(content.Platforms, &platforms); err != nil {
		t.Fatalf("platforms not valid json: %v", err)
	}
	if len(platforms) != 2 || platforms[0] != "PC" || platforms[1] != "PlayStation 4" {
		t.Fatalf("unexpected platforms: %v", platforms)
	}
}

func TestGameToContent_StorylineFallback(t *testing.T) {
	game := &Game{Name: "Obscure", Storyline: "Only a storyline."}
	content := GameToContent(game)
	if content.Description != "Only a storyline." {
		t.Fatalf("expected storyline fallback, got %q", content.Description)
	}
	if content.ReleaseYear != 0 {
		t.Fatalf("expected zero year without release date, got %d", content.ReleaseYear)
	}
	if content.PosterURL != "" || content.TrailerURL != "" {
		t.Fatalf("expected empty media urls")
	}
}

func TestRating100To10(t *testing.T) {
	cases := map[float64]float64{
		0:     0,
		92.4:  9.2,
		85.5:  8.6,
		100:   10,
		77.77: 7.8,
	}
	for in, want := range cases {
		if got := Rating100To10(in); got != want {
			t.Fatalf("rating %v: expected %v, got %v", in, want, got)
		}
	}
}
