package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/types"
)

const (
	avatarCanvasSize = 512
	avatarOutputSize = 256
)

// AvatarService renders an initials avatar for a new user and stores it under
// the local static directory. The generated file is served by the router's
// static route.
type AvatarService interface {
	GenerateUserAvatar(ctx context.Context, user *types.User) (string, error)
}

type avatarService struct {
	log       *logger.Logger
	staticDir string
	fontFace  font.Face

	bgColors []color.NRGBA
}

func NewAvatarService(log *logger.Logger, staticDir, fontPath string) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	if strings.TrimSpace(fontPath) == "" {
		return nil, fmt.Errorf("avatar font path is empty")
	}
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("could not read avatar font: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("could not parse avatar font: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{Size: 206})

	if err := os.MkdirAll(filepath.Join(staticDir, "avatars"), 0o755); err != nil {
		return nil, fmt.Errorf("could not create avatar directory: %w", err)
	}

	return &avatarService{
		log:       serviceLog,
		staticDir: staticDir,
		fontFace:  face,
		bgColors: []color.NRGBA{
			{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
			{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
			{R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
			{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
			{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
			{R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
		},
	}, nil
}

func (av *avatarService) GenerateUserAvatar(ctx context.Context, user *types.User) (string, error) {
	initials := avatarInitials(user.Username)
	bg := av.bgColors[hashString(user.Username)%uint32(len(av.bgColors))]

	dc := gg.NewContext(avatarCanvasSize, avatarCanvasSize)
	dc.SetColor(bg)
	dc.DrawCircle(avatarCanvasSize/2, avatarCanvasSize/2, avatarCanvasSize/2)
	dc.Fill()
	dc.SetFontFace(av.fontFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(initials, avatarCanvasSize/2, avatarCanvasSize/2, 0.5, 0.58)

	scaled := image.NewNRGBA(image.Rect(0, 0, avatarOutputSize, avatarOutputSize))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), dc.Image(), dc.Image().Bounds(), xdraw.Over, nil)

	fileName := fmt.Sprintf("%s.png", user.ID)
	fullPath := filepath.Join(av.staticDir, "avatars", fileName)
	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("could not create avatar file: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, scaled); err != nil {
		return "", fmt.Errorf("could not encode avatar: %w", err)
	}

	av.log.Debug("Generated user avatar", "user_id", user.ID, "path", fullPath)
	return "/static/avatars/" + fileName, nil
}

func avatarInitials(username string) string {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "?"
	}
	parts := strings.Fields(trimmed)
	if len(parts) >= 2 {
		return strings.ToUpper(string([]rune(parts[0])[0]) + string([]rune(parts[1])[0]))
	}
	runes := []rune(trimmed)
	if len(runes) >= 2 {
		return strings.ToUpper(string(runes[0:2]))
	}
	return strings.ToUpper(string(runes[0]))
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
