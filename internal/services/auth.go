package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/screenrate/screenrate-backend/internal/logger"
	"github.com/screenrate/screenrate-backend/internal/repos"
	"github.com/screenrate/screenrate-backend/internal/requestdata"
	"github.com/screenrate/screenrate-backend/internal/types"
	"github.com/screenrate/screenrate-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	if user.Username == "" {
		return fmt.Errorf("a username is required to register")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if emailExists {
		return fmt.Errorf("email is already in use")
	}
	usernameExists, err := as.userRepo.UsernameExists(ctx, nil, user.Username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return fmt.Errorf("username is already taken")
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = types.UserRoleUser
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		user.IsActive = true
		if as.avatarService != nil {
			if avatarURL, aerr := as.avatarService.GenerateUserAvatar(ctx, user); aerr != nil {
				as.log.Warn("Could not generate user avatar", "user_id", user.ID, "error", aerr)
			} else {
				user.AvatarURL = avatarURL
			}
		}
		if _, cerr := as.userRepo.Create(ctx, tx, []*types.User{user}); cerr != nil {
			return fmt.Errorf("failed to create user: %w", cerr)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", fmt.Errorf("invalid credentials")
	}
	if !user.IsActive {
		return "", "", fmt.Errorf("account is disabled")
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	if err := as.userRepo.UpdateFields(ctx, nil, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		as.log.Warn("Could not update last_login", "user_id", user.ID, "error", err)
	}

	return as.issueTokenPair(ctx, user)
}

func (as *authService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
		return "", "", fmt.Errorf("refresh token expired")
	}
	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return "", "", fmt.Errorf("user not found")
	}
	if err := as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken); err != nil {
		as.log.Warn("Could not delete rotated refresh token", "user_id", user.ID, "error", err)
	}
	return as.issueTokenPair(ctx, user)
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("a refresh token is required to logout")
	}
	return as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	rd := &requestdata.RequestData{
		UserID:   userID,
		Username: username,
		Role:     types.UserRole(role),
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokenPair(ctx context.Context, user *types.User) (string, string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := uuid.NewString() + uuid.NewString()
	tokenRow := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(ctx, nil, tokenRow); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
