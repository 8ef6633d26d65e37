package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jukevox/backend/internal/config"
	"github.com/jukevox/backend/internal/models"
	"github.com/jukevox/backend/pkg/crypto"
	jwtpkg "github.com/jukevox/backend/pkg/jwt"
)

// AuthService is the identity collaborator modeled in-repo: venue admins in
// Postgres, HS256 access tokens, persisted refresh tokens.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config

	sessions *SessionService
	policies *PolicyService
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// AttachSessionService wires the session service so registration can open the
// venue's first session.
func (s *AuthService) AttachSessionService(sessions *SessionService) {
	s.sessions = sessions
}

// AttachPolicyService wires the policy service so registration can seed the
// owner's default policy.
func (s *AuthService) AttachPolicyService(policies *PolicyService) {
	s.policies = policies
}

// Login authenticates an admin and returns tokens
func (s *AuthService) Login(username, password string) (string, string, *models.User, error) {
	var user models.User

	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, errors.New("invalid credentials")
		}
		return "", "", nil, err
	}

	if !user.IsActive {
		return "", "", nil, errors.New("account is deactivated")
	}

	if !crypto.CheckPassword(password, user.Password) {
		return "", "", nil, errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := s.issueTokens(user.ID)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, &user, nil
}

// Register creates an admin account together with the venue's first open
// session and the owner's default policy.
func (s *AuthService) Register(ctx context.Context, username, email, password, venueName string) (*models.User, *models.Session, error) {
	var existingUser models.User
	if err := s.db.Where("username = ? OR email = ?", username, email).First(&existingUser).Error; err == nil {
		if existingUser.Username == username {
			return nil, nil, errors.New("username already taken")
		}
		return nil, nil, errors.New("email already registered")
	}

	hashedPassword, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		VenueName: venueName,
		IsActive:  true,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, nil, err
	}

	var session *models.Session
	if s.sessions != nil {
		session, err = s.sessions.CreateSession(ctx, CreateSessionInput{
			VenueName: venueName,
			OwnerID:   user.ID.String(),
		})
		if err != nil {
			return nil, nil, err
		}
	}
	if s.policies != nil {
		if err := s.policies.SetPolicy(ctx, user.ID.String(), models.DefaultPolicy()); err != nil {
			return nil, nil, err
		}
	}

	return user, session, nil
}

// RefreshToken generates a new access token from a refresh token
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	claims, err := jwtpkg.ValidateToken(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return "", errors.New("invalid refresh token")
	}
	if claims.TokenType != jwtpkg.RefreshToken {
		return "", errors.New("invalid token type")
	}

	var tokenModel models.RefreshToken
	if err := s.db.Where("token = ?", refreshToken).First(&tokenModel).Error; err != nil {
		return "", errors.New("refresh token not found")
	}
	if time.Now().After(tokenModel.ExpiresAt) {
		s.db.Delete(&tokenModel)
		return "", errors.New("refresh token expired")
	}

	return jwtpkg.GenerateToken(claims.UserID, jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
}

// Logout invalidates all refresh tokens of a user
func (s *AuthService) Logout(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// ValidateAccessToken validates a bearer token and returns its claims
func (s *AuthService) ValidateAccessToken(token string) (*jwtpkg.Claims, error) {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwtpkg.AccessToken {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

// IssueDisplayToken mints the long-lived read token a venue pastes into a TV
// display. The token carries the session id, so the display never needs it in
// the URL.
func (s *AuthService) IssueDisplayToken(sessionID string) (string, error) {
	return jwtpkg.GenerateDisplayToken(sessionID, s.cfg.JWTSecret, s.cfg.JWTDisplayTokenDuration)
}

// ValidateDisplayToken validates a display token and returns the session id
// it is bound to.
func (s *AuthService) ValidateDisplayToken(token string) (string, error) {
	claims, err := jwtpkg.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return "", err
	}
	if claims.TokenType != jwtpkg.DisplayToken || claims.SessionID == "" {
		return "", errors.New("invalid token type")
	}
	return claims.SessionID, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateDefaultAdmin creates the configured admin account if no user exists
func (s *AuthService) CreateDefaultAdmin(ctx context.Context) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, _, err := s.Register(ctx, s.cfg.AdminUsername, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminVenue)
	if err != nil {
		return err
	}
	log.Printf("Created default admin user %q", s.cfg.AdminUsername)
	return nil
}

// CleanupExpiredTokens removes expired refresh tokens
func (s *AuthService) CleanupExpiredTokens() error {
	return s.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}

func (s *AuthService) issueTokens(userID uuid.UUID) (string, string, error) {
	accessToken, err := jwtpkg.GenerateToken(userID.String(), jwtpkg.AccessToken, s.cfg.JWTSecret, s.cfg.JWTAccessTokenDuration)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := jwtpkg.GenerateToken(userID.String(), jwtpkg.RefreshToken, s.cfg.JWTSecret, s.cfg.JWTRefreshTokenDuration)
	if err != nil {
		return "", "", err
	}

	refreshTokenModel := &models.RefreshToken{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshTokenDuration),
	}
	if err := s.db.Create(refreshTokenModel).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// IssueTokensFor issues an access/refresh pair for a freshly registered user.
func (s *AuthService) IssueTokensFor(user *models.User) (string, string, error) {
	return s.issueTokens(user.ID)
}
