package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// Claims holds the JWT payload. Tokens are issued for one roster seat in one
// session; the session ID travels as the audience.
type Claims struct {
	Player    string `json:"player"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTManager handles token creation and validation for a session.
type JWTManager struct {
	secret        []byte
	sessionID     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewJWTManager creates a JWTManager whose tokens are only accepted by the
// session with the given ID.
func NewJWTManager(secret, sessionID string) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		sessionID:     sessionID,
		accessExpiry:  15 * time.Minute,
		refreshExpiry: 7 * 24 * time.Hour,
	}
}

func (m *JWTManager) generate(player, typ string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Player:    player,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   player,
			Audience:  jwt.ClaimStrings{m.sessionID},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GenerateAccessToken creates a short-lived access token for the given player.
func (m *JWTManager) GenerateAccessToken(player string) (string, error) {
	return m.generate(player, tokenAccess, m.accessExpiry)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (m *JWTManager) GenerateRefreshToken(player string) (string, error) {
	return m.generate(player, tokenRefresh, m.refreshExpiry)
}

func (m *JWTManager) validate(tokenStr, typ string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithAudience(m.sessionID), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != typ || claims.Player == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccessToken parses an access token, returning the claims.
func (m *JWTManager) ValidateAccessToken(tokenStr string) (*Claims, error) {
	return m.validate(tokenStr, tokenAccess)
}

// ValidateRefreshToken parses a refresh token, returning the claims.
func (m *JWTManager) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return m.validate(tokenStr, tokenRefresh)
}

// TokenPair holds an access and refresh token.
type TokenPair struct {
	Player       string `json:"player"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// GenerateTokenPair creates both tokens for a player.
func (m *JWTManager) GenerateTokenPair(player string) (*TokenPair, error) {
	access, err := m.GenerateAccessToken(player)
	if err != nil {
		return nil, err
	}
	refresh, err := m.GenerateRefreshToken(player)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Player:       player,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(m.accessExpiry.Seconds()),
	}, nil
}
