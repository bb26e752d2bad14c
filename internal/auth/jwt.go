package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
	ErrMatchDenied  = errors.New("token not valid for this match")
)

// DefaultViewerExpiry is how long a spectator token stays valid.
const DefaultViewerExpiry = 12 * time.Hour

// Claims holds the JWT payload. An empty MatchID grants access to every match.
type Claims struct {
	ViewerID string `json:"viewer_id"`
	MatchID  string `json:"match_id,omitempty"`
	jwt.RegisteredClaims
}

// CanWatch reports whether the token covers the given match.
func (c *Claims) CanWatch(matchID string) bool {
	return c.MatchID == "" || c.MatchID == matchID
}

// JWTManager handles token creation and validation.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
// A non-positive expiry falls back to DefaultViewerExpiry.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	if expiry <= 0 {
		expiry = DefaultViewerExpiry
	}
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// ViewerToken is returned to spectators after login.
type ViewerToken struct {
	AccessToken string `json:"access_token"`
	MatchID     string `json:"match_id,omitempty"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// GenerateViewerToken signs a token for viewerID, optionally scoped to one match.
func (m *JWTManager) GenerateViewerToken(viewerID, matchID string) (*ViewerToken, error) {
	now := time.Now()
	claims := &Claims{
		ViewerID: viewerID,
		MatchID:  matchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   viewerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}
	return &ViewerToken{
		AccessToken: signed,
		MatchID:     matchID,
		ExpiresIn:   int(m.expiry.Seconds()),
	}, nil
}

// ValidateToken parses and validates a JWT string, returning the claims.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
