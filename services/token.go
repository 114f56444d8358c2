package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/meinhoongagan/booking-marketplace/apperr"
)

const refreshType = "refresh"

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Role         Role   `json:"role"`
	ID           uint   `json:"id"`
}

// TokenClaims is the decoded content of an access or refresh token.
type TokenClaims struct {
	Subject
	Email     string
	TokenID   string
	Refresh   bool
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 bearer tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Secret is the signing key shared with the HTTP middleware.
func (t *TokenService) Secret() []byte {
	return t.secret
}

func (t *TokenService) Issue(sub Subject, email string) (TokenPair, error) {
	access, err := t.sign(sub, email, t.accessTTL, false)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(sub, email, t.refreshTTL, true)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: access, RefreshToken: refresh, Role: sub.Role, ID: sub.ID}, nil
}

// IssueAccess signs a fresh access token only.
func (t *TokenService) IssueAccess(sub Subject, email string) (string, error) {
	return t.sign(sub, email, t.accessTTL, false)
}

func (t *TokenService) sign(sub Subject, email string, ttl time.Duration, refresh bool) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"id":    sub.ID,
		"role":  string(sub.Role),
		"email": email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if refresh {
		claims["typ"] = refreshType
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and decodes the claims.
func (t *TokenService) Parse(raw string) (*TokenClaims, error) {
	// Expiry is checked in decode against the service clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthenticated("invalid token claims")
	}
	return t.decode(claims)
}

func (t *TokenService) decode(claims jwt.MapClaims) (*TokenClaims, error) {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, apperr.Unauthenticated("token has no expiry")
	}
	expiresAt := time.Unix(int64(exp), 0)
	if !t.now().Before(expiresAt) {
		return nil, apperr.Unauthenticated("token expired")
	}

	id, err := extractID(claims["id"])
	if err != nil {
		return nil, apperr.Unauthenticated("invalid subject in token: %v", err)
	}

	role, _ := claims["role"].(string)
	if Role(role) != RoleConsumer && Role(role) != RoleProvider {
		return nil, apperr.Unauthenticated("invalid role in token")
	}

	jti, _ := claims["jti"].(string)
	email, _ := claims["email"].(string)
	typ, _ := claims["typ"].(string)

	return &TokenClaims{
		Subject:   Subject{ID: id, Role: Role(role)},
		Email:     email,
		TokenID:   jti,
		Refresh:   typ == refreshType,
		ExpiresAt: expiresAt,
	}, nil
}

// extractID handles the numeric and string forms an id claim can take.
func extractID(v interface{}) (uint, error) {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != float64(uint(id)) {
			return 0, fmt.Errorf("bad id %v", id)
		}
		return uint(id), nil
	case string:
		parsed, err := strconv.ParseUint(id, 10, 64)
		if err != nil || parsed == 0 {
			return 0, fmt.Errorf("could not parse id %q", id)
		}
		return uint(parsed), nil
	case nil:
		return 0, fmt.Errorf("no id found in claims")
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}
