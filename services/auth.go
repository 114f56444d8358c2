package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/meinhoongagan/booking-marketplace/models"
	"github.com/meinhoongagan/booking-marketplace/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RevocationStore remembers revoked token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RegisterConsumerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RegisterProviderInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Address    string `json:"address"`
	Contact    string `json:"contact"`
	Experience int    `json:"experience"`
}

// AuthService registers accounts, checks credentials and resolves bearer tokens.
type AuthService struct {
	repo    repository.Repository
	tokens  *TokenService
	revoked RevocationStore
	log     *zerolog.Logger
}

var _ IdentityResolver = (*AuthService)(nil)

func NewAuthService(repo repository.Repository, tokens *TokenService, revoked RevocationStore, log *zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, revoked: revoked, log: nopLogger(log)}
}

func (s *AuthService) RegisterConsumer(ctx context.Context, in RegisterConsumerInput) (*models.Consumer, error) {
	email, hash, err := s.prepareCredentials(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	consumer := &models.Consumer{
		Username: strings.TrimSpace(in.Username),
		Email:    email,
		Password: hash,
		Phone:    in.Phone,
		Address:  in.Address,
		Status:   models.ConsumerActive,
	}
	if err := s.repo.CreateConsumer(ctx, consumer); err != nil {
		return nil, err
	}

	s.log.Info().Uint("consumer_id", consumer.ID).Msg("consumer registered")
	return consumer, nil
}

func (s *AuthService) RegisterProvider(ctx context.Context, in RegisterProviderInput) (*models.ServiceProvider, error) {
	email, hash, err := s.prepareCredentials(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if in.Experience < 0 {
		return nil, apperr.Invalid("experience cannot be negative")
	}

	provider := &models.ServiceProvider{
		Username:   strings.TrimSpace(in.Username),
		Email:      email,
		Password:   hash,
		Address:    in.Address,
		Contact:    in.Contact,
		Experience: in.Experience,
		IsActive:   true,
	}
	if err := s.repo.CreateProvider(ctx, provider); err != nil {
		return nil, err
	}

	s.log.Info().Uint("provider_id", provider.ID).Msg("service provider registered")
	return provider, nil
}

// prepareCredentials validates the required fields, checks the email is unused by either
// account kind and hashes the password.
func (s *AuthService) prepareCredentials(ctx context.Context, username, email, password string) (string, string, error) {
	email = normalizeEmail(email)
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return "", "", apperr.Invalid("username, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return "", "", apperr.Invalid("email %q is not valid", email)
	}

	if err := emailFree(ctx, s.repo, email, Subject{}); err != nil {
		return "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return email, string(hash), nil
}

// emailFree fails with Conflict when email belongs to any account other than owner.
func emailFree(ctx context.Context, repo repository.Repository, email string, owner Subject) error {
	p, err := repo.GetProviderByEmail(ctx, email)
	switch {
	case err == nil && !owner.Is(RoleProvider, p.ID):
		return apperr.Conflict("email %s is already registered", email)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return err
	}

	c, err := repo.GetConsumerByEmail(ctx, email)
	switch {
	case err == nil && !owner.Is(RoleConsumer, c.ID):
		return apperr.Conflict("email %s is already registered", email)
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return err
	}
	return nil
}

// Authenticate checks the credentials against providers first, then consumers.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return TokenPair{}, apperr.Unauthenticated("invalid credentials")
	}

	sub, hash, err := s.lookup(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		s.log.Warn().Str("email", email).Msg("login failed: wrong password")
		return TokenPair{}, apperr.Unauthenticated("invalid credentials")
	}

	pair, err := s.tokens.Issue(sub, email)
	if err != nil {
		return TokenPair{}, err
	}
	s.log.Info().Uint("subject_id", sub.ID).Str("role", string(sub.Role)).Msg("login succeeded")
	return pair, nil
}

func (s *AuthService) lookup(ctx context.Context, email string) (Subject, string, error) {
	p, err := s.repo.GetProviderByEmail(ctx, email)
	if err == nil {
		if !p.IsActive {
			return Subject{}, "", apperr.Unauthenticated("account is disabled")
		}
		return Subject{ID: p.ID, Role: RoleProvider}, p.Password, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return Subject{}, "", err
	}

	c, err := s.repo.GetConsumerByEmail(ctx, email)
	if err == nil {
		return Subject{ID: c.ID, Role: RoleConsumer}, c.Password, nil
	}
	if errors.Is(err, apperr.ErrNotFound) {
		return Subject{}, "", apperr.Unauthenticated("invalid credentials")
	}
	return Subject{}, "", err
}

// ResolveSubject accepts only unexpired, unrevoked access tokens.
func (s *AuthService) ResolveSubject(ctx context.Context, token string) (Subject, error) {
	claims, err := s.verify(ctx, token)
	if err != nil {
		return Subject{}, err
	}
	if claims.Refresh {
		return Subject{}, apperr.Unauthenticated("refresh token cannot be used for access")
	}
	return claims.Subject, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.verify(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if !claims.Refresh {
		return TokenPair{}, apperr.Unauthenticated("not a refresh token")
	}

	access, err := s.tokens.IssueAccess(claims.Subject, claims.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: access, Role: claims.Role, ID: claims.Subject.ID}, nil
}

// Revoke blacklists the token until its expiry.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	claims, err := s.verify(ctx, token)
	if err != nil {
		return err
	}
	if claims.TokenID == "" {
		return apperr.Unauthenticated("token cannot be revoked")
	}
	return s.revoked.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}

func (s *AuthService) verify(ctx context.Context, token string) (*TokenClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, apperr.Unauthenticated("token has been revoked")
		}
	}
	return claims, nil
}
