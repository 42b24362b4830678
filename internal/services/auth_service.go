package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
	appError "imobcrm/internal/shared/error"
)

// Claims is the JWT payload issued on login and register.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and profile management.
type AuthService struct {
	profiles  ports.ProfileStore
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthService(profiles ports.ProfileStore, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		profiles:  profiles,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

// Register creates a profile with a hashed password and returns it together
// with a fresh token.
func (s *AuthService) Register(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.profiles.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", appError.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", appError.NewCustomError(500, appError.ErrHTTPInternalServer.Code, "failed to hash password", err.Error())
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, "", appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to create profile", err.Error())
	}

	token, err := s.issueToken(profile)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// Login verifies credentials and returns the profile with a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", appError.ErrInvalidCredentials
		}
		return nil, "", appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to load profile", err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", appError.ErrInvalidCredentials
	}

	token, err := s.issueToken(profile)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// GetProfile loads a profile by id.
func (s *AuthService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appError.ErrProfileNotFound
		}
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to load profile", err.Error())
	}
	return profile, nil
}

// UpdateProfile applies mutable profile fields (name, phone, photo URL).
func (s *AuthService) UpdateProfile(ctx context.Context, id string, name, phone, photoURL *string) (*domain.Profile, error) {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		profile.Name = strings.TrimSpace(*name)
	}
	if phone != nil {
		profile.Phone = strings.TrimSpace(*phone)
	}
	if photoURL != nil {
		profile.PhotoURL = *photoURL
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to update profile", err.Error())
	}
	return profile, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, appError.ErrInvalidAuthToken
	}
	return claims, nil
}

func (s *AuthService) issueToken(profile *domain.Profile) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", appError.NewCustomError(500, appError.ErrHTTPInternalServer.Code, "failed to sign token", err.Error())
	}
	return signed, nil
}
