// Package persistence implements the store ports on gorm/Postgres.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) ports.ProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (s *GormProfileStore) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormProfileStore) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *GormProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
