package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

type GormPropertyStore struct {
	db *gorm.DB
}

func NewGormPropertyStore(db *gorm.DB) ports.PropertyStore {
	return &GormPropertyStore{db: db}
}

func (s *GormPropertyStore) Create(ctx context.Context, property *domain.Property) error {
	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (s *GormPropertyStore) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var property domain.Property
	if err := s.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *GormPropertyStore) List(ctx context.Context, filter ports.PropertyFilter) ([]domain.Property, error) {
	query := s.db.WithContext(ctx).Model(&domain.Property{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var properties []domain.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *GormPropertyStore) Update(ctx context.Context, property *domain.Property) error {
	if err := s.db.WithContext(ctx).Save(property).Error; err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

func (s *GormPropertyStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}
