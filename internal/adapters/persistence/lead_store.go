package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

type GormLeadStore struct {
	db *gorm.DB
}

func NewGormLeadStore(db *gorm.DB) ports.LeadStore {
	return &GormLeadStore{db: db}
}

func (s *GormLeadStore) Create(ctx context.Context, lead *domain.Lead) error {
	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

func (s *GormLeadStore) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *GormLeadStore) List(ctx context.Context, filter ports.LeadFilter) ([]domain.Lead, error) {
	query := s.db.WithContext(ctx).Model(&domain.Lead{})
	if filter.AgentID != "" {
		query = query.Where("agent_id = ?", filter.AgentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var leads []domain.Lead
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *GormLeadStore) Update(ctx context.Context, lead *domain.Lead) error {
	if err := s.db.WithContext(ctx).Save(lead).Error; err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return nil
}

func (s *GormLeadStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&domain.Lead{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return nil
}
