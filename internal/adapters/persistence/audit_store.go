package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

type GormPublishingAuditStore struct {
	db *gorm.DB
}

func NewGormPublishingAuditStore(db *gorm.DB) ports.PublishingAuditStore {
	return &GormPublishingAuditStore{db: db}
}

func (s *GormPublishingAuditStore) InsertAttempt(ctx context.Context, log *domain.PublishingLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to insert publishing log: %w", err)
	}
	return nil
}

func (s *GormPublishingAuditStore) InsertResult(ctx context.Context, record *domain.PublishingResultRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert publishing result: %w", err)
	}
	return nil
}

func (s *GormPublishingAuditStore) ListResults(ctx context.Context, propertyID string) ([]domain.PublishingResultRecord, error) {
	var records []domain.PublishingResultRecord
	if err := s.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list publishing results: %w", err)
	}
	return records, nil
}
