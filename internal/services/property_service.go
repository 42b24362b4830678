package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
	appError "imobcrm/internal/shared/error"
)

// PropertyService handles the listing portfolio and photo uploads.
type PropertyService struct {
	properties ports.PropertyStore
	photos     ports.ObjectStorage
}

func NewPropertyService(properties ports.PropertyStore, photos ports.ObjectStorage) *PropertyService {
	return &PropertyService{properties: properties, photos: photos}
}

// List returns the properties visible to the actor. Agencies may narrow to
// one owner via ownerID; agents are forced to their own rows.
func (s *PropertyService) List(ctx context.Context, actor Actor, ownerID string) ([]domain.Property, error) {
	filter := ports.PropertyFilter{OwnerID: ownerID}
	if actor.Role == domain.RoleAgent {
		filter.OwnerID = actor.ProfileID
	}

	properties, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to list properties", err.Error())
	}
	return properties, nil
}

// Get loads one property, enforcing ownership for agents.
func (s *PropertyService) Get(ctx context.Context, actor Actor, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appError.ErrPropertyNotFound
		}
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to load property", err.Error())
	}
	if actor.Role == domain.RoleAgent && property.OwnerID != actor.ProfileID {
		return nil, appError.ErrPropertyNotFound
	}
	return property, nil
}

// Create inserts a property owned by the acting agent.
func (s *PropertyService) Create(ctx context.Context, actor Actor, property *domain.Property) (*domain.Property, error) {
	now := time.Now().UTC()
	property.ID = uuid.NewString()
	property.OwnerID = actor.ProfileID
	property.Title = strings.TrimSpace(property.Title)
	if property.Status == "" {
		property.Status = domain.PropertyAvailable
	}
	if property.Benefits == nil {
		property.Benefits = []string{}
	}
	if property.Photos == nil {
		property.Photos = []string{}
	}
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to create property", err.Error())
	}
	return property, nil
}

// Update replaces the mutable fields of a property the actor owns. The
// incoming value carries the full payload (schema-validated by the caller);
// identity and ownership fields are preserved.
func (s *PropertyService) Update(ctx context.Context, actor Actor, id string, updated *domain.Property) (*domain.Property, error) {
	existing, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if updated.Benefits == nil {
		updated.Benefits = []string{}
	}
	if updated.Photos == nil {
		updated.Photos = existing.Photos
	}

	if err := s.properties.Update(ctx, updated); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to update property", err.Error())
	}
	return updated, nil
}

// UpdateStatus moves a property between available/reserved/sold.
func (s *PropertyService) UpdateStatus(ctx context.Context, actor Actor, id string, status domain.PropertyStatus) (*domain.Property, error) {
	property, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	property.Status = status
	property.UpdatedAt = time.Now().UTC()
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to update property status", err.Error())
	}
	return property, nil
}

// Delete removes a property the actor owns.
func (s *PropertyService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to delete property", err.Error())
	}
	return nil
}

// AddPhoto uploads a photo to object storage and appends its key to the
// property's photo list.
func (s *PropertyService) AddPhoto(ctx context.Context, actor Actor, id, filename string, data []byte, contentType string) (*domain.Property, error) {
	property, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("properties/%s/%s%s", property.ID, uuid.NewString(), path.Ext(filename))
	storedKey, err := s.photos.Upload(ctx, objectKey, data, contentType)
	if err != nil {
		return nil, appError.NewCustomError(500, appError.ErrHTTPInternalServer.Code, "failed to upload photo", err.Error())
	}

	property.Photos = append(property.Photos, storedKey)
	property.UpdatedAt = time.Now().UTC()
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to attach photo", err.Error())
	}
	return property, nil
}
