package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
	appError "imobcrm/internal/shared/error"
)

// Actor identifies the authenticated caller for row-level access decisions:
// agents only see and mutate their own rows, agencies see everything.
type Actor struct {
	ProfileID string
	Role      domain.Role
}

// LeadService handles the lead pipeline.
type LeadService struct {
	leads ports.LeadStore
}

func NewLeadService(leads ports.LeadStore) *LeadService {
	return &LeadService{leads: leads}
}

// List returns the leads visible to the actor. Agencies may narrow to one
// agent via agentID; for agents the filter is forced to their own id.
func (s *LeadService) List(ctx context.Context, actor Actor, agentID string) ([]domain.Lead, error) {
	filter := ports.LeadFilter{AgentID: agentID}
	if actor.Role == domain.RoleAgent {
		filter.AgentID = actor.ProfileID
	}

	leads, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to list leads", err.Error())
	}
	return leads, nil
}

// Get loads one lead, enforcing ownership for agents.
func (s *LeadService) Get(ctx context.Context, actor Actor, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appError.ErrLeadNotFound
		}
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to load lead", err.Error())
	}
	if actor.Role == domain.RoleAgent && lead.AgentID != actor.ProfileID {
		return nil, appError.ErrLeadNotFound
	}
	return lead, nil
}

// Create inserts a lead owned by the acting agent.
func (s *LeadService) Create(ctx context.Context, actor Actor, lead *domain.Lead) (*domain.Lead, error) {
	now := time.Now().UTC()
	lead.ID = uuid.NewString()
	lead.AgentID = actor.ProfileID
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Notes = strings.TrimSpace(lead.Notes)
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to create lead", err.Error())
	}
	return lead, nil
}

// LeadUpdate carries the mutable lead fields; nil means unchanged.
type LeadUpdate struct {
	Name   *string
	Email  *string
	Phone  *string
	Source *domain.LeadSource
	Status *domain.LeadStatus
	Notes  *string
}

// Update applies a partial update to a lead the actor owns.
func (s *LeadService) Update(ctx context.Context, actor Actor, id string, update LeadUpdate) (*domain.Lead, error) {
	lead, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		lead.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		lead.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Phone != nil {
		lead.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Source != nil {
		lead.Source = *update.Source
	}
	if update.Status != nil {
		lead.Status = *update.Status
	}
	if update.Notes != nil {
		lead.Notes = strings.TrimSpace(*update.Notes)
	}
	lead.UpdatedAt = time.Now().UTC()

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to update lead", err.Error())
	}
	return lead, nil
}

// UpdateStatus moves a lead through the cold/warm/hot pipeline.
func (s *LeadService) UpdateStatus(ctx context.Context, actor Actor, id string, status domain.LeadStatus) (*domain.Lead, error) {
	return s.Update(ctx, actor, id, LeadUpdate{Status: &status})
}

// Delete removes a lead the actor owns.
func (s *LeadService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, "failed to delete lead", err.Error())
	}
	return nil
}
