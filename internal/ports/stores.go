package ports

import (
	"context"

	"imobcrm/internal/domain"
)

// LeadFilter narrows a lead listing. A zero value lists everything the
// caller is allowed to see.
type LeadFilter struct {
	AgentID string
	Status  domain.LeadStatus
}

// PropertyFilter narrows a property listing.
type PropertyFilter struct {
	OwnerID string
	Status  domain.PropertyStatus
}

type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type LeadStore interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	Delete(ctx context.Context, id string) error
}

type PropertyStore interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
}

// PublishingAuditStore persists the publish-attempt log and the per-platform
// result log. Both writes are best-effort from the orchestrator's point of
// view: a failed insert is logged and never aborts the publish flow.
type PublishingAuditStore interface {
	InsertAttempt(ctx context.Context, log *domain.PublishingLog) error
	InsertResult(ctx context.Context, record *domain.PublishingResultRecord) error
	ListResults(ctx context.Context, propertyID string) ([]domain.PublishingResultRecord, error)
}
