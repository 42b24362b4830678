package ports

import (
	"context"

	"imobcrm/internal/domain"
)

// ListingPlatform defines a port for submitting a property listing to one
// external marketplace. Implementations report business-level rejections as
// an unsuccessful PublishingResult, not as an error; an error (or a panic)
// means the submission itself faulted and is converted by the orchestrator.
type ListingPlatform interface {
	Name() domain.Platform
	Submit(ctx context.Context, property *domain.Property, options domain.PublishingOptions) (domain.PublishingResult, error)
}

// SchemaValidator defines a port for validating request payloads against a
// JSON Schema before they are bound to domain types.
type SchemaValidator interface {
	Validate(ctx context.Context, document string, payload []byte) error
}

// ObjectStorage defines a port for uploading binary objects (property
// photos) and returning the key where the object was stored.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	GetBucket() string
}

// EventPublisher defines a port for sending events/messages (e.g. Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}
