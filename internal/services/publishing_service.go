package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
	appError "imobcrm/internal/shared/error"
	logger "imobcrm/internal/shared/log"
)

// PublishingService orchestrates the syndication of a property to the
// listing marketplaces: it expands the requested platform set, fans out to
// the platform adapters concurrently, aggregates the per-platform outcomes
// in request order, and writes best-effort audit records for the attempt
// and for each result.
type PublishingService struct {
	platforms map[domain.Platform]ports.ListingPlatform
	audit     ports.PublishingAuditStore
	publisher ports.EventPublisher
	topic     string
}

// NewPublishingService wires the orchestrator. publisher may be nil, in
// which case no events are emitted; audit writes are always attempted but
// their failure never aborts a publish.
func NewPublishingService(
	audit ports.PublishingAuditStore,
	publisher ports.EventPublisher,
	topic string,
	adapters ...ports.ListingPlatform,
) *PublishingService {
	m := make(map[domain.Platform]ports.ListingPlatform, len(adapters))
	for _, a := range adapters {
		m[a.Name()] = a
	}
	return &PublishingService{
		platforms: m,
		audit:     audit,
		publisher: publisher,
		topic:     topic,
	}
}

// Validate applies the publication rules to the property. Callers must
// check the outcome before invoking Publish; Publish itself assumes a
// property that already passed.
func (s *PublishingService) Validate(property *domain.Property) domain.ValidationOutcome {
	return domain.ValidateForPublishing(property)
}

// ExpandPlatforms resolves the requested platform tokens to the concrete
// set that will be submitted to. "all" expands to every marketplace (in
// canonical order); explicit selections keep their request order with
// duplicates removed.
func (s *PublishingService) ExpandPlatforms(requested []domain.Platform) ([]domain.Platform, error) {
	if len(requested) == 0 {
		return nil, appError.ErrNoPlatformsRequested
	}

	for _, p := range requested {
		if _, err := domain.ParsePlatform(string(p)); err != nil {
			return nil, appError.NewCustomError(400, appError.ErrUnknownPlatform.Code, appError.ErrUnknownPlatform.Message, string(p))
		}
	}

	for _, p := range requested {
		if p == domain.PlatformAll {
			return append([]domain.Platform(nil), domain.ConcretePlatforms...), nil
		}
	}

	seen := make(map[domain.Platform]bool, len(requested))
	expanded := make([]domain.Platform, 0, len(requested))
	for _, p := range requested {
		if !seen[p] {
			seen[p] = true
			expanded = append(expanded, p)
		}
	}
	return expanded, nil
}

// Publish submits the property to every requested marketplace. Adapters run
// concurrently and independently; a slow or faulting adapter never blocks or
// cancels the others. The returned slice holds exactly one result per
// concrete requested platform, in request order. Adapter failures and
// faults come back as unsuccessful results, never as an error.
func (s *PublishingService) Publish(ctx context.Context, property *domain.Property, options domain.PublishingOptions) ([]domain.PublishingResult, error) {
	platforms, err := s.ExpandPlatforms(options.Platforms)
	if err != nil {
		return nil, err
	}

	s.logAttempt(ctx, property.ID, options)

	results := make([]domain.PublishingResult, len(platforms))
	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(i int, platform domain.Platform) {
			defer wg.Done()
			results[i] = s.submit(ctx, platform, property, options)
		}(i, platform)
	}
	wg.Wait()

	for i := range results {
		s.saveResult(ctx, property.ID, results[i])
	}

	return results, nil
}

// submit calls one platform adapter, converting errors and panics into an
// unsuccessful PublishingResult so that no single platform can break the
// aggregate outcome.
func (s *PublishingService) submit(ctx context.Context, platform domain.Platform, property *domain.Property, options domain.PublishingOptions) (result domain.PublishingResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, fmt.Errorf("panic in %s adapter: %v", platform, r), "recovered from platform adapter panic")
			result = failureResult(platform, fmt.Sprintf("%v", r))
		}
	}()

	adapter, ok := s.platforms[platform]
	if !ok {
		return failureResult(platform, "nenhum adaptador configurado")
	}

	result, err := adapter.Submit(ctx, property, options)
	if err != nil {
		logger.Errorf(ctx, err, "platform %s submission faulted", platform)
		return failureResult(platform, err.Error())
	}
	return result
}

func failureResult(platform domain.Platform, detail string) domain.PublishingResult {
	if detail == "" {
		detail = "Erro desconhecido"
	}
	return domain.PublishingResult{
		Platform: platform,
		Success:  false,
		Message:  fmt.Sprintf("Erro ao publicar no %s: %s", platform.DisplayName(), detail),
	}
}

// logAttempt writes the publish-attempt audit row and emits the matching
// event. Both are best-effort: failures are logged and swallowed.
func (s *PublishingService) logAttempt(ctx context.Context, propertyID string, options domain.PublishingOptions) {
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		logger.Errorf(ctx, err, "failed to serialize publishing options for audit")
		optionsJSON = nil
	}

	platforms := make([]string, len(options.Platforms))
	for i, p := range options.Platforms {
		platforms[i] = string(p)
	}

	entry := &domain.PublishingLog{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Platforms:  platforms,
		Options:    optionsJSON,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.InsertAttempt(ctx, entry); err != nil {
		logger.Errorf(ctx, err, "failed to record publishing attempt for property %s", propertyID)
	}

	s.emit(ctx, propertyID, publishingEvent{
		Type:       "publishing.attempt",
		PropertyID: propertyID,
		Platforms:  platforms,
	})
}

// saveResult persists one per-platform outcome, best-effort.
func (s *PublishingService) saveResult(ctx context.Context, propertyID string, result domain.PublishingResult) {
	record := &domain.PublishingResultRecord{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		Platform:   result.Platform,
		Success:    result.Success,
		Message:    result.Message,
		CreatedAt:  time.Now().UTC(),
	}
	if result.AdID != "" {
		record.AdID = &result.AdID
	}
	if result.AdURL != "" {
		record.AdURL = &result.AdURL
	}
	if err := s.audit.InsertResult(ctx, record); err != nil {
		logger.Errorf(ctx, err, "failed to record publishing result for property %s on %s", propertyID, result.Platform)
	}

	s.emit(ctx, propertyID, publishingEvent{
		Type:       "publishing.result",
		PropertyID: propertyID,
		Platform:   string(result.Platform),
		Success:    result.Success,
		Message:    result.Message,
		AdID:       result.AdID,
	})
}

// Results returns the persisted per-platform outcomes for a property.
func (s *PublishingService) Results(ctx context.Context, propertyID string) ([]domain.PublishingResultRecord, error) {
	records, err := s.audit.ListResults(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list publishing results: %w", err)
	}
	return records, nil
}

type publishingEvent struct {
	Type       string   `json:"type"`
	PropertyID string   `json:"property_id"`
	Platforms  []string `json:"platforms,omitempty"`
	Platform   string   `json:"platform,omitempty"`
	Success    bool     `json:"success,omitempty"`
	Message    string   `json:"message,omitempty"`
	AdID       string   `json:"ad_id,omitempty"`
}

func (s *PublishingService) emit(ctx context.Context, key string, event publishingEvent) {
	if s.publisher == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		logger.Errorf(ctx, err, "failed to serialize %s event", event.Type)
		return
	}
	if err := s.publisher.Publish(ctx, s.topic, []byte(key), value); err != nil {
		logger.Errorf(ctx, err, "failed to publish %s event", event.Type)
	}
}
