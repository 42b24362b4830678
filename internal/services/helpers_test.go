package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
)

// fakeProfileStore is an in-memory ports.ProfileStore.
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*domain.Profile{}}
}

func (s *fakeProfileStore) Create(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *profile
	s.profiles[profile.ID] = &copied
	return nil
}

func (s *fakeProfileStore) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile, ok := s.profiles[id]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeProfileStore) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, profile := range s.profiles {
		if profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeProfileStore) Update(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *profile
	s.profiles[profile.ID] = &copied
	return nil
}

// fakeLeadStore is an in-memory ports.LeadStore.
type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[string]*domain.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: map[string]*domain.Lead{}}
}

func (s *fakeLeadStore) Create(_ context.Context, lead *domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *lead
	s.leads[lead.ID] = &copied
	return nil
}

func (s *fakeLeadStore) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lead, ok := s.leads[id]; ok {
		copied := *lead
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeLeadStore) List(_ context.Context, filter ports.LeadFilter) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var leads []domain.Lead
	for _, lead := range s.leads {
		if filter.AgentID != "" && lead.AgentID != filter.AgentID {
			continue
		}
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		leads = append(leads, *lead)
	}
	return leads, nil
}

func (s *fakeLeadStore) Update(_ context.Context, lead *domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *lead
	s.leads[lead.ID] = &copied
	return nil
}

func (s *fakeLeadStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, id)
	return nil
}

// fakePropertyStore is an in-memory ports.PropertyStore.
type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[string]*domain.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: map[string]*domain.Property{}}
}

func (s *fakePropertyStore) Create(_ context.Context, property *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *fakePropertyStore) GetByID(_ context.Context, id string) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if property, ok := s.properties[id]; ok {
		copied := *property
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakePropertyStore) List(_ context.Context, filter ports.PropertyFilter) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var properties []domain.Property
	for _, property := range s.properties {
		if filter.OwnerID != "" && property.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && property.Status != filter.Status {
			continue
		}
		properties = append(properties, *property)
	}
	return properties, nil
}

func (s *fakePropertyStore) Update(_ context.Context, property *domain.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *property
	s.properties[property.ID] = &copied
	return nil
}

func (s *fakePropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.properties, id)
	return nil
}

// fakeAuditStore records publishing audit writes; failInserts makes every
// insert fail to exercise the best-effort contract.
type fakeAuditStore struct {
	mu          sync.Mutex
	failInserts bool
	attempts    []domain.PublishingLog
	results     []domain.PublishingResultRecord
}

func (s *fakeAuditStore) InsertAttempt(_ context.Context, log *domain.PublishingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInserts {
		return errors.New("audit store unavailable")
	}
	s.attempts = append(s.attempts, *log)
	return nil
}

func (s *fakeAuditStore) InsertResult(_ context.Context, record *domain.PublishingResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInserts {
		return errors.New("audit store unavailable")
	}
	s.results = append(s.results, *record)
	return nil
}

func (s *fakeAuditStore) ListResults(_ context.Context, propertyID string) ([]domain.PublishingResultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []domain.PublishingResultRecord
	for _, record := range s.results {
		if record.PropertyID == propertyID {
			records = append(records, record)
		}
	}
	return records, nil
}

// stubPlatform is a ports.ListingPlatform with scripted behavior.
type stubPlatform struct {
	name    domain.Platform
	succeed bool
	err     error
	panics  bool
}

func (p *stubPlatform) Name() domain.Platform { return p.name }

func (p *stubPlatform) Submit(_ context.Context, _ *domain.Property, _ domain.PublishingOptions) (domain.PublishingResult, error) {
	if p.panics {
		panic("adapter exploded")
	}
	if p.err != nil {
		return domain.PublishingResult{}, p.err
	}
	if !p.succeed {
		return domain.PublishingResult{
			Platform: p.name,
			Success:  false,
			Message:  "Erro na publicação: rejeitado",
		}, nil
	}
	adID := string(p.name) + "_123_abcdefghi"
	return domain.PublishingResult{
		Platform: p.name,
		Success:  true,
		Message:  "Anúncio publicado com sucesso",
		AdID:     adID,
		AdURL:    "https://" + string(p.name) + ".example/" + adID,
	}, nil
}

func publishableProperty() *domain.Property {
	return &domain.Property{
		ID:           "prop-1",
		OwnerID:      "agent-1",
		Title:        strings.Repeat("t", 40),
		Description:  strings.Repeat("d", 80),
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		Bedrooms:     2,
		Bathrooms:    1,
		BuiltArea:    75,
		TotalArea:    90,
		SalePrice:    350000,
		Photos:       []string{"a.jpg"},
	}
}
