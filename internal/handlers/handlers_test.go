package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"imobcrm/internal/adapters/validation"
	"imobcrm/internal/config/di"
	"imobcrm/internal/domain"
	"imobcrm/internal/handlers"
	"imobcrm/internal/ports"
	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
)

// memStores is the in-memory persistence backing a test application.
type memStores struct {
	mu         sync.Mutex
	profiles   map[string]*domain.Profile
	leads      map[string]*domain.Lead
	properties map[string]*domain.Property
	attempts   []domain.PublishingLog
	results    []domain.PublishingResultRecord
}

func newMemStores() *memStores {
	return &memStores{
		profiles:   map[string]*domain.Profile{},
		leads:      map[string]*domain.Lead{},
		properties: map[string]*domain.Property{},
	}
}

type memProfileStore struct{ s *memStores }

func (m memProfileStore) Create(_ context.Context, profile *domain.Profile) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	copied := *profile
	m.s.profiles[profile.ID] = &copied
	return nil
}

func (m memProfileStore) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if profile, ok := m.s.profiles[id]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memProfileStore) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, profile := range m.s.profiles {
		if profile.Email == email {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memProfileStore) Update(_ context.Context, profile *domain.Profile) error {
	return m.Create(context.Background(), profile)
}

type memLeadStore struct{ s *memStores }

func (m memLeadStore) Create(_ context.Context, lead *domain.Lead) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	copied := *lead
	m.s.leads[lead.ID] = &copied
	return nil
}

func (m memLeadStore) GetByID(_ context.Context, id string) (*domain.Lead, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if lead, ok := m.s.leads[id]; ok {
		copied := *lead
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memLeadStore) List(_ context.Context, filter ports.LeadFilter) ([]domain.Lead, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var leads []domain.Lead
	for _, lead := range m.s.leads {
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

func (m memLeadStore) Update(_ context.Context, lead *domain.Lead) error {
	return m.Create(context.Background(), lead)
}

func (m memLeadStore) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.leads, id)
	return nil
}

type memPropertyStore struct{ s *memStores }

func (m memPropertyStore) Create(_ context.Context, property *domain.Property) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	copied := *property
	m.s.properties[property.ID] = &copied
	return nil
}

func (m memPropertyStore) GetByID(_ context.Context, id string) (*domain.Property, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if property, ok := m.s.properties[id]; ok {
		copied := *property
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memPropertyStore) List(_ context.Context, filter ports.PropertyFilter) ([]domain.Property, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var properties []domain.Property
	for _, property := range m.s.properties {
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

func (m memPropertyStore) Update(_ context.Context, property *domain.Property) error {
	return m.Create(context.Background(), property)
}

func (m memPropertyStore) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.properties, id)
	return nil
}

type memAuditStore struct{ s *memStores }

func (m memAuditStore) InsertAttempt(_ context.Context, log *domain.PublishingLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.attempts = append(m.s.attempts, *log)
	return nil
}

func (m memAuditStore) InsertResult(_ context.Context, record *domain.PublishingResultRecord) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.results = append(m.s.results, *record)
	return nil
}

func (m memAuditStore) ListResults(_ context.Context, propertyID string) ([]domain.PublishingResultRecord, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var records []domain.PublishingResultRecord
	for _, record := range m.s.results {
		if record.PropertyID == propertyID {
			records = append(records, record)
		}
	}
	return records, nil
}

type memObjectStorage struct{}

func (memObjectStorage) Upload(_ context.Context, objectName string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty object")
	}
	return "https://storage.local/property-photos/" + objectName, nil
}

func (memObjectStorage) GetBucket() string { return "property-photos" }

// scriptedPlatform submits with a fixed outcome so handler tests are
// deterministic.
type scriptedPlatform struct {
	name    domain.Platform
	succeed bool
}

func (p scriptedPlatform) Name() domain.Platform { return p.name }

func (p scriptedPlatform) Submit(_ context.Context, _ *domain.Property, _ domain.PublishingOptions) (domain.PublishingResult, error) {
	if !p.succeed {
		return domain.PublishingResult{
			Platform: p.name,
			Success:  false,
			Message:  "Erro na publicação: Limite de anúncios atingido",
		}, nil
	}
	adID := string(p.name) + "_1724900000000_abc123def"
	return domain.PublishingResult{
		Platform: p.name,
		Success:  true,
		Message:  "Anúncio publicado com sucesso",
		AdID:     adID,
		AdURL:    "https://" + string(p.name) + ".example/" + adID,
	}, nil
}

func allScripted(succeed bool) []ports.ListingPlatform {
	return []ports.ListingPlatform{
		scriptedPlatform{name: domain.PlatformOLX, succeed: succeed},
		scriptedPlatform{name: domain.PlatformZapImoveis, succeed: succeed},
		scriptedPlatform{name: domain.PlatformVivaReal, succeed: succeed},
	}
}

type testEnv struct {
	app    *fiber.App
	stores *memStores
}

// newTestEnv assembles the full route tree on in-memory stores. Platform
// adapters default to three always-succeeding ones when none are given.
func newTestEnv(t *testing.T, adapters ...ports.ListingPlatform) *testEnv {
	t.Helper()

	stores := newMemStores()
	if len(adapters) == 0 {
		adapters = allScripted(true)
	}

	schemaValidator, err := validation.NewJSONSchemaValidator()
	require.NoError(t, err)

	authService := services.NewAuthService(memProfileStore{stores}, "test-secret", time.Hour)
	leadService := services.NewLeadService(memLeadStore{stores})
	propertyService := services.NewPropertyService(memPropertyStore{stores}, memObjectStorage{})
	dashboardService := services.NewDashboardService(leadService, propertyService)
	publishingService := services.NewPublishingService(memAuditStore{stores}, nil, "", adapters...)

	app := fiber.New(fiber.Config{ErrorHandler: appError.ErrorHandler()})
	handlers.RegisterRoutes(app, &di.Container{
		SchemaValidator:   schemaValidator,
		AuthService:       authService,
		LeadService:       leadService,
		PropertyService:   propertyService,
		DashboardService:  dashboardService,
		PublishingService: publishingService,
	})

	return &testEnv{app: app, stores: stores}
}

// register signs up a user through the API and returns their token.
func (e *testEnv) register(t *testing.T, name, email, role string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"phone":    "+55 11 90000-0000",
		"password": "secret-password",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

// request performs one JSON request against the test app. A non-empty token
// is sent as a Bearer credential.
func (e *testEnv) request(t *testing.T, method, target, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// errorCode reads the error envelope produced by the fiber error handler.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, resp, &body)
	return body.Code
}

// propertyPayload is a schema-valid create/update body that also satisfies
// the publication rules.
func propertyPayload() fiber.Map {
	return fiber.Map{
		"title":        "Apartamento 3 quartos no Centro",
		"description":  "Apartamento amplo e reformado, com varanda, proximo ao metro e a todo o comercio da regiao central.",
		"sale_price":   450000,
		"neighborhood": "Centro",
		"city":         "São Paulo",
		"state":        "SP",
		"bedrooms":     3,
		"bathrooms":    2,
		"built_area":   95.5,
		"total_area":   110.0,
		"photos":       []string{"https://cdn.example/fachada.jpg"},
	}
}
