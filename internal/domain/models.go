package domain

import (
	"time"

	"github.com/lib/pq"
)

type Role string

const (
	RoleAgent  Role = "agent"
	RoleAgency Role = "agency"
)

// Profile is the account record for a signed-up agent or agency.
type Profile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	AgencyID     *string   `json:"agency_id,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LeadStatus string

const (
	LeadCold LeadStatus = "cold"
	LeadWarm LeadStatus = "warm"
	LeadHot  LeadStatus = "hot"
)

type LeadSource string

const (
	SourceManual   LeadSource = "manual"
	SourceWhatsApp LeadSource = "whatsapp"
	SourceReferral LeadSource = "referral"
	SourceWebsite  LeadSource = "website"
	SourceOther    LeadSource = "other"
)

// Lead is a prospective client tracked through the cold/warm/hot pipeline.
type Lead struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Source    LeadSource `json:"source"`
	Status    LeadStatus `json:"status"`
	AgentID   string     `gorm:"index" json:"agent_id"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertyReserved  PropertyStatus = "reserved"
	PropertySold      PropertyStatus = "sold"
)

// Property is a real-estate listing owned by exactly one agent.
type Property struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	SalePrice      float64        `json:"sale_price"`
	AppraisalValue *float64       `json:"appraisal_value,omitempty"`
	Address        string         `json:"address,omitempty"`
	Neighborhood   string         `json:"neighborhood"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Bedrooms       int            `json:"bedrooms"`
	Bathrooms      int            `json:"bathrooms"`
	ParkingSpaces  int            `json:"parking_spaces"`
	BuiltArea      float64        `json:"built_area"`
	TotalArea      float64        `json:"total_area"`
	Benefits       pq.StringArray `gorm:"type:text[]" json:"benefits"`
	Photos         pq.StringArray `gorm:"type:text[]" json:"photos"`
	Status         PropertyStatus `json:"status"`
	OwnerID        string         `gorm:"index" json:"owner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PublishingLog records one publish attempt: which property, which platforms,
// and the full options payload as submitted.
type PublishingLog struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	PropertyID string         `gorm:"index" json:"property_id"`
	Platforms  pq.StringArray `gorm:"type:text[]" json:"platforms"`
	Options    []byte         `gorm:"type:jsonb" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PublishingResultRecord is the persisted audit row for one per-platform
// outcome of a publish attempt.
type PublishingResultRecord struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"index" json:"property_id"`
	Platform   Platform  `json:"platform"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	AdID       *string   `json:"ad_id,omitempty"`
	AdURL      *string   `json:"ad_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PublishingLog) TableName() string          { return "publishing_logs" }
func (PublishingResultRecord) TableName() string { return "publishing_results" }
