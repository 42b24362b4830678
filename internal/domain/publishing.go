package domain

import "fmt"

// Platform identifies a listing marketplace. PlatformAll is an aggregate
// token accepted on input only: it expands to the three concrete platforms
// and never appears in a PublishingResult.
type Platform string

const (
	PlatformOLX        Platform = "olx"
	PlatformZapImoveis Platform = "zapimoveis"
	PlatformVivaReal   Platform = "vivareal"
	PlatformAll        Platform = "all"
)

// ConcretePlatforms lists the real marketplaces in canonical order.
var ConcretePlatforms = []Platform{PlatformOLX, PlatformZapImoveis, PlatformVivaReal}

// ParsePlatform validates a platform token from user input.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformOLX, PlatformZapImoveis, PlatformVivaReal, PlatformAll:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// DisplayName returns the marketplace's branded name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformOLX:
		return "OLX"
	case PlatformZapImoveis:
		return "ZapImóveis"
	case PlatformVivaReal:
		return "VivaReal"
	default:
		return string(p)
	}
}

// ContactInfo is shown on the published ad.
type ContactInfo struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// PublishingOptions is the per-attempt submission payload.
type PublishingOptions struct {
	Platforms         []Platform  `json:"platforms" validate:"required,min=1"`
	IncludePrice      bool        `json:"include_price"`
	IncludePhotos     bool        `json:"include_photos"`
	CustomDescription string      `json:"custom_description,omitempty"`
	ContactInfo       ContactInfo `json:"contact_info" validate:"required"`
}

// Description resolves the ad copy: the custom override when present,
// otherwise the property's own description.
func (o PublishingOptions) Description(p *Property) string {
	if o.CustomDescription != "" {
		return o.CustomDescription
	}
	return p.Description
}

// PublishingResult is the outcome of submitting one property to one
// concrete platform. AdID and AdURL are set only on success.
type PublishingResult struct {
	Platform Platform `json:"platform"`
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	AdID     string   `json:"ad_id,omitempty"`
	AdURL    string   `json:"ad_url,omitempty"`
}

// ValidationOutcome reports whether a property satisfies the publication
// rules; Errors is empty iff IsValid is true.
type ValidationOutcome struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}
