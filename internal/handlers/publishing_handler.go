package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fastjson"

	"imobcrm/internal/domain"
	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
	logger "imobcrm/internal/shared/log"
)

type PublishingHandler struct {
	publishing *services.PublishingService
	properties *services.PropertyService
}

func NewPublishingHandler(publishing *services.PublishingService, properties *services.PropertyService) *PublishingHandler {
	return &PublishingHandler{publishing: publishing, properties: properties}
}

type publishRequest struct {
	Platforms         []string           `json:"platforms" validate:"required,min=1"`
	IncludePrice      bool               `json:"include_price"`
	IncludePhotos     bool               `json:"include_photos"`
	CustomDescription string             `json:"custom_description,omitempty"`
	ContactInfo       domain.ContactInfo `json:"contact_info" validate:"required"`
}

// peekPlatforms extracts the platform list from the raw payload before full
// binding, so the attempt is traceable even when binding fails later.
func peekPlatforms(payload []byte) []string {
	var p fastjson.Parser
	v, err := p.ParseBytes(payload)
	if err != nil {
		return nil
	}
	values := v.GetArray("platforms")
	platforms := make([]string, 0, len(values))
	for _, value := range values {
		platforms = append(platforms, string(value.GetStringBytes()))
	}
	return platforms
}

// Validate runs the publication rules for a property without publishing.
func (h *PublishingHandler) Validate(c *fiber.Ctx) error {
	property, err := h.properties.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(h.publishing.Validate(property))
}

// Publish validates the property against the publication rules and, only
// when the rules pass, fans the submission out to the requested platforms.
func (h *PublishingHandler) Publish(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger.Infof(ctx, "publish requested for property %s on platforms %v", c.Params("id"), peekPlatforms(c.Body()))

	var req publishRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	property, err := h.properties.Get(ctx, actor(c), c.Params("id"))
	if err != nil {
		return err
	}

	outcome := h.publishing.Validate(property)
	if !outcome.IsValid {
		return appError.NewCustomError(422, appError.ErrPropertyNotPublishable.Code, appError.ErrPropertyNotPublishable.Message, outcome.Errors)
	}

	platforms := make([]domain.Platform, len(req.Platforms))
	for i, p := range req.Platforms {
		platforms[i] = domain.Platform(p)
	}

	results, err := h.publishing.Publish(ctx, property, domain.PublishingOptions{
		Platforms:         platforms,
		IncludePrice:      req.IncludePrice,
		IncludePhotos:     req.IncludePhotos,
		CustomDescription: req.CustomDescription,
		ContactInfo:       req.ContactInfo,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"results": results})
}

// Results returns the persisted publishing audit trail for a property.
func (h *PublishingHandler) Results(c *fiber.Ctx) error {
	property, err := h.properties.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}

	records, err := h.publishing.Results(c.UserContext(), property.ID)
	if err != nil {
		return appError.NewCustomError(500, appError.ErrDatabaseQueryFailed.Code, appError.ErrDatabaseQueryFailed.Message, err.Error())
	}
	return c.JSON(fiber.Map{"results": records})
}
