package handlers

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/adapters/validation"
	"imobcrm/internal/domain"
	"imobcrm/internal/ports"
	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
)

type PropertyHandler struct {
	properties *services.PropertyService
	schemas    ports.SchemaValidator
}

func NewPropertyHandler(properties *services.PropertyService, schemas ports.SchemaValidator) *PropertyHandler {
	return &PropertyHandler{properties: properties, schemas: schemas}
}

func (h *PropertyHandler) List(c *fiber.Ctx) error {
	properties, err := h.properties.List(c.UserContext(), actor(c), c.Query("owner_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"properties": properties})
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	property, err := h.properties.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(property)
}

// bindProperty validates the raw payload against the property JSON schema
// before binding it, so malformed payloads are rejected with the schema's
// own message.
func (h *PropertyHandler) bindProperty(c *fiber.Ctx) (*domain.Property, error) {
	payload := c.Body()
	if len(payload) == 0 {
		return nil, appError.ErrInvalidRequestBody
	}

	if err := h.schemas.Validate(c.UserContext(), validation.DocumentProperty, payload); err != nil {
		return nil, appError.NewCustomError(400, appError.ErrPropertySchema.Code, appError.ErrPropertySchema.Message, err.Error())
	}

	var property domain.Property
	if err := json.Unmarshal(payload, &property); err != nil {
		return nil, appError.ErrInvalidRequestBody
	}
	return &property, nil
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	property, err := h.bindProperty(c)
	if err != nil {
		return err
	}

	created, err := h.properties.Create(c.UserContext(), actor(c), property)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *PropertyHandler) Update(c *fiber.Ctx) error {
	property, err := h.bindProperty(c)
	if err != nil {
		return err
	}

	updated, err := h.properties.Update(c.UserContext(), actor(c), c.Params("id"), property)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

type updatePropertyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved sold"`
}

func (h *PropertyHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updatePropertyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	property, err := h.properties.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), domain.PropertyStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(property)
}

func (h *PropertyHandler) Delete(c *fiber.Ctx) error {
	if err := h.properties.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PropertyHandler) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return appError.NewCustomError(400, appError.ErrMissingRequiredField.Code, "photo file is required", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return appError.ErrInvalidRequestBody
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return appError.ErrInvalidRequestBody
	}

	property, err := h.properties.AddPhoto(
		c.UserContext(),
		actor(c),
		c.Params("id"),
		fileHeader.Filename,
		data,
		fileHeader.Header.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(property)
}
