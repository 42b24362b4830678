package handlers

import (
	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/domain"
	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
)

type LeadHandler struct {
	leads *services.LeadService
}

func NewLeadHandler(leads *services.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	leads, err := h.leads.List(c.UserContext(), actor(c), c.Query("agent_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"leads": leads})
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
	lead, err := h.leads.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(lead)
}

type createLeadRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required"`
	Source string `json:"source" validate:"required,oneof=manual whatsapp referral website other"`
	Status string `json:"status" validate:"required,oneof=cold warm hot"`
	Notes  string `json:"notes,omitempty"`
}

func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var req createLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	lead, err := h.leads.Create(c.UserContext(), actor(c), &domain.Lead{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Source: domain.LeadSource(req.Source),
		Status: domain.LeadStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

type updateLeadRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	Source *string `json:"source,omitempty" validate:"omitempty,oneof=manual whatsapp referral website other"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=cold warm hot"`
	Notes  *string `json:"notes,omitempty"`
}

func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var req updateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	update := services.LeadUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}
	if req.Source != nil {
		source := domain.LeadSource(*req.Source)
		update.Source = &source
	}
	if req.Status != nil {
		status := domain.LeadStatus(*req.Status)
		update.Status = &status
	}

	lead, err := h.leads.Update(c.UserContext(), actor(c), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(lead)
}

type updateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=cold warm hot"`
}

func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	lead, err := h.leads.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), domain.LeadStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(lead)
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.leads.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
