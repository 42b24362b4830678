package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"imobcrm/internal/domain"
	"imobcrm/internal/services"
	appError "imobcrm/internal/shared/error"
	"imobcrm/internal/shared/middleware"
)

// validate is the shared struct validator for request DTOs.
var validate = validator.New()

// actor extracts the authenticated caller set by the auth middleware.
func actor(c *fiber.Ctx) services.Actor {
	profileID, _ := c.Locals(middleware.LocalsProfileID).(string)
	role, _ := c.Locals(middleware.LocalsRole).(string)
	return services.Actor{ProfileID: profileID, Role: domain.Role(role)}
}

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=agent agency"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	profile, token, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Phone, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, Profile: profile})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}
	if err := validate.Struct(req); err != nil {
		return appError.NewCustomError(400, appError.ErrInvalidFieldFormat.Code, appError.ErrInvalidFieldFormat.Message, err.Error())
	}

	profile, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authResponse{Token: token, Profile: profile})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.auth.GetProfile(c.UserContext(), actor(c).ProfileID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

type updateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return appError.ErrInvalidRequestBody
	}

	profile, err := h.auth.UpdateProfile(c.UserContext(), actor(c).ProfileID, req.Name, req.Phone, req.PhotoURL)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
