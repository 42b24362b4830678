package error

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type CustomError struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	HTTPCode int    `json:"httpCode"`
	Details  any    `json:"details,omitempty"`
}

func (err *CustomError) Error() string {
	if err.Code != "" {
		return fmt.Sprintf("[%s] %s", err.Code, err.Message)
	}
	return err.Message
}

func (err *CustomError) Is(target error) bool {
	if targetErr, ok := target.(*CustomError); ok {
		return err.Code == targetErr.Code && err.Message == targetErr.Message && err.HTTPCode == targetErr.HTTPCode
	}
	return false
}

func NewCustomError(httpCode int, code, message string, details ...any) *CustomError {
	err := &CustomError{
		HTTPCode: httpCode,
		Code:     code,
		Message:  message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrProfileNotFound    = NewCustomError(404, "AUTH_2001", "Profile not found")
	ErrInvalidCredentials = NewCustomError(401, "AUTH_2002", "Invalid email or password")
	ErrDuplicateEmail     = NewCustomError(409, "AUTH_2003", "A profile with this email already exists")
	ErrMissingAuthToken   = NewCustomError(401, "AUTH_2004", "Authorization token is required")
	ErrInvalidAuthToken   = NewCustomError(401, "AUTH_2005", "Authorization token is invalid or expired")
	ErrForbidden          = NewCustomError(403, "AUTH_2006", "You do not have access to this resource")

	ErrLeadNotFound     = NewCustomError(404, "LEAD_2001", "Lead not found")
	ErrPropertyNotFound = NewCustomError(404, "PROP_2001", "Property not found")
	ErrPropertySchema   = NewCustomError(400, "PROP_2002", "Property payload failed schema validation")

	ErrUnknownPlatform        = NewCustomError(400, "PUB_2001", "Unknown publishing platform")
	ErrNoPlatformsRequested   = NewCustomError(400, "PUB_2002", "At least one platform must be selected")
	ErrPropertyNotPublishable = NewCustomError(422, "PUB_2003", "Property does not meet the publication rules")

	ErrDatabaseConnectionFailed  = NewCustomError(500, "DB_2001", "Failed to connect to database")
	ErrDatabaseQueryFailed       = NewCustomError(500, "DB_2002", "Database query failed")
	ErrDatabaseTransactionFailed = NewCustomError(500, "DB_2003", "Database transaction failed")

	ErrInvalidRequestBody   = NewCustomError(400, "REQUEST_2001", "Invalid request body")
	ErrMissingRequiredField = NewCustomError(400, "REQUEST_2002", "Missing required field")
	ErrInvalidFieldFormat   = NewCustomError(400, "REQUEST_2003", "Invalid field format")

	ErrHTTPBadRequest         = NewCustomError(400, "HTTP_400", "Bad Request")
	ErrHTTPUnauthorized       = NewCustomError(401, "HTTP_401", "Unauthorized")
	ErrHTTPForbidden          = NewCustomError(403, "HTTP_403", "Forbidden")
	ErrHTTPNotFound           = NewCustomError(404, "HTTP_404", "Not Found")
	ErrHTTPConflict           = NewCustomError(409, "HTTP_409", "Conflict")
	ErrHTTPInternalServer     = NewCustomError(500, "HTTP_500", "Internal Server Error")
	ErrHTTPServiceUnavailable = NewCustomError(503, "HTTP_503", "Service Unavailable")
	ErrHTTPGatewayTimeout     = NewCustomError(504, "HTTP_504", "Gateway Timeout")
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := c.Locals("request_id")

		if customErr, ok := err.(*CustomError); ok {
			response := fiber.Map{
				"error":   customErr.Message,
				"code":    customErr.Code,
				"details": customErr.Details,
			}
			if requestID != nil {
				response["request_id"] = requestID
			}
			return c.Status(customErr.HTTPCode).JSON(response)
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			response := fiber.Map{
				"error": fiberErr.Message,
			}
			if requestID != nil {
				response["request_id"] = requestID
			}
			return c.Status(fiberErr.Code).JSON(response)
		}

		response := fiber.Map{
			"error": "Internal server error",
		}
		if requestID != nil {
			response["request_id"] = requestID
		}
		return c.Status(fiber.StatusInternalServerError).JSON(response)
	}
}
