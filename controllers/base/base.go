package base

import (
	"strconv"

	"parcel-tracking/apperr"
	"parcel-tracking/logger"
	"parcel-tracking/types"
	"parcel-tracking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller carries the request logger shared by every resource controller.
type Controller struct {
	Logger *logger.AsyncLogger
}

// Helper function to log API requests and responses
func (b *Controller) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	b.Logger.Log(logEntry)
}

// SendResponseWithLog sends the response and queues it for the request log.
func (b *Controller) SendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	b.logAPIRequest(c)
	return result
}

// Respond wraps data in the standard envelope.
func (b *Controller) Respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return b.SendResponseWithLog(c, status, types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

// NoContent answers a successful delete.
func (b *Controller) NoContent(c *fiber.Ctx) error {
	result := c.SendStatus(fiber.StatusNoContent)
	b.logAPIRequest(c)
	return result
}

// SendError maps a service error onto its HTTP status. Internal errors are
// logged and reported without detail.
func (b *Controller) SendError(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		logger.Error(c.Method()+" "+c.OriginalURL()+" failed", err)
	}

	response := types.ApiResponse{
		Message: apperr.Message(err),
		Status:  status,
	}
	if field := apperr.FieldOf(err); field != "" {
		response.Errors = map[string]string{field: response.Message}
	}
	return b.SendResponseWithLog(c, status, response)
}

// ParseBody decodes the JSON body into req and runs its validate tags.
func (b *Controller) ParseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.InvalidArgument("", "Invalid request body")
	}
	return types.ValidateStruct(req)
}

// ParseID reads a positive integer route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("Not found.")
	}
	return uint(id), nil
}

// QueryUint reads an optional positive integer filter.
func QueryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperr.InvalidArgument(key, "Enter a number.")
	}
	id := uint(v)
	return &id, nil
}

// QueryBool reads an optional boolean filter. Accepts true/false and 1/0.
func QueryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.InvalidArgument(key, "Must be a valid boolean.")
	}
	return &v, nil
}
