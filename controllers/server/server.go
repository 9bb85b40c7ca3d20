package server

import (
	"context"
	"time"

	"parcel-tracking/logger"
	"parcel-tracking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ServerController reports process and database health.
type ServerController struct {
	DB *gorm.DB
}

func NewServerController(db *gorm.DB) *ServerController {
	return &ServerController{DB: db}
}

// Health pings the database. It answers 503 when the pool cannot reach it.
func (sc *ServerController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	sqlDB, err := sc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.Error("Health check failed", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Message: "Database unavailable",
			Status:  fiber.StatusServiceUnavailable,
		})
	}
	return c.JSON(types.ApiResponse{
		Message: "ok",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"database": "up"},
	})
}
