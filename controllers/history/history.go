package history

import (
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	historyService "parcel-tracking/services/history"
	historyTypes "parcel-tracking/types/history"

	"github.com/gofiber/fiber/v2"
)

// HistoryController serves the read-only status and delivery history.
type HistoryController struct {
	base.Controller
	Service *historyService.Service
}

func NewHistoryController(service *historyService.Service, asyncLogger *logger.AsyncLogger) *HistoryController {
	return &HistoryController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

func (hc *HistoryController) IndexStatus(c *fiber.Ctx) error {
	var filter historyTypes.StatusHistoryFilter
	var err error
	if filter.ParcelID, err = base.QueryUint(c, "parcel"); err != nil {
		return hc.SendError(c, err)
	}
	rows, err := hc.Service.ListStatusHistory(c.UserContext(), filter)
	if err != nil {
		return hc.SendError(c, err)
	}
	return hc.Respond(c, fiber.StatusOK, "Status history retrieved successfully", rows)
}

func (hc *HistoryController) ShowStatus(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return hc.SendError(c, err)
	}
	row, err := hc.Service.GetStatusHistory(c.UserContext(), id)
	if err != nil {
		return hc.SendError(c, err)
	}
	return hc.Respond(c, fiber.StatusOK, "Status history retrieved successfully", row)
}

// IndexDelivery lists the caller's own sender/receiver links.
func (hc *HistoryController) IndexDelivery(c *fiber.Ctx) error {
	filter := historyTypes.DeliveryHistoryFilter{
		Role:     c.Query("role"),
		Ordering: c.Query("ordering"),
	}
	rows, err := hc.Service.ListDeliveryHistory(c.UserContext(), middleware.CurrentUser(c), filter)
	if err != nil {
		return hc.SendError(c, err)
	}
	return hc.Respond(c, fiber.StatusOK, "Delivery history retrieved successfully", rows)
}

func (hc *HistoryController) ShowDelivery(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return hc.SendError(c, err)
	}
	row, err := hc.Service.GetDeliveryHistory(c.UserContext(), id, middleware.CurrentUser(c))
	if err != nil {
		return hc.SendError(c, err)
	}
	return hc.Respond(c, fiber.StatusOK, "Delivery history retrieved successfully", row)
}
