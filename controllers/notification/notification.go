package notification

import (
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	notificationService "parcel-tracking/services/notification"
	notificationTypes "parcel-tracking/types/notification"

	"github.com/gofiber/fiber/v2"
)

// NotificationController serves the caller's own notifications.
type NotificationController struct {
	base.Controller
	Service *notificationService.Service
}

func NewNotificationController(service *notificationService.Service, asyncLogger *logger.AsyncLogger) *NotificationController {
	return &NotificationController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

func (nc *NotificationController) Index(c *fiber.Ctx) error {
	filter := notificationTypes.ListFilter{Ordering: c.Query("ordering")}
	var err error
	if filter.IsRead, err = base.QueryBool(c, "is_read"); err != nil {
		return nc.SendError(c, err)
	}
	rows, err := nc.Service.List(c.UserContext(), middleware.CurrentUser(c), filter)
	if err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusOK, "Notifications retrieved successfully", rows)
}

func (nc *NotificationController) Show(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return nc.SendError(c, err)
	}
	n, err := nc.Service.Get(c.UserContext(), id, middleware.CurrentUser(c))
	if err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusOK, "Notification retrieved successfully", n)
}

func (nc *NotificationController) Store(c *fiber.Ctx) error {
	var request notificationTypes.NotificationRequest
	if err := nc.ParseBody(c, &request); err != nil {
		return nc.SendError(c, err)
	}
	n, err := nc.Service.Create(c.UserContext(), &request, middleware.CurrentUser(c))
	if err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusCreated, "Notification created successfully", n)
}

func (nc *NotificationController) Update(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return nc.SendError(c, err)
	}
	var request notificationTypes.NotificationRequest
	if err := nc.ParseBody(c, &request); err != nil {
		return nc.SendError(c, err)
	}
	n, err := nc.Service.Update(c.UserContext(), id, &request, middleware.CurrentUser(c))
	if err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusOK, "Notification updated successfully", n)
}

func (nc *NotificationController) Destroy(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return nc.SendError(c, err)
	}
	if err := nc.Service.Delete(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
		return nc.SendError(c, err)
	}
	return nc.NoContent(c)
}

// MarkAsRead flags one of the caller's notifications as read.
func (nc *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return nc.SendError(c, err)
	}
	if err := nc.Service.MarkOneRead(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusOK, "Notification marked as read", fiber.Map{"status": "notification marked as read"})
}

// MarkAllAsRead flags every unread notification of the caller as read.
func (nc *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	updated, err := nc.Service.MarkAllRead(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return nc.SendError(c, err)
	}
	return nc.Respond(c, fiber.StatusOK, "All notifications marked as read", fiber.Map{
		"status":  "all notifications marked as read",
		"updated": updated,
	})
}
