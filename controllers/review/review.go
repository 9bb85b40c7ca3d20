package review

import (
	"parcel-tracking/controllers/base"
	"parcel-tracking/logger"
	"parcel-tracking/middleware"
	reviewService "parcel-tracking/services/review"
	reviewTypes "parcel-tracking/types/review"

	"github.com/gofiber/fiber/v2"
)

// ReviewController handles delivery review HTTP requests
type ReviewController struct {
	base.Controller
	Service *reviewService.Service
}

func NewReviewController(service *reviewService.Service, asyncLogger *logger.AsyncLogger) *ReviewController {
	return &ReviewController{
		Controller: base.Controller{Logger: asyncLogger},
		Service:    service,
	}
}

func (rc *ReviewController) Index(c *fiber.Ctx) error {
	filter := reviewTypes.ListFilter{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
	}
	var err error
	if filter.ParcelID, err = base.QueryUint(c, "parcel"); err != nil {
		return rc.SendError(c, err)
	}
	if filter.ReviewerID, err = base.QueryUint(c, "reviewer"); err != nil {
		return rc.SendError(c, err)
	}

	reviews, err := rc.Service.List(c.UserContext(), filter)
	if err != nil {
		return rc.SendError(c, err)
	}
	return rc.Respond(c, fiber.StatusOK, "Reviews retrieved successfully", reviews)
}

func (rc *ReviewController) Show(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return rc.SendError(c, err)
	}
	r, err := rc.Service.Get(c.UserContext(), id)
	if err != nil {
		return rc.SendError(c, err)
	}
	return rc.Respond(c, fiber.StatusOK, "Review retrieved successfully", r)
}

// Store records a review written by the caller.
func (rc *ReviewController) Store(c *fiber.Ctx) error {
	var request reviewTypes.ReviewRequest
	if err := rc.ParseBody(c, &request); err != nil {
		return rc.SendError(c, err)
	}
	r, err := rc.Service.Create(c.UserContext(), &request, middleware.CurrentUser(c))
	if err != nil {
		return rc.SendError(c, err)
	}
	return rc.Respond(c, fiber.StatusCreated, "Review created successfully", r)
}

func (rc *ReviewController) Update(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return rc.SendError(c, err)
	}
	var request reviewTypes.ReviewRequest
	if err := rc.ParseBody(c, &request); err != nil {
		return rc.SendError(c, err)
	}
	r, err := rc.Service.Update(c.UserContext(), id, &request, c.Method() == fiber.MethodPut)
	if err != nil {
		return rc.SendError(c, err)
	}
	return rc.Respond(c, fiber.StatusOK, "Review updated successfully", r)
}

func (rc *ReviewController) Destroy(c *fiber.Ctx) error {
	id, err := base.ParseID(c, "id")
	if err != nil {
		return rc.SendError(c, err)
	}
	if err := rc.Service.Delete(c.UserContext(), id); err != nil {
		return rc.SendError(c, err)
	}
	return rc.NoContent(c)
}
