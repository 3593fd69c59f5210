package controller

import (
	"strings"

	"ai-minutes-be/internal/pkg/serverutils"
	"ai-minutes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMeetingController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reprocess(ctx *fiber.Ctx) error
}

type meetingController struct {
	meetingService service.IMeetingService
}

func NewMeetingController(meetingService service.IMeetingService) IMeetingController {
	return &meetingController{
		meetingService: meetingService,
	}
}

func (c *meetingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/meeting/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/transcript", c.GetTranscript)
	h.Post(":id/reprocess", c.Reprocess)
	h.Delete(":id", c.Delete)
}

func (c *meetingController) Upload(ctx *fiber.Ctx) error {
	topic := strings.TrimSpace(ctx.FormValue("topic"))
	if topic == "" {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Field 'topic' is required")
	}

	// Keywords arrive as one comma-separated form field.
	var keywords []string
	for _, kw := range strings.Split(ctx.FormValue("keywords"), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Field 'audio' must contain the recording")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	res, err := c.meetingService.Upload(ctx.Context(), topic, keywords, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload meeting", res))
}

func (c *meetingController) List(ctx *fiber.Ctx) error {
	res, err := c.meetingService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list meetings", res))
}

func (c *meetingController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Invalid meeting id")
	}

	res, err := c.meetingService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show meeting", res))
}

func (c *meetingController) GetTranscript(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Invalid meeting id")
	}

	res, err := c.meetingService.GetTranscript(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show transcript", res))
}

func (c *meetingController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Invalid meeting id")
	}

	if err := c.meetingService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete meeting", nil))
}

func (c *meetingController) Reprocess(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAPIError(fiber.StatusBadRequest, "Invalid meeting id")
	}

	res, err := c.meetingService.Reprocess(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue reprocess", res))
}
