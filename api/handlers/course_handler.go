package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/gofiber/fiber/v2"
)

const courseContextTimeout = 5 * time.Second

type pagedResponse struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

func listOptions(c *fiber.Ctx) canvas.ListOptions {
	return canvas.ListOptions{
		Cursor:  c.Query("cursor"),
		PerPage: c.QueryInt("per_page"),
	}
}

// ListCoursesHandler serves both the global listing and the per-account
// listing, selected by the account_id query parameter.
func ListCoursesHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListCoursesHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		opts := listOptions(c)

		var (
			courses []canvas.Course
			next    string
			err     error
		)

		if accountID := c.Query("account_id"); accountID != "" {
			courses, next, err = svc.ListAccountCourses(ctx, accountID, opts)
		} else {
			courses, next, err = svc.ListCourses(ctx, opts)
		}
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: courses, NextCursor: next})
	}
}

func GetCourseHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "GetCourseHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		course, err := svc.GetCourse(ctx, c.Params("id"))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(course)
	}
}

type createCourseRequest struct {
	AccountID  string `json:"account_id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code,omitempty"`
	StartAt    string `json:"start_at,omitempty"`
	EndAt      string `json:"end_at,omitempty"`
	License    string `json:"license,omitempty"`
}

func CreateCourseHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "CreateCourseHandler"))

	return func(c *fiber.Ctx) error {
		var req createCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if req.AccountID == "" || req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "account_id and name are required")
		}

		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		course, err := svc.CreateCourse(ctx, req.AccountID, canvas.CourseFields{
			Name:       req.Name,
			CourseCode: req.CourseCode,
			StartAt:    req.StartAt,
			EndAt:      req.EndAt,
			License:    req.License,
		})
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusCreated).JSON(course)
	}
}

type updateCourseRequest struct {
	Name       string `json:"name,omitempty"`
	CourseCode string `json:"course_code,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

func UpdateCourseHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "UpdateCourseHandler"))

	return func(c *fiber.Ctx) error {
		var req updateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		course, err := svc.UpdateCourse(ctx, c.Params("id"), canvas.CourseFields{
			Name:       req.Name,
			CourseCode: req.CourseCode,
			ImageURL:   req.ImageURL,
		})
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(course)
	}
}

func DeleteCourseHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "DeleteCourseHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		ack, err := svc.DeleteCourse(ctx, c.Params("id"))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(ack)
	}
}

func GetCourseSettingsHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "GetCourseSettingsHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		settings, err := svc.GetCourseSettings(ctx, c.Params("id"))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(settings)
	}
}

type updateSettingsRequest struct {
	AllowStudentDiscussionTopics *bool `json:"allow_student_discussion_topics,omitempty"`
	AllowStudentForumAttachments *bool `json:"allow_student_forum_attachments,omitempty"`
	HideFinalGrades              *bool `json:"hide_final_grades,omitempty"`
	RestrictStudentPastView      *bool `json:"restrict_student_past_view,omitempty"`
	RestrictStudentFutureView    *bool `json:"restrict_student_future_view,omitempty"`
}

func UpdateCourseSettingsHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "UpdateCourseSettingsHandler"))

	return func(c *fiber.Ctx) error {
		var req updateSettingsRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		ctx, cancel := context.WithTimeout(c.Context(), courseContextTimeout)
		defer cancel()

		settings, err := svc.UpdateCourseSettings(ctx, c.Params("id"), canvas.SettingsFields{
			AllowStudentDiscussionTopics: req.AllowStudentDiscussionTopics,
			AllowStudentForumAttachments: req.AllowStudentForumAttachments,
			HideFinalGrades:              req.HideFinalGrades,
			RestrictStudentPastView:      req.RestrictStudentPastView,
			RestrictStudentFutureView:    req.RestrictStudentFutureView,
		})
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(settings)
	}
}
