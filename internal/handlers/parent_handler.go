package handlers

import (
	"errors"
	"log"

	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type ParentHandler struct {
	parentService *service.ParentService
	userService   *service.UserService
	middleware    *AuthMiddleware
}

func NewParentHandler(parentService *service.ParentService, userService *service.UserService, middleware *AuthMiddleware) *ParentHandler {
	return &ParentHandler{
		parentService: parentService,
		userService:   userService,
		middleware:    middleware,
	}
}

func (h *ParentHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/parents", h.middleware.RequireAuth, RequireRoles(models.RoleParent))

	group.Get("/students/search", h.SearchStudents)
	group.Post("/children", h.LinkChild)
	group.Delete("/children/:studentId", h.UnlinkChild)
	group.Get("/children", h.Children)
	group.Get("/children/:studentId/progress", h.ChildProgress)
}

func (h *ParentHandler) SearchStudents(c fiber.Ctx) error {
	students, err := h.parentService.SearchStudents(c.Context(), c.Query("q"))
	if err != nil {
		log.Printf("error searching students: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": students,
	})
}

func (h *ParentHandler) LinkChild(c fiber.Ctx) error {
	var req struct {
		StudentID    string `json:"student_id" validate:"required"`
		Relationship string `json:"relationship" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	parentID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	parent, err := h.userService.GetByID(c.Context(), parentID)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	studentID, err := bson.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student id",
		})
	}

	link, err := h.parentService.LinkChild(c.Context(), parent, studentID, req.Relationship)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Child linked successfully",
		"data":    link,
	})
}

func (h *ParentHandler) UnlinkChild(c fiber.Ctx) error {
	parentID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	studentID, err := bson.ObjectIDFromHex(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student id",
		})
	}

	if err := h.parentService.UnlinkChild(c.Context(), parentID, studentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No active link with this student",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Child unlinked",
	})
}

func (h *ParentHandler) Children(c fiber.Ctx) error {
	parentID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	children, err := h.parentService.Children(c.Context(), parentID)
	if err != nil {
		log.Printf("error listing children: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": children,
	})
}

func (h *ParentHandler) ChildProgress(c fiber.Ctx) error {
	parentID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}
	studentID, err := bson.ObjectIDFromHex(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student id",
		})
	}

	progress, err := h.parentService.Progress(c.Context(), parentID, studentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No active link with this student",
			})
		}
		log.Printf("error loading child progress: %s", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Service Error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": progress,
	})
}
