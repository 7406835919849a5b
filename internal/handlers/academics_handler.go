package handlers

import (
	"errors"
	"log"

	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type AcademicsHandler struct {
	academicsService *service.AcademicsService
	middleware       *AuthMiddleware
}

func NewAcademicsHandler(academicsService *service.AcademicsService, middleware *AuthMiddleware) *AcademicsHandler {
	return &AcademicsHandler{
		academicsService: academicsService,
		middleware:       middleware,
	}
}

func (h *AcademicsHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/academics", h.middleware.RequireAuth)

	// Catalog reads are open to every authenticated role.
	group.Get("/courses", h.ListCourses)
	group.Get("/courses/:courseId", h.GetCourse)
	group.Get("/courses/:courseId/units", h.CourseUnits)
	group.Get("/courses/:courseId/documents", h.CourseDocuments)
	group.Get("/classes", h.ListClasses)
	group.Get("/classes/:classId", h.GetClass)
	group.Get("/skills", h.ListSkills)
	group.Get("/lessons/:lessonId", h.GetLesson)

	// Catalog writes are for staff.
	staff := RequireRoles(models.RoleTeacher, models.RoleAdmin)
	group.Post("/courses", h.CreateCourse, staff)
	group.Put("/courses/:courseId", h.UpdateCourse, staff)
	group.Delete("/courses/:courseId", h.DeleteCourse, staff)
	group.Post("/courses/:courseId/documents", h.AddCourseDocument, staff)
	group.Post("/classes", h.CreateClass, staff)
	group.Put("/classes/:classId", h.UpdateClass, staff)
	group.Delete("/classes/:classId", h.DeleteClass, staff)
	group.Post("/skills", h.CreateSkill, staff)
	group.Post("/lessons", h.CreateLesson, staff)
	group.Post("/units", h.CreateUnit, staff)
}

func (h *AcademicsHandler) ListCourses(c fiber.Ctx) error {
	courses, err := h.academicsService.ListCourses(c.Context())
	if err != nil {
		log.Printf("error listing courses: %s", err)
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": courses})
}

func (h *AcademicsHandler) GetCourse(c fiber.Ctx) error {
	course, err := h.academicsService.GetCourse(c.Context(), c.Params("courseId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Course not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": course})
}

func (h *AcademicsHandler) CreateCourse(c fiber.Ctx) error {
	var req service.CreateCourseInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	course, err := h.academicsService.CreateCourse(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Course created successfully",
		"data":    course,
	})
}

func (h *AcademicsHandler) UpdateCourse(c fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		UnitIDs     []string `json:"unit_ids"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.UnitIDs != nil {
		fields["unit_ids"] = req.UnitIDs
	}

	course, err := h.academicsService.UpdateCourse(c.Context(), c.Params("courseId"), fields)
	if err != nil {
		return notFoundOrServiceError(c, err, "Course not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Course updated successfully",
		"data":    course,
	})
}

func (h *AcademicsHandler) DeleteCourse(c fiber.Ctx) error {
	if err := h.academicsService.DeleteCourse(c.Context(), c.Params("courseId")); err != nil {
		return notFoundOrServiceError(c, err, "Course not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AcademicsHandler) CourseUnits(c fiber.Ctx) error {
	units, err := h.academicsService.CourseUnits(c.Context(), c.Params("courseId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Course not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": units})
}

func (h *AcademicsHandler) CourseDocuments(c fiber.Ctx) error {
	docs, err := h.academicsService.CourseDocuments(c.Context(), c.Params("courseId"))
	if err != nil {
		log.Printf("error listing course documents: %s", err)
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": docs})
}

func (h *AcademicsHandler) AddCourseDocument(c fiber.Ctx) error {
	var req struct {
		FileName   string `json:"file_name" validate:"required"`
		StorageKey string `json:"storage_key" validate:"required"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	doc := &models.CourseDocument{
		CourseID:   c.Params("courseId"),
		FileName:   req.FileName,
		StorageKey: req.StorageKey,
		UploadedBy: c.Locals(LocalUserID).(string),
	}
	if err := h.academicsService.AddCourseDocument(c.Context(), doc); err != nil {
		return notFoundOrServiceError(c, err, "Course not found")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Document attached successfully",
		"data":    doc,
	})
}

func (h *AcademicsHandler) ListClasses(c fiber.Ctx) error {
	classes, err := h.academicsService.ListClasses(c.Context())
	if err != nil {
		log.Printf("error listing classes: %s", err)
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": classes})
}

func (h *AcademicsHandler) GetClass(c fiber.Ctx) error {
	class, err := h.academicsService.GetClass(c.Context(), c.Params("classId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Class not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": class})
}

func (h *AcademicsHandler) CreateClass(c fiber.Ctx) error {
	var req service.CreateClassInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	class, err := h.academicsService.CreateClass(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Class created successfully",
		"data":    class,
	})
}

func (h *AcademicsHandler) UpdateClass(c fiber.Ctx) error {
	var req struct {
		Name               string   `json:"name"`
		LearningObjectives string   `json:"learning_objectives"`
		CourseIDs          []string `json:"course_ids"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.LearningObjectives != "" {
		fields["learning_objectives"] = req.LearningObjectives
	}
	if req.CourseIDs != nil {
		fields["course_ids"] = req.CourseIDs
	}

	class, err := h.academicsService.UpdateClass(c.Context(), c.Params("classId"), fields)
	if err != nil {
		return notFoundOrServiceError(c, err, "Class not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Class updated successfully",
		"data":    class,
	})
}

func (h *AcademicsHandler) DeleteClass(c fiber.Ctx) error {
	if err := h.academicsService.DeleteClass(c.Context(), c.Params("classId")); err != nil {
		return notFoundOrServiceError(c, err, "Class not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (h *AcademicsHandler) ListSkills(c fiber.Ctx) error {
	skills, err := h.academicsService.ListSkills(c.Context())
	if err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": skills})
}

func (h *AcademicsHandler) CreateSkill(c fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	skill := &models.Skill{Name: req.Name, Description: req.Description}
	if err := h.academicsService.CreateSkill(c.Context(), skill); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": skill})
}

func (h *AcademicsHandler) GetLesson(c fiber.Ctx) error {
	lesson, err := h.academicsService.GetLesson(c.Context(), c.Params("lessonId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Lesson not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": lesson})
}

func (h *AcademicsHandler) CreateLesson(c fiber.Ctx) error {
	var req struct {
		Title           string   `json:"title" validate:"required"`
		Description     string   `json:"description"`
		SkillIDs        []string `json:"skill_ids"`
		DurationMinutes int      `json:"duration_minutes" validate:"gte=0"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	lesson := &models.Lesson{
		Title:           req.Title,
		Description:     req.Description,
		SkillIDs:        req.SkillIDs,
		DurationMinutes: req.DurationMinutes,
	}
	if err := h.academicsService.CreateLesson(c.Context(), lesson); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": lesson})
}

func (h *AcademicsHandler) CreateUnit(c fiber.Ctx) error {
	var req struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description"`
		LessonIDs   []string `json:"lesson_ids"`
	}
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	unit := &models.Unit{
		Name:        req.Name,
		Description: req.Description,
		LessonIDs:   req.LessonIDs,
	}
	if err := h.academicsService.CreateUnit(c.Context(), unit); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": unit})
}

func serviceError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Service Error",
	})
}

func notFoundOrServiceError(c fiber.Ctx, err error, msg string) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
	}
	log.Printf("service error: %s", err)
	return serviceError(c)
}
