package handlers

import (
	"errors"
	"log"

	"learnhub/internal/grading"
	"learnhub/internal/models"
	"learnhub/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Total number of quiz submissions",
		},
		[]string{"status"},
	)

	quizGrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_grades_total",
			Help: "Grades awarded across all submissions",
		},
		[]string{"grade"},
	)
)

type QuizHandler struct {
	quizService *service.QuizService
	middleware  *AuthMiddleware
}

func NewQuizHandler(quizService *service.QuizService, middleware *AuthMiddleware) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		middleware:  middleware,
	}
}

func (h *QuizHandler) RegisterRoutes(app *fiber.App) {
	group := app.Group("/api/quizzes", h.middleware.RequireAuth)

	group.Get("/", h.ListQuizzes)
	group.Get("/:quizId", h.GetQuiz)
	group.Get("/:quizId/questions", h.QuizQuestions)

	student := RequireRoles(models.RoleStudent)
	group.Post("/:quizId/submit", h.Submit, student)
	group.Get("/:quizId/attempts", h.QuizAttempts, student)

	staff := RequireRoles(models.RoleTeacher, models.RoleAdmin)
	group.Post("/", h.CreateQuiz, staff)
	group.Delete("/:quizId", h.DeleteQuiz, staff)

	questionGroup := app.Group("/api/questions", h.middleware.RequireAuth, staff)
	questionGroup.Get("/", h.ListQuestions)
	questionGroup.Post("/", h.CreateQuestion)
	questionGroup.Delete("/:questionId", h.DeleteQuestion)

	attemptGroup := app.Group("/api/attempts", h.middleware.RequireAuth, student)
	attemptGroup.Get("/", h.MyAttempts)
	attemptGroup.Get("/performance", h.MyPerformance)
}

func (h *QuizHandler) ListQuizzes(c fiber.Ctx) error {
	quizzes, err := h.quizService.ListQuizzes(c.Context(), c.Query("course_id"), c.Query("class_id"))
	if err != nil {
		log.Printf("error listing quizzes: %s", err)
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": quizzes})
}

func (h *QuizHandler) GetQuiz(c fiber.Ctx) error {
	quiz, err := h.quizService.GetQuiz(c.Context(), c.Params("quizId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Quiz not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": quiz})
}

// QuizQuestions returns the question set for taking the quiz. Correct
// options are withheld by the question model's encoding.
func (h *QuizHandler) QuizQuestions(c fiber.Ctx) error {
	questions, err := h.quizService.QuizQuestions(c.Context(), c.Params("quizId"))
	if err != nil {
		return notFoundOrServiceError(c, err, "Quiz not found")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": questions})
}

func (h *QuizHandler) CreateQuiz(c fiber.Ctx) error {
	var req service.CreateQuizInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	createdBy, _ := c.Locals(LocalUserID).(string)
	quiz, err := h.quizService.CreateQuiz(c.Context(), createdBy, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz created successfully",
		"data":    quiz,
	})
}

func (h *QuizHandler) DeleteQuiz(c fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("quizId")); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

type submitRequest struct {
	Answers []grading.SubmittedAnswer `json:"answers" validate:"required,dive"`
}

func (h *QuizHandler) Submit(c fiber.Ctx) error {
	var req submitRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		quizSubmissions.WithLabelValues("invalid").Inc()
		return err
	}

	studentID, _ := c.Locals(LocalUserID).(string)
	result, attempt, err := h.quizService.Submit(c.Context(), studentID, c.Params("quizId"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, grading.ErrInvalidSubmission):
			quizSubmissions.WithLabelValues("rejected").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNotFound):
			quizSubmissions.WithLabelValues("rejected").Inc()
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quiz not found",
			})
		default:
			quizSubmissions.WithLabelValues("error").Inc()
			log.Printf("error grading submission: %s", err)
			return serviceError(c)
		}
	}

	quizSubmissions.WithLabelValues("graded").Inc()
	quizGrades.WithLabelValues(result.Grade).Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Quiz graded successfully",
		"data": fiber.Map{
			"result":  result,
			"attempt": attempt,
		},
	})
}

func (h *QuizHandler) QuizAttempts(c fiber.Ctx) error {
	studentID, _ := c.Locals(LocalUserID).(string)
	attempts, err := h.quizService.AttemptsForQuiz(c.Context(), studentID, c.Params("quizId"))
	if err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": attempts})
}

func (h *QuizHandler) MyAttempts(c fiber.Ctx) error {
	studentID, _ := c.Locals(LocalUserID).(string)
	attempts, err := h.quizService.AttemptsByStudent(c.Context(), studentID)
	if err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": attempts})
}

func (h *QuizHandler) MyPerformance(c fiber.Ctx) error {
	studentID, _ := c.Locals(LocalUserID).(string)
	performance, err := h.quizService.Performance(c.Context(), studentID, c.Query("course_id"))
	if err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": performance})
}

func (h *QuizHandler) ListQuestions(c fiber.Ctx) error {
	questions, err := h.quizService.ListQuestions(c.Context(), c.Query("course_id"))
	if err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": questions})
}

type createQuestionRequest struct {
	CourseID      string `json:"course_id" validate:"required"`
	QuestionText  string `json:"question_text" validate:"required"`
	QuestionPoint int    `json:"question_point" validate:"required,gt=0"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
}

func (h *QuizHandler) CreateQuestion(c fiber.Ctx) error {
	var req createQuestionRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	question := &models.QuizQuestion{
		CourseID:      req.CourseID,
		QuestionText:  req.QuestionText,
		QuestionPoint: req.QuestionPoint,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
	}
	if err := h.quizService.CreateQuestion(c.Context(), question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Question created successfully",
		"data":    question,
	})
}

func (h *QuizHandler) DeleteQuestion(c fiber.Ctx) error {
	if err := h.quizService.DeleteQuestion(c.Context(), c.Params("questionId")); err != nil {
		return serviceError(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
