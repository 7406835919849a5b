package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"learnhub/internal/events"
	"learnhub/internal/grading"
	"learnhub/internal/models"
	"learnhub/internal/repository"
)

type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	attemptRepo  *repository.AttemptRepository
	publisher    events.Publisher
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	publisher events.Publisher,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		publisher:    publisher,
	}
}

type CreateQuizInput struct {
	Name         string   `json:"name" validate:"required"`
	CourseID     string   `json:"course_id" validate:"required"`
	ClassID      string   `json:"class_id"`
	QuestionIDs  []string `json:"question_ids" validate:"required,min=1"`
	PassingScore float64  `json:"passing_score" validate:"gte=0,lte=100"`
}

// CreateQuiz validates that every referenced question exists before the quiz
// is persisted.
func (s *QuizService) CreateQuiz(ctx context.Context, createdBy string, in CreateQuizInput) (*models.Quiz, error) {
	questions, err := s.questionRepo.FindByIDs(ctx, in.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) != len(in.QuestionIDs) {
		return nil, fmt.Errorf("quiz references %d questions but only %d exist", len(in.QuestionIDs), len(questions))
	}

	quiz := &models.Quiz{
		Name:         in.Name,
		CourseID:     in.CourseID,
		ClassID:      in.ClassID,
		QuestionIDs:  in.QuestionIDs,
		PassingScore: in.PassingScore,
		CreatedBy:    createdBy,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, courseID, classID string) ([]models.Quiz, error) {
	switch {
	case courseID != "":
		return s.quizRepo.FindByCourse(ctx, courseID)
	case classID != "":
		return s.quizRepo.FindByClass(ctx, classID)
	default:
		return s.quizRepo.FindAll(ctx)
	}
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.quizRepo.Delete(ctx, id)
}

// QuizQuestions resolves the quiz's question set in order-independent form.
// The correct options travel with the result; callers serving students rely
// on the model's json tag to withhold them.
func (s *QuizService) QuizQuestions(ctx context.Context, quizID string) ([]models.QuizQuestion, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return s.questionRepo.FindByIDs(ctx, quiz.QuestionIDs)
}

func (s *QuizService) CreateQuestion(ctx context.Context, question *models.QuizQuestion) error {
	if !models.IsValidOption(question.CorrectOption) {
		return fmt.Errorf("correct option must be one of A-D, got %q", question.CorrectOption)
	}
	if question.QuestionPoint <= 0 {
		return fmt.Errorf("question point must be positive")
	}
	return s.questionRepo.Create(ctx, question)
}

func (s *QuizService) ListQuestions(ctx context.Context, courseID string) ([]models.QuizQuestion, error) {
	if courseID != "" {
		return s.questionRepo.FindByCourse(ctx, courseID)
	}
	return s.questionRepo.FindAll(ctx)
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id string) error {
	return s.questionRepo.Delete(ctx, id)
}

// Submit grades the student's answers against the quiz's full question set
// and appends the attempt with every derived field already computed. The
// attempt is a single insert; a graded record is never written partially.
func (s *QuizService) Submit(ctx context.Context, studentID, quizID string, answers []grading.SubmittedAnswer) (*grading.Result, *models.StudentQuizAttempt, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questionRepo.FindByIDs(ctx, quiz.QuestionIDs)
	if err != nil {
		return nil, nil, err
	}

	result, err := grading.Grade(questions, answers)
	if err != nil {
		return nil, nil, err
	}

	attempt := &models.StudentQuizAttempt{
		StudentID:   studentID,
		QuizID:      quizID,
		Score:       result.Score,
		TotalPoints: result.TotalPoints,
		Percentage:  result.Percentage,
		Grade:       result.Grade,
		AttemptedAt: time.Now(),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, nil, err
	}

	if err := s.publisher.PublishQuizSubmitted(ctx, studentID, quizID, result.Percentage, result.Grade); err != nil {
		log.Printf("error publishing quiz submission for student %s: %s", studentID, err)
	}
	return result, attempt, nil
}

func (s *QuizService) AttemptsByStudent(ctx context.Context, studentID string) ([]models.StudentQuizAttempt, error) {
	return s.attemptRepo.FindByStudent(ctx, studentID)
}

func (s *QuizService) AttemptsForQuiz(ctx context.Context, studentID, quizID string) ([]models.StudentQuizAttempt, error) {
	return s.attemptRepo.FindByStudentAndQuiz(ctx, studentID, quizID)
}

// Performance summarizes the student against every quiz of the course (or
// all quizzes when courseID is empty), including quizzes never attempted.
func (s *QuizService) Performance(ctx context.Context, studentID, courseID string) ([]grading.QuizPerformance, error) {
	var (
		quizzes []models.Quiz
		err     error
	)
	if courseID != "" {
		quizzes, err = s.quizRepo.FindByCourse(ctx, courseID)
	} else {
		quizzes, err = s.quizRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return grading.BuildPerformance(quizzes, attempts), nil
}
