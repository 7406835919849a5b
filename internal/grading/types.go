package grading

import "learnhub/internal/models"

// SubmittedAnswer is one (question, selected option) pair from a submission.
// Order is irrelevant.
type SubmittedAnswer struct {
	QuestionID     string `json:"question_id" validate:"required"`
	SelectedOption string `json:"selected_option" validate:"required,oneof=A B C D"`
}

// QuestionResult reports how a single question was scored.
type QuestionResult struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedOption string `json:"selected_option"`
	CorrectOption  string `json:"correct_option"`
	IsCorrect      bool   `json:"is_correct"`
	PointsEarned   int    `json:"points_earned"`
	PointsPossible int    `json:"points_possible"`
}

// Result carries the graded outcome of one submission before persistence.
type Result struct {
	Score       int              `json:"score"`
	TotalPoints int              `json:"total_points"`
	Percentage  float64          `json:"percentage"`
	Grade       string           `json:"grade"`
	Questions   []QuestionResult `json:"questions"`
}

// QuizPerformance summarizes a student's history against one quiz. Quizzes
// with no attempts report nil best/latest and HasPassed false.
type QuizPerformance struct {
	Quiz          models.Quiz                 `json:"quiz"`
	TotalAttempts int                         `json:"total_attempts"`
	BestAttempt   *models.StudentQuizAttempt  `json:"best_attempt"`
	LatestAttempt *models.StudentQuizAttempt  `json:"latest_attempt"`
	HasPassed     bool                        `json:"has_passed"`
	Attempts      []models.StudentQuizAttempt `json:"attempts"`
}
