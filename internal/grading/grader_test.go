package grading

import (
	"errors"
	"testing"
	"time"

	"learnhub/internal/models"
)

func TestLetterGradeBands(t *testing.T) {
	testCases := []struct {
		percentage float64
		expected   string
	}{
		{100, "A+"},
		{97.0, "A+"},
		{96.999, "A"},
		{93, "A"},
		{92.5, "A-"},
		{90, "A-"},
		{89.99, "B+"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{66.67, "D"},
		{63, "D"},
		{60, "D-"},
		{59.999, "F"},
		{0, "F"},
	}

	for _, tc := range testCases {
		got := LetterGrade(tc.percentage)
		if got != tc.expected {
			t.Errorf("LetterGrade(%v) = %s, expected %s", tc.percentage, got, tc.expected)
		}
	}
}

func TestPercentageZeroTotalPoints(t *testing.T) {
	if got := Percentage(5, 0); got != 0 {
		t.Errorf("Percentage with zero total expected 0, got %v", got)
	}
	if got := Percentage(0, 0); got != 0 {
		t.Errorf("Percentage(0, 0) expected 0, got %v", got)
	}
}

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{ID: "q1", QuestionText: "What is 2 + 2?", QuestionPoint: 1, CorrectOption: "B"},
		{ID: "q2", QuestionText: "Solve for x: 2x + 5 = 13", QuestionPoint: 2, CorrectOption: "C"},
	}
}

func TestGradeAllCorrect(t *testing.T) {
	result, err := Grade(sampleQuestions(), []SubmittedAnswer{
		{QuestionID: "q1", SelectedOption: "B"},
		{QuestionID: "q2", SelectedOption: "C"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 3 {
		t.Errorf("expected score 3, got %d", result.Score)
	}
	if result.TotalPoints != 3 {
		t.Errorf("expected total points 3, got %d", result.TotalPoints)
	}
	if result.Percentage != 100.0 {
		t.Errorf("expected percentage 100.0, got %v", result.Percentage)
	}
	if result.Grade != "A+" {
		t.Errorf("expected grade A+, got %s", result.Grade)
	}
}

func TestGradePartiallyCorrect(t *testing.T) {
	result, err := Grade(sampleQuestions(), []SubmittedAnswer{
		{QuestionID: "q1", SelectedOption: "A"},
		{QuestionID: "q2", SelectedOption: "C"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 2 {
		t.Errorf("expected score 2, got %d", result.Score)
	}
	if result.Percentage != 66.67 {
		t.Errorf("expected percentage 66.67, got %v", result.Percentage)
	}
	if result.Grade != "D" {
		t.Errorf("expected grade D, got %s", result.Grade)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 question results, got %d", len(result.Questions))
	}
	if result.Questions[0].IsCorrect {
		t.Error("q1 answered A should not be correct")
	}
	if result.Questions[0].PointsEarned != 0 || result.Questions[0].PointsPossible != 1 {
		t.Errorf("q1 expected 0/1 points, got %d/%d",
			result.Questions[0].PointsEarned, result.Questions[0].PointsPossible)
	}
}

func TestGradeRejectsForeignQuestion(t *testing.T) {
	_, err := Grade(sampleQuestions(), []SubmittedAnswer{
		{QuestionID: "q1", SelectedOption: "B"},
		{QuestionID: "q99", SelectedOption: "A"},
	})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestGradeRejectsDuplicateAnswer(t *testing.T) {
	_, err := Grade(sampleQuestions(), []SubmittedAnswer{
		{QuestionID: "q1", SelectedOption: "B"},
		{QuestionID: "q1", SelectedOption: "C"},
	})
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	result, err := Grade(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPoints != 0 || result.Score != 0 {
		t.Errorf("empty quiz expected 0/0, got %d/%d", result.Score, result.TotalPoints)
	}
	if result.Percentage != 0 {
		t.Errorf("empty quiz expected percentage 0, got %v", result.Percentage)
	}
	if result.Grade != "F" {
		t.Errorf("empty quiz expected grade F, got %s", result.Grade)
	}
}

func TestPassed(t *testing.T) {
	quiz := &models.Quiz{PassingScore: 70}
	if !Passed(&models.StudentQuizAttempt{Percentage: 70}, quiz) {
		t.Error("percentage equal to passing score should pass")
	}
	if Passed(&models.StudentQuizAttempt{Percentage: 69.99}, quiz) {
		t.Error("percentage below passing score should not pass")
	}
}

func TestBuildPerformance(t *testing.T) {
	now := time.Now()
	quizzes := []models.Quiz{
		{ID: "quiz1", PassingScore: 70},
		{ID: "quiz2", PassingScore: 60},
	}
	attempts := []models.StudentQuizAttempt{
		{QuizID: "quiz1", Score: 5, Percentage: 50, AttemptedAt: now.Add(-2 * time.Hour)},
		{QuizID: "quiz1", Score: 8, Percentage: 80, AttemptedAt: now.Add(-1 * time.Hour)},
		{QuizID: "quiz1", Score: 8, Percentage: 80, AttemptedAt: now},
	}

	perfs := BuildPerformance(quizzes, attempts)
	if len(perfs) != 2 {
		t.Fatalf("expected 2 performance entries, got %d", len(perfs))
	}

	p1 := perfs[0]
	if p1.TotalAttempts != 3 {
		t.Errorf("quiz1 expected 3 attempts, got %d", p1.TotalAttempts)
	}
	if p1.BestAttempt == nil || p1.BestAttempt.Score != 8 {
		t.Fatal("quiz1 best attempt should have score 8")
	}
	// Ties broken by first encountered in order.
	if !p1.BestAttempt.AttemptedAt.Equal(now.Add(-1 * time.Hour)) {
		t.Error("quiz1 best attempt tie should keep the first max encountered")
	}
	if p1.LatestAttempt == nil || !p1.LatestAttempt.AttemptedAt.Equal(now) {
		t.Error("quiz1 latest attempt should be the most recent")
	}
	if !p1.HasPassed {
		t.Error("quiz1 should be passed: best percentage 80 >= passing 70")
	}

	p2 := perfs[1]
	if p2.TotalAttempts != 0 {
		t.Errorf("quiz2 expected 0 attempts, got %d", p2.TotalAttempts)
	}
	if p2.BestAttempt != nil || p2.LatestAttempt != nil {
		t.Error("quiz2 with no attempts should report nil best/latest")
	}
	if p2.HasPassed {
		t.Error("quiz2 with no attempts should not be passed")
	}
}
