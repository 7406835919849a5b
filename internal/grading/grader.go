package grading

import (
	"errors"
	"fmt"
	"math"

	"learnhub/internal/models"
)

// ErrInvalidSubmission rejects a submission that references a question
// outside the quiz, or the same question twice. The whole submission is
// refused; no partial score is recorded.
var ErrInvalidSubmission = errors.New("invalid submission")

type gradeBand struct {
	min   float64
	grade string
}

// Evaluated highest-first, first match wins.
var gradeBands = []gradeBand{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// LetterGrade maps a percentage to its letter grade.
func LetterGrade(percentage float64) string {
	for _, band := range gradeBands {
		if percentage >= band.min {
			return band.grade
		}
	}
	return "F"
}

// Percentage computes score/total*100 rounded to two decimals, 0 when the
// quiz carries no points.
func Percentage(score, totalPoints int) float64 {
	if totalPoints <= 0 {
		return 0
	}
	p := float64(score) / float64(totalPoints) * 100
	return math.Round(p*100) / 100
}

// Grade scores a submission against the quiz's full question set. Every
// submitted question id must belong to the quiz and appear at most once;
// any violation fails with ErrInvalidSubmission before scoring starts.
func Grade(questions []models.QuizQuestion, answers []SubmittedAnswer) (*Result, error) {
	byID := make(map[string]*models.QuizQuestion, len(questions))
	totalPoints := 0
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		totalPoints += questions[i].QuestionPoint
	}

	seen := make(map[string]bool, len(answers))
	for _, ans := range answers {
		if _, ok := byID[ans.QuestionID]; !ok {
			return nil, fmt.Errorf("%w: question %s is not part of the quiz", ErrInvalidSubmission, ans.QuestionID)
		}
		if seen[ans.QuestionID] {
			return nil, fmt.Errorf("%w: question %s answered more than once", ErrInvalidSubmission, ans.QuestionID)
		}
		seen[ans.QuestionID] = true
	}

	score := 0
	results := make([]QuestionResult, 0, len(answers))
	for _, ans := range answers {
		q := byID[ans.QuestionID]
		correct := ans.SelectedOption == q.CorrectOption
		earned := 0
		if correct {
			earned = q.QuestionPoint
		}
		score += earned
		results = append(results, QuestionResult{
			QuestionID:     q.ID,
			QuestionText:   q.QuestionText,
			SelectedOption: ans.SelectedOption,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      correct,
			PointsEarned:   earned,
			PointsPossible: q.QuestionPoint,
		})
	}

	percentage := Percentage(score, totalPoints)
	return &Result{
		Score:       score,
		TotalPoints: totalPoints,
		Percentage:  percentage,
		Grade:       LetterGrade(percentage),
		Questions:   results,
	}, nil
}

// Passed reports whether an attempt's percentage meets the quiz's passing
// score. Pure, no side effects.
func Passed(attempt *models.StudentQuizAttempt, quiz *models.Quiz) bool {
	return attempt.Percentage >= quiz.PassingScore
}

// BuildPerformance summarizes a student's attempts across every quiz given,
// attempted or not. Best attempt is the max score; on ties the earlier
// encountered attempt wins. Latest is the max attempt timestamp.
func BuildPerformance(quizzes []models.Quiz, attempts []models.StudentQuizAttempt) []QuizPerformance {
	byQuiz := make(map[string][]models.StudentQuizAttempt)
	for _, a := range attempts {
		byQuiz[a.QuizID] = append(byQuiz[a.QuizID], a)
	}

	out := make([]QuizPerformance, 0, len(quizzes))
	for _, quiz := range quizzes {
		perf := QuizPerformance{Quiz: quiz, Attempts: byQuiz[quiz.ID]}
		perf.TotalAttempts = len(perf.Attempts)

		for i := range perf.Attempts {
			a := &perf.Attempts[i]
			if perf.BestAttempt == nil || a.Score > perf.BestAttempt.Score {
				perf.BestAttempt = a
			}
			if perf.LatestAttempt == nil || a.AttemptedAt.After(perf.LatestAttempt.AttemptedAt) {
				perf.LatestAttempt = a
			}
		}
		if perf.BestAttempt != nil {
			perf.HasPassed = perf.BestAttempt.Percentage >= quiz.PassingScore
		}
		out = append(out, perf)
	}
	return out
}
