package models

import "time"

// Option tags a quiz question can mark as correct.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

func IsValidOption(opt string) bool {
	switch opt {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// QuizQuestion is treated as immutable once attempts reference it; editing a
// question under a graded quiz would corrupt recorded scores.
type QuizQuestion struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	CourseID      string    `bson:"course_id" json:"course_id"`
	QuestionText  string    `bson:"question_text" json:"question_text"`
	QuestionPoint int       `bson:"question_point" json:"question_point"`
	OptionA       string    `bson:"option_a" json:"option_a"`
	OptionB       string    `bson:"option_b" json:"option_b"`
	OptionC       string    `bson:"option_c" json:"option_c"`
	OptionD       string    `bson:"option_d" json:"option_d"`
	CorrectOption string    `bson:"correct_option" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

type Quiz struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	CourseID     string    `bson:"course_id" json:"course_id"`
	ClassID      string    `bson:"class_id,omitempty" json:"class_id"`
	QuestionIDs  []string  `bson:"question_ids" json:"question_ids"`
	PassingScore float64   `bson:"passing_score" json:"passing_score"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// StudentQuizAttempt is an append-only record of one scored submission.
// Percentage and grade are derived from the score at creation time and
// stored redundantly; they are never recomputed or mutated afterwards.
type StudentQuizAttempt struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	StudentID   string    `bson:"student_id" json:"student_id"`
	QuizID      string    `bson:"quiz_id" json:"quiz_id"`
	Score       int       `bson:"score" json:"score"`
	TotalPoints int       `bson:"total_points" json:"total_points"`
	Percentage  float64   `bson:"percentage" json:"percentage"`
	Grade       string    `bson:"grade" json:"grade"`
	AttemptedAt time.Time `bson:"attempted_at" json:"attempted_at"`
}
