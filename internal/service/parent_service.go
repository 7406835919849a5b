package service

import (
	"context"
	"fmt"

	"learnhub/internal/grading"
	"learnhub/internal/models"
	"learnhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParentService covers the parent-facing surface: finding students, managing
// links and reading a linked child's academic progress.
type ParentService struct {
	userRepo   *repository.UserRepository
	parentRepo *repository.ParentStudentRepository
	quizzes    *QuizService
}

func NewParentService(userRepo *repository.UserRepository, parentRepo *repository.ParentStudentRepository, quizzes *QuizService) *ParentService {
	return &ParentService{
		userRepo:   userRepo,
		parentRepo: parentRepo,
		quizzes:    quizzes,
	}
}

const studentSearchLimit = 20

func (s *ParentService) SearchStudents(ctx context.Context, query string) ([]*models.User, error) {
	return s.userRepo.SearchStudents(ctx, query, studentSearchLimit)
}

// LinkChild attaches a student to the parent. Both sides are checked for the
// right role; an inactive prior link is silently revived.
func (s *ParentService) LinkChild(ctx context.Context, parent *models.User, studentID bson.ObjectID, relationship string) (*models.ParentStudent, error) {
	if parent.Role != models.RoleParent {
		return nil, fmt.Errorf("only parents can link children")
	}
	if !models.IsValidRelationship(relationship) {
		return nil, fmt.Errorf("unknown relationship: %s", relationship)
	}

	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("user %s is not a student", studentID.Hex())
	}

	return s.parentRepo.Link(ctx, parent.ID, studentID, relationship)
}

func (s *ParentService) UnlinkChild(ctx context.Context, parentID, studentID bson.ObjectID) error {
	modified, err := s.parentRepo.Unlink(ctx, parentID, studentID)
	if err != nil {
		return err
	}
	if !modified {
		return ErrNotFound
	}
	return nil
}

// Child pairs a link with the student account behind it.
type Child struct {
	Student      *models.User `json:"student"`
	Relationship string       `json:"relationship"`
	LinkedAt     int          `json:"linkedAt"`
}

func (s *ParentService) Children(ctx context.Context, parentID bson.ObjectID) ([]Child, error) {
	links, err := s.parentRepo.FindByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Child{}, nil
	}

	ids := make([]bson.ObjectID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.StudentID)
	}
	students, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[bson.ObjectID]*models.User, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}

	children := make([]Child, 0, len(links))
	for _, link := range links {
		student, ok := byID[link.StudentID]
		if !ok {
			continue
		}
		children = append(children, Child{
			Student:      student,
			Relationship: link.Relationship,
			LinkedAt:     link.LinkedAt,
		})
	}
	return children, nil
}

// ChildProgress is the roll-up a parent sees for one linked child.
type ChildProgress struct {
	Student           *models.User              `json:"student"`
	TotalAttempts     int                       `json:"totalAttempts"`
	QuizzesPassed     int                       `json:"quizzesPassed"`
	QuizzesAttempted  int                       `json:"quizzesAttempted"`
	AveragePercentage float64                   `json:"averagePercentage"`
	Performance       []grading.QuizPerformance `json:"performance"`
}

// Progress authorizes via the active link before exposing anything about the
// student.
func (s *ParentService) Progress(ctx context.Context, parentID, studentID bson.ObjectID) (*ChildProgress, error) {
	link, err := s.parentRepo.FindLink(ctx, parentID, studentID)
	if err != nil {
		return nil, err
	}
	if link == nil || !link.IsActive {
		return nil, ErrNotFound
	}

	student, err := s.userRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}

	performance, err := s.quizzes.Performance(ctx, studentID.Hex(), "")
	if err != nil {
		return nil, err
	}

	progress := &ChildProgress{Student: student, Performance: performance}
	sum := 0.0
	for _, perf := range performance {
		progress.TotalAttempts += perf.TotalAttempts
		if perf.TotalAttempts > 0 {
			progress.QuizzesAttempted++
		}
		if perf.HasPassed {
			progress.QuizzesPassed++
		}
		for _, attempt := range perf.Attempts {
			sum += attempt.Percentage
		}
	}
	if progress.TotalAttempts > 0 {
		progress.AveragePercentage = sum / float64(progress.TotalAttempts)
	}
	return progress, nil
}
