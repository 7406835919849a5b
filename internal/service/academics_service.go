package service

import (
	"context"
	"fmt"

	"learnhub/internal/models"
	"learnhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AcademicsService manages the course catalog and its building blocks:
// skills, lessons, units, courses, classes and course documents.
type AcademicsService struct {
	courseRepo     *repository.CourseRepository
	classRepo      *repository.ClassRepository
	curriculumRepo *repository.CurriculumRepository
}

func NewAcademicsService(
	courseRepo *repository.CourseRepository,
	classRepo *repository.ClassRepository,
	curriculumRepo *repository.CurriculumRepository,
) *AcademicsService {
	return &AcademicsService{
		courseRepo:     courseRepo,
		classRepo:      classRepo,
		curriculumRepo: curriculumRepo,
	}
}

type CreateCourseInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	UnitIDs     []string `json:"unit_ids"`
}

// CreateCourse enforces name uniqueness and checks that every referenced
// unit exists.
func (s *AcademicsService) CreateCourse(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	existing, err := s.courseRepo.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("course %q already exists", in.Name)
	}

	if len(in.UnitIDs) > 0 {
		units, err := s.curriculumRepo.FindUnitsByIDs(ctx, in.UnitIDs)
		if err != nil {
			return nil, err
		}
		if len(units) != len(in.UnitIDs) {
			return nil, fmt.Errorf("course references %d units but only %d exist", len(in.UnitIDs), len(units))
		}
	}

	course := &models.Course{
		Name:        in.Name,
		Description: in.Description,
		UnitIDs:     in.UnitIDs,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *AcademicsService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.FindAll(ctx)
}

func (s *AcademicsService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	return course, nil
}

func (s *AcademicsService) UpdateCourse(ctx context.Context, id string, fields bson.M) (*models.Course, error) {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetCourse(ctx, id)
}

func (s *AcademicsService) DeleteCourse(ctx context.Context, id string) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

func (s *AcademicsService) AddCourseDocument(ctx context.Context, doc *models.CourseDocument) error {
	if _, err := s.GetCourse(ctx, doc.CourseID); err != nil {
		return err
	}
	return s.courseRepo.AddDocument(ctx, doc)
}

func (s *AcademicsService) CourseDocuments(ctx context.Context, courseID string) ([]models.CourseDocument, error) {
	return s.courseRepo.FindDocumentsByCourse(ctx, courseID)
}

type CreateClassInput struct {
	Name               string   `json:"name" validate:"required"`
	LearningObjectives string   `json:"learning_objectives"`
	CourseIDs          []string `json:"course_ids"`
}

func (s *AcademicsService) CreateClass(ctx context.Context, in CreateClassInput) (*models.Class, error) {
	for _, courseID := range in.CourseIDs {
		if _, err := s.GetCourse(ctx, courseID); err != nil {
			return nil, fmt.Errorf("class references unknown course %s", courseID)
		}
	}

	class := &models.Class{
		Name:               in.Name,
		LearningObjectives: in.LearningObjectives,
		CourseIDs:          in.CourseIDs,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *AcademicsService) ListClasses(ctx context.Context) ([]models.Class, error) {
	return s.classRepo.FindAll(ctx)
}

func (s *AcademicsService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.classRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrNotFound
	}
	return class, nil
}

func (s *AcademicsService) UpdateClass(ctx context.Context, id string, fields bson.M) (*models.Class, error) {
	if _, err := s.GetClass(ctx, id); err != nil {
		return nil, err
	}
	if err := s.classRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetClass(ctx, id)
}

func (s *AcademicsService) DeleteClass(ctx context.Context, id string) error {
	if _, err := s.GetClass(ctx, id); err != nil {
		return err
	}
	return s.classRepo.Delete(ctx, id)
}

func (s *AcademicsService) CreateSkill(ctx context.Context, skill *models.Skill) error {
	return s.curriculumRepo.CreateSkill(ctx, skill)
}

func (s *AcademicsService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.curriculumRepo.FindAllSkills(ctx)
}

func (s *AcademicsService) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	return s.curriculumRepo.CreateLesson(ctx, lesson)
}

func (s *AcademicsService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	lesson, err := s.curriculumRepo.FindLessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}
	return lesson, nil
}

func (s *AcademicsService) CreateUnit(ctx context.Context, unit *models.Unit) error {
	return s.curriculumRepo.CreateUnit(ctx, unit)
}

// CourseUnits expands a course's unit id list into full units.
func (s *AcademicsService) CourseUnits(ctx context.Context, courseID string) ([]models.Unit, error) {
	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.curriculumRepo.FindUnitsByIDs(ctx, course.UnitIDs)
}
