package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CurriculumRepository owns the skill/lesson/unit building blocks that
// courses are composed from.
type CurriculumRepository struct {
	Skills  *mongo.Collection
	Lessons *mongo.Collection
	Units   *mongo.Collection
}

func NewCurriculumRepository(db *mongo.Database) *CurriculumRepository {
	return &CurriculumRepository{
		Skills:  db.Collection("skills"),
		Lessons: db.Collection("lessons"),
		Units:   db.Collection("units"),
	}
}

func (r *CurriculumRepository) CreateSkill(ctx context.Context, skill *models.Skill) error {
	if skill.ID == "" {
		skill.ID = bson.NewObjectID().Hex()
	}
	_, err := r.Skills.InsertOne(ctx, skill)
	return err
}

func (r *CurriculumRepository) FindAllSkills(ctx context.Context) ([]models.Skill, error) {
	cur, err := r.Skills.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []models.Skill
	if err = cur.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *CurriculumRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = bson.NewObjectID().Hex()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	_, err := r.Lessons.InsertOne(ctx, lesson)
	return err
}

func (r *CurriculumRepository) FindLessonByID(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.Lessons.FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *CurriculumRepository) CreateUnit(ctx context.Context, unit *models.Unit) error {
	if unit.ID == "" {
		unit.ID = bson.NewObjectID().Hex()
	}
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = unit.CreatedAt
	_, err := r.Units.InsertOne(ctx, unit)
	return err
}

func (r *CurriculumRepository) FindUnitsByIDs(ctx context.Context, ids []string) ([]models.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.Units.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var units []models.Unit
	if err = cur.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}
