package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CourseRepository struct {
	Col       *mongo.Collection
	Documents *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		Col:       db.Collection("courses"),
		Documents: db.Collection("course_documents"),
	}
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err = cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByName(ctx context.Context, name string) (*models.Course, error) {
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"name": name}).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = bson.NewObjectID().Hex()
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	_, err := r.Col.InsertOne(ctx, course)
	return err
}

func (r *CourseRepository) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now()
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CourseRepository) AddDocument(ctx context.Context, doc *models.CourseDocument) error {
	if doc.ID == "" {
		doc.ID = bson.NewObjectID().Hex()
	}
	doc.UploadedAt = time.Now()
	_, err := r.Documents.InsertOne(ctx, doc)
	return err
}

func (r *CourseRepository) FindDocumentsByCourse(ctx context.Context, courseID string) ([]models.CourseDocument, error) {
	cur, err := r.Documents.Find(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.CourseDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
