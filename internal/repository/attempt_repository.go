package repository

import (
	"context"

	"learnhub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// AttemptRepository is the append-only ledger of scored submissions.
// Attempts are inserted once, with all derived fields set, and never updated.
type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("student_quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.StudentQuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = bson.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindByStudent(ctx context.Context, studentID string) ([]models.StudentQuizAttempt, error) {
	opts := options.Find().SetSort(bson.M{"attempted_at": -1})
	cur, err := r.Col.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.StudentQuizAttempt
	if err = cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *AttemptRepository) FindByStudentAndQuiz(ctx context.Context, studentID, quizID string) ([]models.StudentQuizAttempt, error) {
	opts := options.Find().SetSort(bson.M{"attempted_at": -1})
	cur, err := r.Col.Find(ctx, bson.M{"student_id": studentID, "quiz_id": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.StudentQuizAttempt
	if err = cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
