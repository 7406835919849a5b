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

type ParentStudentRepository struct {
	collection *mongo.Collection
}

func NewParentStudentRepository(db *mongo.Database) *ParentStudentRepository {
	return &ParentStudentRepository{
		collection: db.Collection("parent_students"),
	}
}

func (r *ParentStudentRepository) FindLink(ctx context.Context, parentID, studentID bson.ObjectID) (*models.ParentStudent, error) {
	var link models.ParentStudent
	err := r.collection.FindOne(ctx, bson.M{"parentId": parentID, "studentId": studentID}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Link creates the pair or re-activates an existing one; the (parent,
// student) pair stays unique either way.
func (r *ParentStudentRepository) Link(ctx context.Context, parentID, studentID bson.ObjectID, relationship string) (*models.ParentStudent, error) {
	now := int(time.Now().Unix())

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var link models.ParentStudent
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"parentId": parentID, "studentId": studentID},
		bson.M{
			"$set": bson.M{
				"relationship": relationship,
				"isActive":     true,
				"updatedAt":    now,
			},
			"$setOnInsert": bson.M{
				"_id":      bson.NewObjectID(),
				"linkedAt": now,
			},
		},
		opts,
	).Decode(&link)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ParentStudentRepository) Unlink(ctx context.Context, parentID, studentID bson.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"parentId": parentID, "studentId": studentID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": int(time.Now().Unix())}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *ParentStudentRepository) FindByParent(ctx context.Context, parentID bson.ObjectID) ([]models.ParentStudent, error) {
	opts := options.Find().SetSort(bson.M{"linkedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"parentId": parentID, "isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var links []models.ParentStudent
	if err = cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}
