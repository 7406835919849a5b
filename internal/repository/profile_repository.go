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

// ProfileRepository owns the four role-profile collections. Profiles are
// keyed by their display id (STU-xxxxxx etc.) and created at most once per
// user via upsert.
type ProfileRepository struct {
	students *mongo.Collection
	teachers *mongo.Collection
	parents  *mongo.Collection
	admins   *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		students: db.Collection("student_profiles"),
		teachers: db.Collection("teacher_profiles"),
		parents:  db.Collection("parent_profiles"),
		admins:   db.Collection("admin_profiles"),
	}
}

func (r *ProfileRepository) collectionForRole(role string) *mongo.Collection {
	switch role {
	case models.RoleStudent:
		return r.students
	case models.RoleTeacher:
		return r.teachers
	case models.RoleParent:
		return r.parents
	case models.RoleAdmin:
		return r.admins
	}
	return nil
}

// EnsureForRole creates the role profile for the user if it does not exist
// yet. Safe to call repeatedly; the second call is a no-op.
func (r *ProfileRepository) EnsureForRole(ctx context.Context, role string, userID bson.ObjectID) error {
	col := r.collectionForRole(role)
	if col == nil {
		return nil
	}

	displayID := models.ProfileDisplayID(role, userID)
	now := int(time.Now().Unix())

	opts := options.UpdateOne().SetUpsert(true)
	_, err := col.UpdateOne(ctx,
		bson.M{"_id": displayID},
		bson.M{"$setOnInsert": bson.M{"userId": userID, "createdAt": now}},
		opts,
	)
	return err
}

func (r *ProfileRepository) findByUser(ctx context.Context, col *mongo.Collection, userID bson.ObjectID, out any) (bool, error) {
	err := col.FindOne(ctx, bson.M{"userId": userID}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ProfileRepository) FindStudentByUser(ctx context.Context, userID bson.ObjectID) (*models.StudentProfile, error) {
	var p models.StudentProfile
	found, err := r.findByUser(ctx, r.students, userID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindTeacherByUser(ctx context.Context, userID bson.ObjectID) (*models.TeacherProfile, error) {
	var p models.TeacherProfile
	found, err := r.findByUser(ctx, r.teachers, userID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindParentByUser(ctx context.Context, userID bson.ObjectID) (*models.ParentProfile, error) {
	var p models.ParentProfile
	found, err := r.findByUser(ctx, r.parents, userID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindAdminByUser(ctx context.Context, userID bson.ObjectID) (*models.AdminProfile, error) {
	var p models.AdminProfile
	found, err := r.findByUser(ctx, r.admins, userID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindAdminByID(ctx context.Context, adminID string) (*models.AdminProfile, error) {
	var p models.AdminProfile
	err := r.admins.FindOne(ctx, bson.M{"_id": adminID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) ListAdmins(ctx context.Context, page, limit int) ([]*models.AdminProfile, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.admins.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []*models.AdminProfile
	if err = cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// UpdateForRole applies a partial update to the user's role profile.
func (r *ProfileRepository) UpdateForRole(ctx context.Context, role string, userID bson.ObjectID, fields bson.M) error {
	col := r.collectionForRole(role)
	if col == nil {
		return nil
	}
	_, err := col.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": fields})
	return err
}

// DeleteForRole removes the user's role profile, used when an account is
// deleted.
func (r *ProfileRepository) DeleteForRole(ctx context.Context, role string, userID bson.ObjectID) error {
	col := r.collectionForRole(role)
	if col == nil {
		return nil
	}
	_, err := col.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

func (r *ProfileRepository) DeleteAdminByID(ctx context.Context, adminID string) error {
	_, err := r.admins.DeleteOne(ctx, bson.M{"_id": adminID})
	return err
}
