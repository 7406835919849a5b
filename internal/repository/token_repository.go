package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// OTPTokenRepository stores OTP lineages. Rows are never deleted; used and
// expired tokens stay behind as the audit trail.
type OTPTokenRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewOTPTokenRepository(client *mongo.Client, db *mongo.Database) *OTPTokenRepository {
	return &OTPTokenRepository{
		client:     client,
		collection: db.Collection("otp_tokens"),
	}
}

// CreateInvalidatingPrior marks every unused token of the same (user, purpose)
// as used and inserts the fresh one inside a single transaction, so there is
// no window with two active tokens for the lineage.
func (r *OTPTokenRepository) CreateInvalidatingPrior(ctx context.Context, token *models.OTPToken) error {
	if token.ID.IsZero() {
		token.ID = bson.NewObjectID()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		now := time.Now()
		_, err := r.collection.UpdateMany(ctx,
			bson.M{"userId": token.UserID, "purpose": token.Purpose, "isUsed": false},
			bson.M{"$set": bson.M{"isUsed": true, "usedAt": now}},
		)
		if err != nil {
			return nil, err
		}
		return r.collection.InsertOne(ctx, token)
	})
	return err
}

// FindUnused looks up the one consumable token matching the triple. Absence
// is not an error; the caller treats nil as a uniform verification failure.
func (r *OTPTokenRepository) FindUnused(ctx context.Context, userID bson.ObjectID, code, purpose string) (*models.OTPToken, error) {
	var token models.OTPToken
	err := r.collection.FindOne(ctx, bson.M{
		"userId":  userID,
		"token":   code,
		"purpose": purpose,
		"isUsed":  false,
	}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *OTPTokenRepository) MarkUsed(ctx context.Context, id bson.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isUsed": true, "usedAt": time.Now()}},
	)
	return err
}

// InvalidateAll marks every token of the lineage used, consumed or not.
func (r *OTPTokenRepository) InvalidateAll(ctx context.Context, userID bson.ObjectID, purpose string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "purpose": purpose, "isUsed": false},
		bson.M{"$set": bson.M{"isUsed": true, "usedAt": time.Now()}},
	)
	return err
}

// HasUsedSince reports whether a token of the lineage was consumed at or
// after the given instant. Backs the time-boxed reset authorization window.
func (r *OTPTokenRepository) HasUsedSince(ctx context.Context, userID bson.ObjectID, purpose string, since time.Time) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"userId":  userID,
		"purpose": purpose,
		"isUsed":  true,
		"usedAt":  bson.M{"$gte": since},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *OTPTokenRepository) CountActive(ctx context.Context, userID bson.ObjectID, purpose string, now time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"userId":    userID,
		"purpose":   purpose,
		"isUsed":    false,
		"expiresAt": bson.M{"$gt": now},
	})
}

// PasswordResetTokenRepository stores the link-style reset tokens. The
// single-active invariant is scoped per user, not per purpose.
type PasswordResetTokenRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewPasswordResetTokenRepository(client *mongo.Client, db *mongo.Database) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		client:     client,
		collection: db.Collection("password_reset_tokens"),
	}
}

func (r *PasswordResetTokenRepository) CreateInvalidatingPrior(ctx context.Context, token *models.PasswordResetToken) error {
	if token.ID.IsZero() {
		token.ID = bson.NewObjectID()
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		now := time.Now()
		_, err := r.collection.UpdateMany(ctx,
			bson.M{"userId": token.UserID, "isUsed": false},
			bson.M{"$set": bson.M{"isUsed": true, "usedAt": now}},
		)
		if err != nil {
			return nil, err
		}
		return r.collection.InsertOne(ctx, token)
	})
	return err
}

func (r *PasswordResetTokenRepository) FindUnused(ctx context.Context, userID bson.ObjectID, code string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.collection.FindOne(ctx, bson.M{
		"userId": userID,
		"token":  code,
		"isUsed": false,
	}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, id bson.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isUsed": true, "usedAt": time.Now()}},
	)
	return err
}
