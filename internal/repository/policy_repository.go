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

// PolicyRepository stores the site-wide legal documents. Only the most
// recent version of each is served.
type PolicyRepository struct {
	Privacy *mongo.Collection
	Terms   *mongo.Collection
}

func NewPolicyRepository(db *mongo.Database) *PolicyRepository {
	return &PolicyRepository{
		Privacy: db.Collection("privacy_policies"),
		Terms:   db.Collection("terms_and_conditions"),
	}
}

func (r *PolicyRepository) LatestPrivacyPolicy(ctx context.Context) (*models.PrivacyPolicy, error) {
	opts := options.FindOne().SetSort(bson.M{"effective_date": -1})
	var policy models.PrivacyPolicy
	err := r.Privacy.FindOne(ctx, bson.M{}, opts).Decode(&policy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &policy, nil
}

func (r *PolicyRepository) CreatePrivacyPolicy(ctx context.Context, policy *models.PrivacyPolicy) error {
	if policy.ID == "" {
		policy.ID = bson.NewObjectID().Hex()
	}
	policy.EffectiveDate = time.Now()
	_, err := r.Privacy.InsertOne(ctx, policy)
	return err
}

func (r *PolicyRepository) UpdatePrivacyPolicy(ctx context.Context, id, content string) error {
	_, err := r.Privacy.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": content}})
	return err
}

func (r *PolicyRepository) LatestTerms(ctx context.Context) (*models.TermsAndConditions, error) {
	opts := options.FindOne().SetSort(bson.M{"effective_date": -1})
	var terms models.TermsAndConditions
	err := r.Terms.FindOne(ctx, bson.M{}, opts).Decode(&terms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &terms, nil
}

func (r *PolicyRepository) CreateTerms(ctx context.Context, terms *models.TermsAndConditions) error {
	if terms.ID == "" {
		terms.ID = bson.NewObjectID().Hex()
	}
	terms.EffectiveDate = time.Now()
	_, err := r.Terms.InsertOne(ctx, terms)
	return err
}

func (r *PolicyRepository) UpdateTerms(ctx context.Context, id, content string) error {
	_, err := r.Terms.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"content": content}})
	return err
}
