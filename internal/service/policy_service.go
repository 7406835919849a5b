package service

import (
	"context"

	"learnhub/internal/models"
	"learnhub/internal/repository"
)

type PolicyService struct {
	repo *repository.PolicyRepository
}

func NewPolicyService(repo *repository.PolicyRepository) *PolicyService {
	return &PolicyService{repo: repo}
}

func (s *PolicyService) PrivacyPolicy(ctx context.Context) (*models.PrivacyPolicy, error) {
	policy, err := s.repo.LatestPrivacyPolicy(ctx)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, ErrNotFound
	}
	return policy, nil
}

func (s *PolicyService) Terms(ctx context.Context) (*models.TermsAndConditions, error) {
	terms, err := s.repo.LatestTerms(ctx)
	if err != nil {
		return nil, err
	}
	if terms == nil {
		return nil, ErrNotFound
	}
	return terms, nil
}

func (s *PolicyService) PublishPrivacyPolicy(ctx context.Context, policy *models.PrivacyPolicy) error {
	return s.repo.CreatePrivacyPolicy(ctx, policy)
}

func (s *PolicyService) PublishTerms(ctx context.Context, terms *models.TermsAndConditions) error {
	return s.repo.CreateTerms(ctx, terms)
}
