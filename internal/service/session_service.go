package service

import (
	"context"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/repository"

	"github.com/google/uuid"
)

// SessionService backs the SESSION auth method: opaque tokens mapped to
// session records in Redis, expiring with the store entry.
type SessionService struct {
	redisRepo *repository.RedisRepository
	ttl       time.Duration
}

func NewSessionService(cfg *config.Config, redisRepo *repository.RedisRepository) *SessionService {
	return &SessionService{
		redisRepo: redisRepo,
		ttl:       time.Duration(cfg.AccessTokenHours) * time.Hour,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionService) Create(ctx context.Context, user *models.User, userAgent, ipAddress string) (*models.Session, error) {
	now := int(time.Now().Unix())
	session := &models.Session{
		Token:          uuid.NewString(),
		UserID:         user.ID.Hex(),
		UserAgent:      userAgent,
		IPAddress:      ipAddress,
		IsValid:        true,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	if _, err := s.redisRepo.SaveStructCached(ctx, sessionKey(session.Token), session, s.ttl); err != nil {
		return nil, err
	}
	return session, nil
}

// Get resolves a token to its session, refreshing the activity timestamp and
// sliding the expiry.
func (s *SessionService) Get(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := s.redisRepo.GetStructCached(ctx, sessionKey(token), &session); err != nil {
		return nil, ErrNotFound
	}
	if !session.IsValid {
		return nil, ErrNotFound
	}

	session.LastActivityAt = int(time.Now().Unix())
	if _, err := s.redisRepo.SaveStructCached(ctx, sessionKey(token), &session, s.ttl); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	return s.redisRepo.Delete(ctx, sessionKey(token))
}
