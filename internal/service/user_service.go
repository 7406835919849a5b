package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/events"
	"learnhub/internal/models"
	"learnhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" validate:"required"`
}

type UserService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	redisRepo   *repository.RedisRepository
	tokens      *TokenService
	mail        *MailService
	publisher   events.Publisher
	cfg         *config.Config
}

func NewUserService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	redisRepo *repository.RedisRepository,
	tokens *TokenService,
	mail *MailService,
	publisher events.Publisher,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		redisRepo:   redisRepo,
		tokens:      tokens,
		mail:        mail,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Register creates the account, queues the verification OTP email and
// announces the signup. The account can log in immediately; verification
// gates the role profile and profile editing.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if !models.IsValidRole(in.Role) {
		return nil, fmt.Errorf("unknown role: %s", in.Role)
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %s", err)
	}

	now := int(time.Now().Unix())
	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.userRepo.NewUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishUserRegistered(ctx, user.ID.Hex(), user.Email, user.Role); err != nil {
		log.Printf("error publishing registration event for %s: %s", user.Email, err)
	}

	otp, err := s.tokens.IssueOTP(ctx, user.ID, models.PurposeEmailVerification)
	if err != nil {
		log.Printf("error issuing verification otp for %s: %s", user.Email, err)
	} else {
		s.mail.SendVerificationOTP(ctx, user, otp.Token, s.cfg.OTPExpiryMinutes)
	}

	return user, nil
}

func lockoutKey(email string) string {
	return "login_attempts:" + email
}

// Login authenticates by email and password with a per-account attempt
// counter in Redis. Five straight failures lock the account for fifteen
// minutes; a success clears the counter.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if attempts := s.redisRepo.GetInt(ctx, lockoutKey(email)); attempts >= maxLoginAttempts {
		return nil, ErrUserLocked
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.redisRepo.Delete(ctx, lockoutKey(email)); err != nil {
		log.Printf("error clearing login attempts for %s: %s", email, err)
	}
	if err := s.userRepo.SetLastLogin(ctx, user.ID); err != nil {
		log.Printf("error recording last login for %s: %s", email, err)
	}
	return user, nil
}

func (s *UserService) recordFailedAttempt(ctx context.Context, email string) {
	key := lockoutKey(email)
	attempts := s.redisRepo.GetInt(ctx, key)
	if _, err := s.redisRepo.SaveInt(ctx, key, attempts+1, lockoutDuration); err != nil {
		log.Printf("error recording failed login for %s: %s", email, err)
	}
}

// VerifyEmail consumes a verification OTP, flips the flag and provisions the
// role profile. Provisioning is idempotent, so re-verification is harmless.
func (s *UserService) VerifyEmail(ctx context.Context, userID bson.ObjectID, code string) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrNotFound
	}

	ok, err := s.tokens.VerifyOTP(ctx, userID, code, models.PurposeEmailVerification, true)
	if err != nil || !ok {
		return false, err
	}

	if err := s.userRepo.SetEmailVerified(ctx, userID); err != nil {
		return false, err
	}
	if err := s.profileRepo.EnsureForRole(ctx, user.Role, user.ID); err != nil {
		return false, err
	}
	return true, nil
}

// ResendVerification re-issues the verification OTP, retiring the prior one.
func (s *UserService) ResendVerification(ctx context.Context, userID bson.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.IsEmailVerified {
		return fmt.Errorf("email already verified")
	}

	otp, err := s.tokens.IssueOTP(ctx, userID, models.PurposeEmailVerification)
	if err != nil {
		return err
	}
	s.mail.SendVerificationOTP(ctx, user, otp.Token, s.cfg.OTPExpiryMinutes)
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

type UpdateUserInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

func (s *UserService) UpdateUser(ctx context.Context, id bson.ObjectID, in UpdateUserInput) (*models.User, error) {
	fields := bson.M{}
	if in.FirstName != "" {
		fields["firstName"] = in.FirstName
	}
	if in.LastName != "" {
		fields["lastName"] = in.LastName
	}
	if in.PhoneNumber != "" {
		fields["phoneNumber"] = in.PhoneNumber
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

// DeleteUser removes the account and its role profile.
func (s *UserService) DeleteUser(ctx context.Context, id bson.ObjectID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.profileRepo.DeleteForRole(ctx, user.Role, user.ID); err != nil {
		log.Printf("error deleting profile for %s: %s", user.Email, err)
	}
	return s.userRepo.Delete(ctx, id)
}
