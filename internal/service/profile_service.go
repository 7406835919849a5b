package service

import (
	"context"
	"fmt"

	"learnhub/internal/models"
	"learnhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ProfileService reads and updates the role-specific profile attached to a
// verified account.
type ProfileService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
}

func NewProfileService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Profile bundles the account with whichever role profile it carries.
type Profile struct {
	User    *models.User `json:"user"`
	Student any          `json:"student,omitempty"`
	Teacher any          `json:"teacher,omitempty"`
	Parent  any          `json:"parent,omitempty"`
	Admin   any          `json:"admin,omitempty"`
}

func (s *ProfileService) Get(ctx context.Context, userID bson.ObjectID) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	out := &Profile{User: user}
	switch user.Role {
	case models.RoleStudent:
		p, err := s.profileRepo.FindStudentByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out.Student = p
		}
	case models.RoleTeacher:
		p, err := s.profileRepo.FindTeacherByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out.Teacher = p
		}
	case models.RoleParent:
		p, err := s.profileRepo.FindParentByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out.Parent = p
		}
	case models.RoleAdmin:
		p, err := s.profileRepo.FindAdminByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out.Admin = p
		}
	}
	return out, nil
}

// UpdateProfileInput carries the role-profile fields a user may edit. Zero
// values are skipped, so partial updates work.
type UpdateProfileInput struct {
	ProfilePicture  string `json:"profile_picture"`
	Bio             string `json:"bio"`
	Department      string `json:"department"`
	ExperienceYears int    `json:"experience_years"`
	Relation        string `json:"relation"`
	Address         string `json:"address"`
	Location        string `json:"location"`
}

func (s *ProfileService) Update(ctx context.Context, userID bson.ObjectID, in UpdateProfileInput) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if !user.IsEmailVerified {
		return nil, fmt.Errorf("email must be verified before editing the profile")
	}

	fields := bson.M{}
	if in.ProfilePicture != "" {
		fields["profilePicture"] = in.ProfilePicture
	}
	switch user.Role {
	case models.RoleStudent:
		if in.Bio != "" {
			fields["bio"] = in.Bio
		}
	case models.RoleTeacher:
		if in.Department != "" {
			fields["department"] = in.Department
		}
		if in.ExperienceYears > 0 {
			fields["experienceYears"] = in.ExperienceYears
		}
	case models.RoleParent:
		if in.Relation != "" {
			fields["relation"] = in.Relation
		}
	case models.RoleAdmin:
		if in.Address != "" {
			fields["address"] = in.Address
		}
		if in.Location != "" {
			fields["location"] = in.Location
		}
	}

	if len(fields) > 0 {
		if err := s.profileRepo.UpdateForRole(ctx, user.Role, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, userID)
}

func (s *ProfileService) ListAdmins(ctx context.Context, page, limit int) ([]*models.AdminProfile, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.profileRepo.ListAdmins(ctx, page, limit)
}

func (s *ProfileService) GetAdmin(ctx context.Context, adminID string) (*models.AdminProfile, error) {
	admin, err := s.profileRepo.FindAdminByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

func (s *ProfileService) DeleteAdmin(ctx context.Context, adminID string) error {
	if _, err := s.GetAdmin(ctx, adminID); err != nil {
		return err
	}
	return s.profileRepo.DeleteAdminByID(ctx, adminID)
}
