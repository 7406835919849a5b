package models

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles a user account can carry. The role tag is trusted as given by the
// identity boundary; handlers gate routes on it.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
	RoleAdmin   = "school_admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string        `bson:"email" json:"email" validate:"required,email"`
	PasswordHash    string        `bson:"passwordHash" json:"-"`
	FirstName       string        `bson:"firstName,omitempty" json:"firstName"`
	LastName        string        `bson:"lastName,omitempty" json:"lastName"`
	PhoneNumber     string        `bson:"phoneNumber,omitempty" json:"phoneNumber"`
	Role            string        `bson:"role" json:"role"`
	IsActive        bool          `bson:"isActive" json:"isActive"`
	IsEmailVerified bool          `bson:"isEmailVerified" json:"isEmailVerified"`
	CreatedAt       int           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       int           `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt     int           `bson:"lastLoginAt,omitempty" json:"lastLoginAt"`
}

// FullName falls back to whichever name parts exist, then the email.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Email
}

type Session struct {
	Token          string `bson:"token" json:"-"`
	UserID         string `bson:"userId" json:"userId"`
	UserAgent      string `bson:"userAgent" json:"userAgent"`
	IPAddress      string `bson:"ipAddress" json:"ipAddress"`
	IsValid        bool   `bson:"isValid" json:"isValid"`
	CreatedAt      int    `bson:"createdAt" json:"createdAt"`
	LastActivityAt int    `bson:"lastActivityAt" json:"lastActivityAt"`
}

type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
}
