package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type StudentProfile struct {
	StudentID      string        `bson:"_id" json:"studentId"`
	UserID         bson.ObjectID `bson:"userId" json:"userId"`
	ProfilePicture string        `bson:"profilePicture,omitempty" json:"profilePicture"`
	Bio            string        `bson:"bio,omitempty" json:"bio"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
}

type TeacherProfile struct {
	TeacherID       string        `bson:"_id" json:"teacherId"`
	UserID          bson.ObjectID `bson:"userId" json:"userId"`
	ProfilePicture  string        `bson:"profilePicture,omitempty" json:"profilePicture"`
	Department      string        `bson:"department,omitempty" json:"department"`
	ExperienceYears int           `bson:"experienceYears,omitempty" json:"experienceYears"`
	CreatedAt       int           `bson:"createdAt" json:"createdAt"`
}

type ParentProfile struct {
	ParentID       string        `bson:"_id" json:"parentId"`
	UserID         bson.ObjectID `bson:"userId" json:"userId"`
	ProfilePicture string        `bson:"profilePicture,omitempty" json:"profilePicture"`
	Relation       string        `bson:"relation,omitempty" json:"relation"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
}

type AdminProfile struct {
	AdminID        string        `bson:"_id" json:"adminId"`
	UserID         bson.ObjectID `bson:"userId" json:"userId"`
	ProfilePicture string        `bson:"profilePicture,omitempty" json:"profilePicture"`
	Address        string        `bson:"address,omitempty" json:"address"`
	Location       string        `bson:"location,omitempty" json:"location"`
	CreatedAt      int           `bson:"createdAt" json:"createdAt"`
}

// ProfileDisplayID builds the human-facing profile identifier from the role
// prefix and the tail of the owning user's object id, e.g. STU-5F3A1B.
func ProfileDisplayID(role string, userID bson.ObjectID) string {
	prefix := map[string]string{
		RoleStudent: "STU",
		RoleTeacher: "TEA",
		RoleParent:  "PAR",
		RoleAdmin:   "ADM",
	}[role]
	if prefix == "" {
		prefix = "USR"
	}
	hex := userID.Hex()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex[len(hex)-6:]))
}

// Parent-student relationship kinds.
const (
	RelationshipFather   = "father"
	RelationshipMother   = "mother"
	RelationshipGuardian = "guardian"
	RelationshipOther    = "other"
)

func IsValidRelationship(rel string) bool {
	switch rel {
	case RelationshipFather, RelationshipMother, RelationshipGuardian, RelationshipOther:
		return true
	}
	return false
}

// ParentStudent links a parent account to a student account. A parent can
// have many children and a student many parents; the pair itself is unique.
type ParentStudent struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ParentID     bson.ObjectID `bson:"parentId" json:"parentId"`
	StudentID    bson.ObjectID `bson:"studentId" json:"studentId"`
	Relationship string        `bson:"relationship" json:"relationship"`
	IsActive     bool          `bson:"isActive" json:"isActive"`
	LinkedAt     int           `bson:"linkedAt" json:"linkedAt"`
	UpdatedAt    int           `bson:"updatedAt" json:"updatedAt"`
}
