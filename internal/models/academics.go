package models

import "time"

type Skill struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description"`
}

type Lesson struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description"`
	SkillIDs        []string  `bson:"skill_ids,omitempty" json:"skill_ids"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type Unit struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description"`
	LessonIDs   []string  `bson:"lesson_ids,omitempty" json:"lesson_ids"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Course struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description"`
	UnitIDs     []string  `bson:"unit_ids,omitempty" json:"unit_ids"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Class struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	Name               string    `bson:"name" json:"name"`
	LearningObjectives string    `bson:"learning_objectives,omitempty" json:"learning_objectives"`
	CourseIDs          []string  `bson:"course_ids,omitempty" json:"course_ids"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at" json:"updated_at"`
}

// CourseDocument records an uploaded supporting document for a course. Only
// the metadata lives here; the file itself goes to object storage.
type CourseDocument struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	CourseID   string    `bson:"course_id" json:"course_id"`
	FileName   string    `bson:"file_name" json:"file_name"`
	StorageKey string    `bson:"storage_key" json:"storage_key"`
	UploadedBy string    `bson:"uploaded_by" json:"uploaded_by"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}
