package models

import "time"

type PrivacyPolicy struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Content       string    `bson:"content" json:"content"`
	EffectiveDate time.Time `bson:"effective_date" json:"effective_date"`
}

type TermsAndConditions struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Content       string    `bson:"content" json:"content"`
	EffectiveDate time.Time `bson:"effective_date" json:"effective_date"`
}
