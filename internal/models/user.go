package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile mirrors the nutrition profile the engine computes from.
// Numeric zero means the field was never provided; the engine treats
// that as missing rather than invalid.
type UserProfile struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Age                int            `json:"age"`
	Weight             float64        `json:"weight"` // kg
	Height             float64        `json:"height"` // cm
	Gender             string         `gorm:"size:20" json:"gender"`
	Goal               string         `gorm:"size:30" json:"goal"`
	DietaryPreference  string         `gorm:"size:30" json:"dietary_preference"`
	DailyCalorieTarget int            `json:"daily_calorie_target"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// Allergen is one free-text allergy tag on a profile.
type Allergen struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName string         `gorm:"size:50;not null" json:"allergen_name"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (Allergen) TableName() string {
	return "allergens"
}
