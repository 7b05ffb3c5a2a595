package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray stores a string slice as a JSON column.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// MealLog is one logged eating event. Rows are immutable once written;
// the analysis-derived fields are only present for photo-analyzed meals.
type MealLog struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Calories       float64        `gorm:"type:float;not null" json:"calories"`
	Protein        float64        `gorm:"type:float" json:"protein"`
	Carbs          float64        `gorm:"type:float" json:"carbs"`
	Fat            float64        `gorm:"type:float" json:"fat"`
	ConsumedAt     time.Time      `gorm:"not null;index" json:"consumed_at"`
	IsPackaged     bool           `json:"is_packaged"`
	Description    string         `gorm:"type:text" json:"description"`
	Ingredients    StringArray    `gorm:"type:jsonb" json:"ingredients"`
	Allergens      StringArray    `gorm:"type:jsonb" json:"allergens"`
	HealthInsights string         `gorm:"type:text" json:"health_insights"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *MealLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (MealLog) TableName() string {
	return "meal_logs"
}

// DailyLog is the per-user, per-calendar-day aggregate of logged meals.
// It is derived data: recomputed inside the same transaction as every
// meal insert, never mutated independently.
type DailyLog struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_daily_logs_user_date" json:"user_id"`
	Date          string    `gorm:"size:10;not null;uniqueIndex:idx_daily_logs_user_date" json:"date"` // YYYY-MM-DD
	TotalCalories float64   `gorm:"type:float" json:"total_calories"`
	TotalProtein  float64   `gorm:"type:float" json:"total_protein"`
	TotalCarbs    float64   `gorm:"type:float" json:"total_carbs"`
	TotalFat      float64   `gorm:"type:float" json:"total_fat"`
	MealCount     int       `json:"meal_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (DailyLog) TableName() string {
	return "daily_logs"
}
