package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrisnap/nutrisnap/backend/internal/models"
	"github.com/nutrisnap/nutrisnap/backend/internal/nutrition"
)

// ErrInvalidMealData rejects anything failing the valid-meal-data
// contract before a row is written.
var ErrInvalidMealData = errors.New("meal requires a name, positive calories, and non-negative macros")

// MealService owns meal logging and the derived daily aggregates.
type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// LogMeal validates and persists a meal, updating the day's aggregate in
// the same transaction so the two can never diverge. Invalid meals leave
// no partial state behind.
func (s *MealService) LogMeal(ctx context.Context, userID uuid.UUID, meal *models.MealLog) error {
	check := nutrition.Meal{
		Name:     meal.Name,
		Calories: meal.Calories,
		Protein:  meal.Protein,
		Carbs:    meal.Carbs,
		Fat:      meal.Fat,
	}
	if !check.Loggable() {
		return ErrInvalidMealData
	}

	meal.UserID = userID
	if meal.ConsumedAt.IsZero() {
		meal.ConsumedAt = time.Now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		return upsertDailyLog(tx, userID, meal)
	})
}

// upsertDailyLog folds a meal into its calendar day's aggregate row.
func upsertDailyLog(tx *gorm.DB, userID uuid.UUID, meal *models.MealLog) error {
	date := meal.ConsumedAt.Format("2006-01-02")
	entry := models.DailyLog{
		UserID:        userID,
		Date:          date,
		TotalCalories: meal.Calories,
		TotalProtein:  meal.Protein,
		TotalCarbs:    meal.Carbs,
		TotalFat:      meal.Fat,
		MealCount:     1,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_calories": gorm.Expr("total_calories + ?", meal.Calories),
			"total_protein":  gorm.Expr("total_protein + ?", meal.Protein),
			"total_carbs":    gorm.Expr("total_carbs + ?", meal.Carbs),
			"total_fat":      gorm.Expr("total_fat + ?", meal.Fat),
			"meal_count":     gorm.Expr("meal_count + 1"),
			"updated_at":     time.Now(),
		}),
	}).Create(&entry).Error
}

// MealsForDay lists a user's meals for one calendar day, newest first.
func (s *MealService) MealsForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.MealLog, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var meals []models.MealLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Order("consumed_at DESC").
		Find(&meals).Error
	return meals, err
}

// DailySummary returns the aggregate row for one day. A day with no
// meals yields a zeroed summary, not an error.
func (s *MealService) DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) (*models.DailyLog, error) {
	date := day.Format("2006-01-02")
	var entry models.DailyLog
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyLog{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ConsumedToday returns today's total calories, rounded down to whole
// kcal for the recommendation text.
func (s *MealService) ConsumedToday(ctx context.Context, userID uuid.UUID) (int, error) {
	summary, err := s.DailySummary(ctx, userID, time.Now())
	if err != nil {
		return 0, err
	}
	return int(summary.TotalCalories), nil
}

// WeeklyInsights summarizes the last seven days against the profile's
// calorie target.
type WeeklyInsights struct {
	Days          []models.DailyLog `json:"days"`
	DaysOnTarget  int               `json:"days_on_target"`
	AvgCalories   int               `json:"avg_calories"`
	AvgProtein    int               `json:"avg_protein"`
	CalorieAdvice string            `json:"calorie_advice"`
	ProteinAdvice string            `json:"protein_advice"`
}

// Weekly builds the seven-day insight view ending today. Days with no
// meals appear as zero rows so charts always get seven points.
func (s *MealService) Weekly(ctx context.Context, userID uuid.UUID, calorieTarget int, proteinTarget int) (*WeeklyInsights, error) {
	today := time.Now()
	start := today.AddDate(0, 0, -6).Format("2006-01-02")

	var rows []models.DailyLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, start).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyLog, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	insights := &WeeklyInsights{Days: make([]models.DailyLog, 0, 7)}
	var totalCalories, totalProtein float64
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		row, ok := byDate[date]
		if !ok {
			row = models.DailyLog{UserID: userID, Date: date}
		}
		insights.Days = append(insights.Days, row)
		totalCalories += row.TotalCalories
		totalProtein += row.TotalProtein
		if calorieTarget > 0 && row.TotalCalories > 0 && row.TotalCalories <= float64(calorieTarget) {
			insights.DaysOnTarget++
		}
	}

	insights.AvgCalories = int(totalCalories / 7)
	insights.AvgProtein = int(totalProtein / 7)

	if calorieTarget > 0 && insights.AvgCalories > calorieTarget {
		insights.CalorieAdvice = "You're averaging above your calorie target. Smaller portions or lighter snacks could help."
	} else {
		insights.CalorieAdvice = "You're doing great staying within your calorie target!"
	}
	if proteinTarget > 0 && insights.AvgProtein < proteinTarget {
		insights.ProteinAdvice = "Increase your protein intake to support muscle growth and recovery."
	} else {
		insights.ProteinAdvice = "Good protein intake! Keep it up for optimal muscle building."
	}

	return insights, nil
}
