package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// coreGoalCount is the number of fixed daily flags.
const coreGoalCount = 4

// DailyGoalRecord tracks the four core goals for one user on one calendar day.
type DailyGoalRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"` // Back-reference to the owner
	Date             time.Time          `bson:"date" json:"date"`     // UTC midnight
	WorkoutCompleted bool               `bson:"workoutCompleted" json:"workoutCompleted"`
	StepsGoalMet     bool               `bson:"stepsGoalMet" json:"stepsGoalMet"`
	WaterIntakeMet   bool               `bson:"waterIntakeMet" json:"waterIntakeMet"`
	SleepGoalMet     bool               `bson:"sleepGoalMet" json:"sleepGoalMet"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDailyGoalRecord returns an empty record for userID on the day containing date.
func NewDailyGoalRecord(userID primitive.ObjectID, date time.Time) *DailyGoalRecord {
	return &DailyGoalRecord{
		UserID: userID,
		Date:   TruncateToDay(date),
	}
}

// UpdateGoals overwrites all four flags at once.
func (r *DailyGoalRecord) UpdateGoals(workout, steps, water, sleep bool) {
	r.WorkoutCompleted = workout
	r.StepsGoalMet = steps
	r.WaterIntakeMet = water
	r.SleepGoalMet = sleep
}

// IsPerfectDay reports whether every core goal was met.
func (r *DailyGoalRecord) IsPerfectDay() bool {
	return r.WorkoutCompleted && r.StepsGoalMet && r.WaterIntakeMet && r.SleepGoalMet
}

// ProportionOfGoalsMet returns the fraction of core goals met, one of 0, .25, .5, .75 or 1.
func (r *DailyGoalRecord) ProportionOfGoalsMet() float64 {
	met := 0
	for _, ok := range []bool{r.WorkoutCompleted, r.StepsGoalMet, r.WaterIntakeMet, r.SleepGoalMet} {
		if ok {
			met++
		}
	}
	return float64(met) / coreGoalCount
}

// TruncateToDay returns UTC midnight of the calendar day t falls on in its own location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
