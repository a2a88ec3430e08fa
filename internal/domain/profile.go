package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default values for a freshly created profile.
const (
	DefaultUsername = "Username"
	DefaultCalories = 2000
	DefaultStepGoal = 10000
)

// Accepted ranges, inclusive.
const (
	MinCalories = 1200
	MaxCalories = 4000
	MinStepGoal = 1000
	MaxStepGoal = 30000
)

// Profile holds one user's editable fitness targets.
type Profile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"` // One profile per user
	Username        string             `bson:"username" json:"username"`
	Goal            string             `bson:"goal" json:"goal"`                   // Free text, e.g. "Lose weight"
	GoalWeight      int                `bson:"goalWeight" json:"goalWeight"`       // kg
	Calories        int                `bson:"calories" json:"calories"`           // kcal/day
	StepGoal        int                `bson:"stepGoal" json:"stepGoal"`           // steps/day
	ProfileImageKey string             `bson:"profileImageKey,omitempty" json:"-"` // Object storage key of the image blob
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewProfile returns a profile with the default targets.
func NewProfile() *Profile {
	return &Profile{
		Username: DefaultUsername,
		Goal:     "",
		Calories: DefaultCalories,
		StepGoal: DefaultStepGoal,
	}
}

// UpdateProfile overwrites all four targets. It does not validate them;
// callers decide whether out-of-range values are acceptable.
func (p *Profile) UpdateProfile(goal string, goalWeight, calories, stepGoal int) {
	p.Goal = goal
	p.GoalWeight = goalWeight
	p.Calories = calories
	p.StepGoal = stepGoal
}

// ProgressTowardsStepGoal returns currentSteps / StepGoal, or 0 when no
// positive step goal is set.
func (p *Profile) ProgressTowardsStepGoal(currentSteps int) float64 {
	if p.StepGoal <= 0 {
		return 0
	}
	return float64(currentSteps) / float64(p.StepGoal)
}

// ProgressTowardsWeightGoal returns the signed fraction of the goal weight
// still to go. Negative means the goal has been overshot. Not clamped.
func (p *Profile) ProgressTowardsWeightGoal(currentWeight int) float64 {
	if p.GoalWeight == 0 || currentWeight == 0 {
		return 0
	}
	return float64(p.GoalWeight-currentWeight) / float64(p.GoalWeight)
}

func (p *Profile) ValidateCalories() bool {
	return p.Calories >= MinCalories && p.Calories <= MaxCalories
}

func (p *Profile) ValidateStepGoal() bool {
	return p.StepGoal >= MinStepGoal && p.StepGoal <= MaxStepGoal
}

// HasImage reports whether a profile image has been uploaded.
func (p *Profile) HasImage() bool {
	return p.ProfileImageKey != ""
}
